// Package clipboard copies scorecards to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool is installed.
var ErrUnavailable = errors.New("no clipboard tool found (install xclip, xsel or wl-clipboard)")

// lookPathFunc matches exec.LookPath.
type lookPathFunc func(file string) (string, error)

// command picks the clipboard program and its arguments for goos.
func command(goos string, lookPath lookPathFunc) ([]string, error) {
	switch goos {
	case "darwin":
		return []string{"pbcopy"}, nil
	case "windows":
		return []string{"cmd", "/c", "clip"}, nil
	}

	candidates := [][]string{
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	}
	for _, c := range candidates {
		if _, err := lookPath(c[0]); err == nil {
			return c, nil
		}
	}
	return nil, ErrUnavailable
}

// Write copies text to the system clipboard.
func Write(text string) error {
	args, err := command(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", args[0], err)
	}
	return nil
}

// Available reports whether Write can succeed on this system.
func Available() bool {
	_, err := command(runtime.GOOS, exec.LookPath)
	return err == nil
}
