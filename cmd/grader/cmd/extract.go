package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/f3rmion/grader/internal/extract"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Show the landing page copy that --local would send",
	Long: `Fetch a page and print its visible copy, with scripts, styles,
navigation, headers and footers removed.

This is exactly the text 'grader analyze --local' submits for a URL.

Example:
  grader extract https://example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), slog.LevelWarn)
	fetcher := extract.NewFetcher(&http.Client{Timeout: cfg.Timeout}, cfg.UserAgent, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	page, err := fetcher.Fetch(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if page.Title != "" {
		fmt.Fprintf(out, "Title: %s\n\n", page.Title)
	}
	fmt.Fprintln(out, page.Text)
	return nil
}
