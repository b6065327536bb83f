// Package main is the entry point for the grader CLI.
package main

import (
	"os"

	"github.com/f3rmion/grader/cmd/grader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
