package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/f3rmion/grader/internal/api"
	"github.com/f3rmion/grader/internal/grader"
	"github.com/f3rmion/grader/internal/report"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Grade a landing page once and print the scorecard",
	Long: `Send a landing page to the analysis service and print the result.

Give exactly one input:
  --url    a page address (fetched by the service, or locally with --local)
  --text   landing page copy
  --file   a file holding landing page copy ("-" reads stdin)

Examples:
  grader analyze --url https://example.com
  grader analyze --text "Buy now." --format json
  pbpaste | grader analyze --file - --format markdown`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

var (
	analyzeURL    string
	analyzeText   string
	analyzeFile   string
	analyzeFormat string
	analyzeLocal  bool
	analyzeWidth  int
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeURL, "url", "u", "", "landing page URL")
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "landing page copy")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read landing page copy from a file (- for stdin)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "o", "text", "output format: text, markdown, json")
	analyzeCmd.Flags().BoolVar(&analyzeLocal, "local", false, "fetch the URL here and send its text")
	analyzeCmd.Flags().IntVarP(&analyzeWidth, "width", "w", report.DefaultWidth, "wrap width for text output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(analyzeFormat)
	if err != nil {
		return err
	}

	req, err := requestFromInputs(analyzeURL, analyzeText, analyzeFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), slog.LevelWarn)
	analyzer := newAnalyzer(cfg, analyzeLocal || cfg.FetchLocally, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	resp, err := analyzer.Analyze(ctx, req)
	if err != nil {
		logger.Debug("analysis failed", "error", err)
		return errors.New(api.Message(err))
	}

	return report.Render(cmd.OutOrStdout(), resp, format, analyzeWidth)
}

// requestFromInputs builds a request from exactly one of the three input sources.
func requestFromInputs(url, text, file string, stdin io.Reader) (grader.AnalyzeRequest, error) {
	set := 0
	for _, v := range []string{url, text, file} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return grader.AnalyzeRequest{}, errors.New("give exactly one of --url, --text or --file")
	}

	switch {
	case url != "":
		return newRequest(grader.ModeURL, url)
	case text != "":
		return newRequest(grader.ModeText, text)
	}

	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return grader.AnalyzeRequest{}, fmt.Errorf("reading copy: %w", err)
	}
	return newRequest(grader.ModeText, string(data))
}

func newRequest(mode grader.Mode, value string) (grader.AnalyzeRequest, error) {
	req, err := grader.NewRequest(mode, value)
	if err != nil {
		return req, fmt.Errorf("%s input: %w", mode, err)
	}
	return req, nil
}
