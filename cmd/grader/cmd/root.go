// Package cmd contains all CLI commands for the grader.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/grader/internal/api"
	"github.com/f3rmion/grader/internal/config"
	"github.com/f3rmion/grader/internal/extract"
	"github.com/f3rmion/grader/internal/grader"
	"github.com/f3rmion/grader/internal/tui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "grader",
	Short: "Landing Page Clarity Grader - see how clear your page is to first-time visitors",
	Long: `grader sends a landing page URL or a block of landing page copy to the
analysis service and shows the scorecard it returns:

  - What it is, who it's for, and the value proposition
  - Clarity, focus, differentiation and CTA strength, each scored 0-5

The service address comes from --api-url, then GRADER_API_URL (a .env file
in the working directory is honored), then api_url in config.yaml, and
finally http://localhost:8000.

Running 'grader' without arguments launches the interactive form.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/grader)")
	rootCmd.PersistentFlags().String("api-url", "", "analysis service base URL")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in .env and ENV variables if set.
func initConfig() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	if cfgDir != "" {
		viper.Set("config_dir", cfgDir)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("GRADER")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadSettings merges config.yaml with environment and flag overrides.
func loadSettings() (*config.Config, error) {
	cfg, err := config.LoadDir(getConfigDir())
	if err != nil {
		return nil, err
	}

	if u := viper.GetString("api_url"); u != "" {
		cfg.APIURL = u
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger creates a JSON logger at level, or debug with --verbose.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// newAnalyzer wires the API client, optionally behind local page extraction.
func newAnalyzer(cfg *config.Config, fetchLocally bool, logger *slog.Logger) grader.Analyzer {
	client := api.NewClient(cfg.APIURL,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger),
	)
	if !fetchLocally {
		return client
	}

	fetcher := extract.NewFetcher(&http.Client{Timeout: cfg.Timeout}, cfg.UserAgent, logger)
	return &extract.LocalAnalyzer{Fetcher: fetcher, Next: client}
}

// runTUI launches the interactive form.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file.
	configDir := getConfigDir()
	logger := slog.New(slog.DiscardHandler)
	if err := config.EnsureDir(configDir); err == nil {
		logFile, err := os.OpenFile(cfg.LogPath(configDir), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer logFile.Close()
			logger = newLogger(logFile, slog.LevelInfo)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("starting form", "api_url", cfg.APIURL, "fetch_locally", cfg.FetchLocally)

	p := tea.NewProgram(
		tui.New(ctx, newAnalyzer(cfg, cfg.FetchLocally, logger), logger),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
