package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/grader/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize grader configuration",
	Long: `Write a config.yaml with default settings into your config directory.

Settings:
  api_url        analysis service base URL
  timeout        per-request limit such as 30s (0 waits indefinitely)
  fetch_locally  extract URL pages here and send them as raw text
  user_agent     User-Agent for local page fetches
  log_file       where the interactive form writes its log`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureDir(configDir); err != nil {
		return err
	}

	cfg := config.Default()
	if u := viper.GetString("api_url"); u != "" {
		cfg.APIURL = u
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Point api_url at your analysis service")
	fmt.Fprintln(out, "  2. Run 'grader' to open the form, or 'grader analyze --url <url>'")

	return nil
}
