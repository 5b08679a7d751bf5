package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/grounded/internal/api"
	"github.com/jackzampolin/grounded/internal/config"
	"github.com/jackzampolin/grounded/internal/gemini"
	"github.com/jackzampolin/grounded/internal/home"
	"github.com/jackzampolin/grounded/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "grounded",
	Short: "Grounded AI answers via the Gemini Interactions API",
	Long: `Grounded is a research assistant backed by the Gemini Interactions API
with Google Search grounding.

It provides:
  - Quick structured web search (search)
  - Grounded answers with balanced reasoning (ask)
  - Deep reasoning for complex problems (think)
  - Stateful follow-up conversations via interaction ids
  - An MCP server exposing the same tools (serve)`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.grounded/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "grounded home directory (default: ~/.grounded)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "text", "output format: text, yaml, or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(thinkCmd)
	rootCmd.AddCommand(followupCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(cancelCmd)
}

// newConfigManager builds a config manager, preferring --config, then the
// home directory's config.yaml, then defaults.
func newConfigManager() (*config.Manager, error) {
	path := cfgFile
	if path == "" {
		h, err := home.New(homeDir)
		if err != nil {
			return nil, err
		}
		if h.ConfigExists() {
			path = h.ConfigPath()
		}
	}
	return config.NewManager(path)
}

// loadConfig loads configuration and enforces the startup-fatal credential
// check.
func loadConfig() (*config.Config, error) {
	mgr, err := newConfigManager()
	if err != nil {
		return nil, err
	}
	cfg := mgr.Get()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds an interactions client from config, logging to stderr so
// stdout stays clean for command output.
func newClient(cfg *config.Config) (*gemini.Client, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	return gemini.NewClient(cfg.ToClientConfig(logger))
}

// printResult renders an interaction result in the selected output format.
// Text output resolves grounding-redirect citation URLs first.
func printResult(cmd *cobra.Command, result *gemini.InteractionResult) error {
	if api.IsStructuredOutput() {
		return api.Output(result)
	}

	rendered := *result
	rendered.Sources = gemini.ResolveSourceURLs(cmd.Context(), result.Sources)
	fmt.Println(gemini.FormatResult(&rendered))
	return nil
}
