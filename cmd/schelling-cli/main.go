package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"schelling/internal/config"
	"schelling/internal/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schelling-cli",
		Short: "Headless Schelling segregation runs",
		Long: `schelling-cli runs the Schelling segregation model without a window.

Agents of two types live on a square grid. Each step, every agent whose share
of dissimilar neighbours exceeds the relocation threshold moves to a random
empty cell. Runs stop when nobody wants to move, when the step budget is used
up, or on Ctrl-C.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newServeCmd(),
		newShowCmd(),
	)
	return rootCmd
}

// loadConfig resolves settings in order: defaults, config file, SCHELLING_*
// environment variables, then flags set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format, _ = flags.GetString("log-format")
	}
	if flags.Lookup("size") != nil {
		applySimFlags(cmd, cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
}
