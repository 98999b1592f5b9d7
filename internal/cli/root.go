// Package cli provides the command-line interface for ezsql.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhath/ezsql/internal/config"
	"github.com/nhath/ezsql/internal/logger"
)

// Version is set at build time.
var Version = "dev"

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		debug   bool
	)

	rootCmd := &cobra.Command{
		Use:   "ezsql",
		Short: "ezsql - interactive SQL console",
		Long: `ezsql is a terminal SQL console for SQLite, PostgreSQL and MySQL.

Type SQL with keyword suggestions, run it, and keep the statements you
reuse as named saved queries.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var (
				cfg *config.Config
				err error
			)
			if cfgFile != "" {
				cfg, err = config.LoadFrom(cfgFile)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			level := logger.ParseLevel(cfg.LogLevel)
			if debug {
				level = slog.LevelDebug
			}
			if err := logger.Init(level, cfg.LogFile); err != nil {
				// Logs are diagnostics only; the command still runs.
				logger.InitWriter(io.Discard, level)
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: file logging disabled: %v\n", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/ezsql/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")

	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newQueryCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newSavedCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newProfileCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	defer logger.Close()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// getConfig returns the config loaded by the root command.
func getConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}
