package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/internal/config"
	"github.com/schemaforge/schemaforge/internal/logging"
)

var (
	cfgFile  string
	logLevel string
	version  = "dev"
	commit   = "none"
	date     = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "schemaforge",
	Short: "Schemaforge — schema migrations generated from Go definitions",
	Long: `Schemaforge scans Go table definitions, diffs them against persisted
snapshots, and generates versioned migration files plus an append-only
registrar. Destructive changes are gated behind an explicit decision.`,
	SilenceUsage: true,
}

func Execute() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config file and builds the run logger. Every
// subcommand starts here.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	level := logLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.Setup(level, cfg.Logging.Directory)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.schemaforge.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
