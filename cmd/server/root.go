package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"esgtrack/internal/platform/config"
	"esgtrack/internal/platform/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "esgtrack",
		Short: "ESG metric tracking service",
		Long: `esgtrack derives ESG metric entries from ERP document events and serves
records and reports over HTTP.

Configuration is read from the environment (DATABASE_URL, REDIS_URL,
KAFKA_BROKERS, JWT_SIGNING_KEY, ...).`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newTokenCmd())
	return root
}

// setup loads configuration and builds the process logger.
func setup() (config.Config, *slog.Logger) {
	cfg := config.FromEnv()
	return cfg, logger.New(cfg.LogLevel)
}
