package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/pocket_ledger/internal/platform/config"
	"github.com/SscSPs/pocket_ledger/internal/platform/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbURL   string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Maintenance commands for the pocket ledger",
	Long: `ledgerctl manages the pocket ledger database outside the HTTP server.

Configuration is read from the same environment variables and .env file as
the server. --db overrides PGSQL_URL.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to PGSQL_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// loadConfig reads the shared configuration and applies the global flags.
func loadConfig() (*config.Config, *slog.Logger, error) {
	if dbURL != "" {
		os.Setenv("PGSQL_URL", dbURL)
		os.Setenv("STORAGE", config.StoragePostgres)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.New(os.Stderr, level, "text", false)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func requirePostgres(cfg *config.Config) error {
	if cfg.Storage != config.StoragePostgres || cfg.DatabaseURL == "" {
		return fmt.Errorf("this command needs a postgres database, set --db or PGSQL_URL")
	}
	return nil
}
