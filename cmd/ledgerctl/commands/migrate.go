package commands

import (
	"fmt"

	"github.com/SscSPs/pocket_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run the embedded schema migrations.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back every migration
  version  - Show the current schema version`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		mg, err := openMigrator()
		if err != nil {
			return err
		}
		defer mg.Close()

		changed, err := mg.Up()
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "no change")
		}
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		mg, err := openMigrator()
		if err != nil {
			return err
		}
		defer mg.Close()

		if err := mg.Down(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		mg, err := openMigrator()
		if err != nil {
			return err
		}
		defer mg.Close()

		version, dirty, err := mg.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
		return nil
	},
}

func openMigrator() (*database.Migrator, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := requirePostgres(cfg); err != nil {
		return nil, err
	}
	return database.NewMigrator(cfg.DatabaseURL)
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}
