package commands

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/pocket_ledger/internal/core/services"
	"github.com/SscSPs/pocket_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/pocket_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var reconcileUsers []string

// reconcileCmd rebuilds the current month's aggregate of each user from the
// active asset balances.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Rebuild the current monthly aggregate from asset balances",
	Example: `  ledgerctl reconcile --user u-1
  ledgerctl reconcile --user u-1 --user u-2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(reconcileUsers) == 0 {
			return fmt.Errorf("at least one --user is required")
		}
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if err := requirePostgres(cfg); err != nil {
			return err
		}

		ctx := cmd.Context()
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return err
		}
		defer database.ClosePgxPool(dbPool)

		repos := pgsql.NewRepositoryProvider(dbPool)
		aggregateService := services.NewAggregateService(repos.AggregateRepo, repos.AssetRepo)

		for _, userID := range reconcileUsers {
			aggregate, err := aggregateService.Reconcile(ctx, userID)
			if err != nil {
				logger.Error("Reconcile failed", slog.String("user_id", userID), slog.String("error", err.Error()))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s positive=%s negative=%s\n",
				userID, aggregate.Month, aggregate.PositiveTotal.String(), aggregate.NegativeTotal.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
	reconcileCmd.Flags().StringSliceVar(&reconcileUsers, "user", nil, "User ID to reconcile (repeatable)")
}
