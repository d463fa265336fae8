package pgsql

import (
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	assetRepo := newPgxAssetRepository(dbPool)

	return portsrepo.RepositoryProvider{
		Ledger:        newPgxLedgerRepository(dbPool),
		AccountRepo:   accountRepo,
		CategoryRepo:  accountRepo,
		AssetRepo:     assetRepo,
		ChangeRepo:    assetRepo,
		AggregateRepo: newPgxMonthlyAggregateRepository(dbPool),
		BillRepo:      newPgxBillRepository(dbPool),
		BudgetRepo:    newPgxBudgetRepository(dbPool),
	}
}
