//go:build integration

package pgsql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/core/services"
	"github.com/SscSPs/pocket_ledger/internal/dispatch"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/SscSPs/pocket_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/pocket_ledger/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const userID = "user-1"

type PostgresTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
	svc       *portssvc.ServiceContainer
}

func TestPostgresTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}

func (s *PostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ledger"),
		postgres.WithUsername("ledger"),
		postgres.WithPassword("ledger"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	mg, err := database.NewMigrator(connStr)
	s.Require().NoError(err)
	_, err = mg.Up()
	s.Require().NoError(err)
	s.Require().NoError(mg.Close())

	s.pool, err = database.NewPgxPool(s.ctx, connStr, 10)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
	s.svc = services.NewServiceContainer(s.repos, func(applier portssvc.AggregateApplier) portssvc.AggregateDispatcher {
		return &dispatch.Inline{Applier: applier}
	})
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.pool != nil {
		database.ClosePgxPool(s.pool)
	}
	if s.container != nil {
		if err := s.container.Terminate(s.ctx); err != nil {
			s.T().Logf("Failed to terminate container: %v", err)
		}
	}
}

func (s *PostgresTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE budgets, bills, monthly_aggregates, asset_change_records, assets, tags, classifies, asset_accounts CASCADE`)
	s.Require().NoError(err)
	_, err = s.pool.Exec(s.ctx, `
		INSERT INTO asset_accounts (id, name, kind) VALUES ('cash', 'Cash', 'positive'), ('credit', 'Credit card', 'negative');
		INSERT INTO classifies (id, label, type) VALUES ('food', 'food', 'expense');`)
	s.Require().NoError(err)
}

func (s *PostgresTestSuite) createAsset(accountID, name string, amount domain.Money) *domain.Asset {
	asset, err := s.svc.Asset.CreateAsset(s.ctx, userID, dto.CreateAssetRequest{AccountID: accountID, Name: name, Amount: amount})
	s.Require().NoError(err)
	return asset
}

func (s *PostgresTestSuite) currentAggregate() domain.MonthlyAggregate {
	agg, err := s.repos.AggregateRepo.FindAggregate(s.ctx, userID, domain.MonthKey(time.Now()))
	s.Require().NoError(err)
	return *agg
}

func (s *PostgresTestSuite) trailSum(assetID string) domain.Money {
	records, err := s.repos.ChangeRepo.ListChangeRecordsByAsset(s.ctx, assetID)
	s.Require().NoError(err)
	return domain.SumDeltas(records)
}

func (s *PostgresTestSuite) TestCreateAndTransfer() {
	a := s.createAsset("cash", "A", 10000)
	b := s.createAsset("cash", "B", 0)
	s.Equal(domain.Money(10000), s.currentAggregate().PositiveTotal)

	_, err := s.svc.Asset.Transfer(s.ctx, userID, dto.TransferRequest{FromAssetID: a.ID, ToAssetID: b.ID, Amount: 5000})
	s.Require().NoError(err)

	_, err = s.svc.Asset.Transfer(s.ctx, userID, dto.TransferRequest{FromAssetID: a.ID, ToAssetID: b.ID, Amount: 15000})
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	gotA, err := s.svc.Asset.GetAsset(s.ctx, userID, a.ID)
	s.Require().NoError(err)
	s.Equal(domain.Money(5000), gotA.Amount)
	s.Equal(gotA.Amount, s.trailSum(a.ID))
	s.Equal(domain.Money(5000), s.trailSum(b.ID))
}

func (s *PostgresTestSuite) TestConcurrentTransfersNeverOverdraw() {
	a := s.createAsset("cash", "A", 10000)
	b := s.createAsset("cash", "B", 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Either direction; row locks are taken in id order so there is no deadlock.
			from, to := a.ID, b.ID
			if i%2 == 1 {
				from, to = b.ID, a.ID
			}
			_, _ = s.svc.Asset.Transfer(s.ctx, userID, dto.TransferRequest{FromAssetID: from, ToAssetID: to, Amount: 4000})
		}()
	}
	wg.Wait()

	gotA, err := s.svc.Asset.GetAsset(s.ctx, userID, a.ID)
	s.Require().NoError(err)
	gotB, err := s.svc.Asset.GetAsset(s.ctx, userID, b.ID)
	s.Require().NoError(err)
	s.GreaterOrEqual(gotA.Amount, domain.Money(0))
	s.GreaterOrEqual(gotB.Amount, domain.Money(0))
	s.Equal(domain.Money(10000), gotA.Amount+gotB.Amount)
	s.Equal(gotA.Amount, s.trailSum(a.ID))
	s.Equal(gotB.Amount, s.trailSum(b.ID))
}

func (s *PostgresTestSuite) TestAggregateFloorsAtZero() {
	_, err := s.repos.AggregateRepo.ApplyAggregateDelta(s.ctx, userID, "2024-05", 0, 1000, time.Now())
	s.Require().NoError(err)
	agg, err := s.repos.AggregateRepo.ApplyAggregateDelta(s.ctx, userID, "2024-05", -50, -3000, time.Now())
	s.Require().NoError(err)
	s.Equal(domain.Money(0), agg.PositiveTotal)
	s.Equal(domain.Money(0), agg.NegativeTotal)
}

func (s *PostgresTestSuite) TestDeleteAssetTwice() {
	card := s.createAsset("credit", "Card", 30000)
	s.Require().NoError(s.svc.Asset.DeleteAsset(s.ctx, userID, card.ID))
	s.Equal(domain.Money(0), s.currentAggregate().NegativeTotal)
	s.ErrorIs(s.svc.Asset.DeleteAsset(s.ctx, userID, card.ID), apperrors.ErrNotFound)
}

func (s *PostgresTestSuite) TestBillLinkageAndPaging() {
	wallet := s.createAsset("cash", "Wallet", 10000)
	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	for day := 0; day < 3; day++ {
		_, err := s.svc.Bill.CreateBill(s.ctx, userID, dto.CreateBillRequest{
			Type: domain.BillExpense, Amount: 1000, Date: base.AddDate(0, 0, day).UnixMilli(),
			ClassifyID: "food", AssetID: &wallet.ID,
		})
		s.Require().NoError(err)
	}

	got, err := s.svc.Asset.GetAsset(s.ctx, userID, wallet.ID)
	s.Require().NoError(err)
	s.Equal(domain.Money(7000), got.Amount)
	s.Equal(got.Amount, s.trailSum(wallet.ID))

	page, next, err := s.svc.Bill.ListBills(s.ctx, userID, dto.ListBillsParams{Limit: 2})
	s.Require().NoError(err)
	s.Len(page, 2)
	s.Require().NotNil(next)
	page, next, err = s.svc.Bill.ListBills(s.ctx, userID, dto.ListBillsParams{Limit: 2, NextToken: *next})
	s.Require().NoError(err)
	s.Len(page, 1)
	s.Nil(next)
}
