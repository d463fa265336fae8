package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/core/services"
	"github.com/SscSPs/pocket_ledger/internal/dispatch"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/SscSPs/pocket_ledger/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

const (
	testUser        = "user-1"
	cashAccountID   = "acc-cash"
	creditAccountID = "acc-credit"
	foodClassifyID  = "cls-food"
	rentClassifyID  = "cls-rent"
	salaryClassify  = "cls-salary"
)

// ledgerSuite runs the services over the memory store with aggregates applied inline.
type ledgerSuite struct {
	suite.Suite
	ctx   context.Context
	now   time.Time
	store *memory.Store
	svc   *portssvc.ServiceContainer
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, time.May, 14, 10, 0, 0, 0, time.UTC)
	s.store = memory.New()

	s.store.SeedAccount(domain.AssetAccount{ID: cashAccountID, Name: "Cash", Kind: domain.KindPositive, IsActive: true})
	s.store.SeedAccount(domain.AssetAccount{ID: creditAccountID, Name: "Credit card", Kind: domain.KindNegative, IsActive: true})
	s.store.SeedClassify(domain.Classify{ID: foodClassifyID, Label: "food", Type: domain.BillExpense, IsActive: true})
	s.store.SeedClassify(domain.Classify{ID: rentClassifyID, Label: "rent", Type: domain.BillExpense, IsActive: true})
	s.store.SeedClassify(domain.Classify{ID: salaryClassify, Label: "salary", Type: domain.BillIncome, IsActive: true})

	clock := func() time.Time { return s.now }
	s.svc = services.NewServiceContainer(s.store.Provider(),
		func(applier portssvc.AggregateApplier) portssvc.AggregateDispatcher {
			return &dispatch.Inline{Applier: applier}
		},
		services.WithClock(clock),
	)
}

func (s *ledgerSuite) createAsset(accountID, name string, amount domain.Money) *domain.Asset {
	asset, err := s.svc.Asset.CreateAsset(s.ctx, testUser, dto.CreateAssetRequest{
		AccountID: accountID,
		Name:      name,
		Amount:    amount,
	})
	s.Require().NoError(err)
	return asset
}

func (s *ledgerSuite) balance(assetID string) domain.Money {
	asset, err := s.svc.Asset.GetAsset(s.ctx, testUser, assetID)
	s.Require().NoError(err)
	return asset.Amount
}

func (s *ledgerSuite) aggregate(month string) domain.MonthlyAggregate {
	agg, err := s.store.FindAggregate(s.ctx, testUser, month)
	if err != nil {
		return domain.MonthlyAggregate{Month: month}
	}
	return *agg
}

func (s *ledgerSuite) records(assetID string) []domain.ChangeRecord {
	records, err := s.store.ListChangeRecordsByAsset(s.ctx, assetID)
	s.Require().NoError(err)
	return records
}

// requireTrailMatchesBalance checks the running sum of the trail against the balance.
func (s *ledgerSuite) requireTrailMatchesBalance(assetID string) {
	s.Require().Equal(s.balance(assetID), domain.SumDeltas(s.records(assetID)))
}

func ptr[T any](v T) *T { return &v }
