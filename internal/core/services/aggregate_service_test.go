package services_test

import (
	"testing"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type AggregateServiceTestSuite struct {
	ledgerSuite
}

func TestAggregateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AggregateServiceTestSuite))
}

func (s *AggregateServiceTestSuite) TestApply_NeverNegative() {
	task := domain.AggregateTask{UserID: testUser, Month: "2024-05", Kind: domain.KindPositive, Amount: 500, Operation: domain.AggregateCreate}
	s.Require().NoError(s.svc.Aggregate.Apply(s.ctx, task))

	task.Operation = domain.AggregateDelete
	task.Amount = 2000
	s.Require().NoError(s.svc.Aggregate.Apply(s.ctx, task))

	s.Equal(domain.Money(0), s.aggregate("2024-05").PositiveTotal)
}

func (s *AggregateServiceTestSuite) TestApply_RejectsInvalidTask() {
	err := s.svc.Aggregate.Apply(s.ctx, domain.AggregateTask{UserID: testUser, Month: "May", Kind: domain.KindPositive, Operation: domain.AggregateCreate})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AggregateServiceTestSuite) TestFindByYear_ZeroFills() {
	s.createAsset(cashAccountID, "Wallet", 10000)
	s.createAsset(creditAccountID, "Card", 2500)

	rows, err := s.svc.Aggregate.FindByYear(s.ctx, testUser, "2024")
	s.Require().NoError(err)
	s.Require().Len(rows, 12)
	s.Equal("2024-01", rows[0].Month)
	s.Equal(domain.Money(0), rows[0].PositiveTotal)
	s.Equal("2024-05", rows[4].Month)
	s.Equal(domain.Money(10000), rows[4].PositiveTotal)
	s.Equal(domain.Money(2500), rows[4].NegativeTotal)
	s.Equal(domain.Money(7500), rows[4].Total())

	_, err = s.svc.Aggregate.FindByYear(s.ctx, testUser, "24")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AggregateServiceTestSuite) TestReconcile_RebuildsFromBalances() {
	wallet := s.createAsset(cashAccountID, "Wallet", 10000)
	s.createAsset(creditAccountID, "Card", 2500)

	// Drift the row away from the balances.
	s.Require().NoError(s.svc.Aggregate.Apply(s.ctx, domain.AggregateTask{
		UserID: testUser, Month: "2024-05", Kind: domain.KindPositive, Amount: 999, Operation: domain.AggregateUpdate,
	}))
	s.Require().NoError(s.svc.Asset.DeleteAsset(s.ctx, testUser, wallet.ID))

	agg, err := s.svc.Aggregate.Reconcile(s.ctx, testUser)
	s.Require().NoError(err)
	s.Equal("2024-05", agg.Month)
	s.Equal(domain.Money(0), agg.PositiveTotal)
	s.Equal(domain.Money(2500), agg.NegativeTotal)
}

func (s *AggregateServiceTestSuite) TestCrud() {
	created, err := s.svc.Aggregate.CreateAggregate(s.ctx, testUser, dto.CreateMonthlyAggregateRequest{Month: "2023-12", Positive: 100, Negative: 40})
	s.Require().NoError(err)

	got, err := s.svc.Aggregate.GetAggregate(s.ctx, testUser, created.ID)
	s.Require().NoError(err)
	s.Equal(domain.Money(60), got.Total())

	updated, err := s.svc.Aggregate.UpdateAggregate(s.ctx, testUser, created.ID, dto.UpdateMonthlyAggregateRequest{Negative: ptr(domain.Money(10))})
	s.Require().NoError(err)
	s.Equal(domain.Money(100), updated.PositiveTotal)
	s.Equal(domain.Money(10), updated.NegativeTotal)

	_, err = s.svc.Aggregate.UpdateAggregate(s.ctx, testUser, created.ID, dto.UpdateMonthlyAggregateRequest{Positive: ptr(domain.Money(-1))})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Aggregate.CreateAggregate(s.ctx, testUser, dto.CreateMonthlyAggregateRequest{Month: "2023-13"})
	s.ErrorIs(err, apperrors.ErrValidation)

	s.Require().NoError(s.svc.Aggregate.DeleteAggregate(s.ctx, testUser, created.ID))
	_, err = s.svc.Aggregate.GetAggregate(s.ctx, testUser, created.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
