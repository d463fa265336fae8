package services

import (
	"context"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	"github.com/SscSPs/pocket_ledger/internal/dto"
)

// AggregateApplier applies one aggregate task to storage.
type AggregateApplier interface {
	Apply(ctx context.Context, task domain.AggregateTask) error
}

// AggregateDispatcher hands aggregate tasks off after the primary operation commits.
// Dispatch never reports failure to the caller.
type AggregateDispatcher interface {
	Dispatch(ctx context.Context, task domain.AggregateTask)
}

// MonthlyAggregateSvc defines the monthly aggregate maintainer and its statistics views
type MonthlyAggregateSvc interface {
	AggregateApplier

	ListAggregates(ctx context.Context, userID string) ([]domain.MonthlyAggregate, error)

	// FindByYear returns twelve rows for a "YYYY" year, zero-filled where no row exists.
	FindByYear(ctx context.Context, userID, year string) ([]domain.MonthlyAggregate, error)

	GetAggregate(ctx context.Context, userID, aggregateID string) (*domain.MonthlyAggregate, error)
	CreateAggregate(ctx context.Context, userID string, req dto.CreateMonthlyAggregateRequest) (*domain.MonthlyAggregate, error)
	UpdateAggregate(ctx context.Context, userID, aggregateID string, req dto.UpdateMonthlyAggregateRequest) (*domain.MonthlyAggregate, error)
	DeleteAggregate(ctx context.Context, userID, aggregateID string) error

	// Reconcile overwrites the current month with the per-kind sums of the active asset balances.
	Reconcile(ctx context.Context, userID string) (*domain.MonthlyAggregate, error)
}
