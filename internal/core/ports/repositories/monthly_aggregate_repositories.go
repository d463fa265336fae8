package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
)

// MonthlyAggregateReader defines read operations for monthly aggregates
type MonthlyAggregateReader interface {
	FindAggregate(ctx context.Context, userID, month string) (*domain.MonthlyAggregate, error)
	FindAggregateByID(ctx context.Context, userID, aggregateID string) (*domain.MonthlyAggregate, error)

	// ListAggregates returns all rows of userID, latest month first.
	ListAggregates(ctx context.Context, userID string) ([]domain.MonthlyAggregate, error)

	// ListAggregatesByYear returns the existing rows of one "YYYY" year, ascending.
	ListAggregatesByYear(ctx context.Context, userID, year string) ([]domain.MonthlyAggregate, error)
}

// MonthlyAggregateWriter defines write operations for monthly aggregates
type MonthlyAggregateWriter interface {
	// ApplyAggregateDelta finds or creates the (user, month) row and adds the deltas
	// atomically, flooring both totals at zero.
	ApplyAggregateDelta(ctx context.Context, userID, month string, positive, negative domain.Money, now time.Time) (*domain.MonthlyAggregate, error)

	// SetAggregate overwrites the totals of (user, month), creating the row if needed.
	SetAggregate(ctx context.Context, userID, month string, positive, negative domain.Money, now time.Time) (*domain.MonthlyAggregate, error)

	// SaveAggregate inserts a new row and returns ErrDuplicate when (user, month) exists.
	SaveAggregate(ctx context.Context, aggregate domain.MonthlyAggregate) error

	UpdateAggregate(ctx context.Context, aggregate domain.MonthlyAggregate) error
	DeleteAggregate(ctx context.Context, userID, aggregateID string) error
}

// MonthlyAggregateRepositoryFacade combines all monthly aggregate operations
type MonthlyAggregateRepositoryFacade interface {
	MonthlyAggregateReader
	MonthlyAggregateWriter
}
