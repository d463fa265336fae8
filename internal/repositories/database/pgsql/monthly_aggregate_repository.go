package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMonthlyAggregateRepository struct {
	BaseRepository
}

func newPgxMonthlyAggregateRepository(pool *pgxpool.Pool) *PgxMonthlyAggregateRepository {
	return &PgxMonthlyAggregateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MonthlyAggregateRepositoryFacade = (*PgxMonthlyAggregateRepository)(nil)

// ApplyAggregateDelta is a single upsert; the row lock taken by ON CONFLICT
// serializes concurrent deltas on the same (user, month).
func (r *PgxMonthlyAggregateRepository) ApplyAggregateDelta(ctx context.Context, userID, month string, positive, negative domain.Money, now time.Time) (*domain.MonthlyAggregate, error) {
	query := `
		INSERT INTO monthly_aggregates AS ma (id, user_id, month, positive_total, negative_total, created_at, updated_at)
		VALUES ($1, $2, $3, GREATEST($4::numeric, 0), GREATEST($5::numeric, 0), $6, $6)
		ON CONFLICT (user_id, month) DO UPDATE
		SET positive_total = GREATEST(ma.positive_total + $4::numeric, 0),
		    negative_total = GREATEST(ma.negative_total + $5::numeric, 0),
		    updated_at = $6
		RETURNING ` + aggregateColumns + `;
	`
	agg, err := scanAggregate(r.Pool.QueryRow(ctx, query, uuid.NewString(), userID, month, positive.Decimal(), negative.Decimal(), now))
	if err != nil {
		return nil, mapError(err, "failed to apply aggregate delta for %s", month)
	}
	return agg, nil
}

func (r *PgxMonthlyAggregateRepository) SetAggregate(ctx context.Context, userID, month string, positive, negative domain.Money, now time.Time) (*domain.MonthlyAggregate, error) {
	query := `
		INSERT INTO monthly_aggregates AS ma (id, user_id, month, positive_total, negative_total, created_at, updated_at)
		VALUES ($1, $2, $3, GREATEST($4::numeric, 0), GREATEST($5::numeric, 0), $6, $6)
		ON CONFLICT (user_id, month) DO UPDATE
		SET positive_total = EXCLUDED.positive_total,
		    negative_total = EXCLUDED.negative_total,
		    updated_at = $6
		RETURNING ` + aggregateColumns + `;
	`
	agg, err := scanAggregate(r.Pool.QueryRow(ctx, query, uuid.NewString(), userID, month, positive.Decimal(), negative.Decimal(), now))
	if err != nil {
		return nil, mapError(err, "failed to set aggregate for %s", month)
	}
	return agg, nil
}

func (r *PgxMonthlyAggregateRepository) SaveAggregate(ctx context.Context, a domain.MonthlyAggregate) error {
	query := `
		INSERT INTO monthly_aggregates (id, user_id, month, positive_total, negative_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, a.ID, a.UserID, a.Month, a.PositiveTotal.Decimal(), a.NegativeTotal.Decimal(), a.CreatedAt, a.UpdatedAt)
	return mapError(err, "monthly aggregate %s", a.Month)
}

func (r *PgxMonthlyAggregateRepository) UpdateAggregate(ctx context.Context, a domain.MonthlyAggregate) error {
	query := `UPDATE monthly_aggregates SET positive_total = $1, negative_total = $2, updated_at = $3 WHERE id = $4 AND user_id = $5`
	cmdTag, err := r.Pool.Exec(ctx, query, a.PositiveTotal.Decimal(), a.NegativeTotal.Decimal(), a.UpdatedAt, a.ID, a.UserID)
	if err != nil {
		return mapError(err, "failed to update monthly aggregate %s", a.ID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: monthly aggregate %s", apperrors.ErrNotFound, a.ID)
	}
	return nil
}

func (r *PgxMonthlyAggregateRepository) DeleteAggregate(ctx context.Context, userID, aggregateID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM monthly_aggregates WHERE id = $1 AND user_id = $2`, aggregateID, userID)
	if err != nil {
		return mapError(err, "failed to delete monthly aggregate %s", aggregateID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: monthly aggregate %s", apperrors.ErrNotFound, aggregateID)
	}
	return nil
}

func (r *PgxMonthlyAggregateRepository) FindAggregate(ctx context.Context, userID, month string) (*domain.MonthlyAggregate, error) {
	query := `SELECT ` + aggregateColumns + ` FROM monthly_aggregates WHERE user_id = $1 AND month = $2`
	agg, err := scanAggregate(r.Pool.QueryRow(ctx, query, userID, month))
	if err != nil {
		return nil, mapError(err, "monthly aggregate %s", month)
	}
	return agg, nil
}

func (r *PgxMonthlyAggregateRepository) FindAggregateByID(ctx context.Context, userID, aggregateID string) (*domain.MonthlyAggregate, error) {
	query := `SELECT ` + aggregateColumns + ` FROM monthly_aggregates WHERE id = $1 AND user_id = $2`
	agg, err := scanAggregate(r.Pool.QueryRow(ctx, query, aggregateID, userID))
	if err != nil {
		return nil, mapError(err, "monthly aggregate %s", aggregateID)
	}
	return agg, nil
}

func (r *PgxMonthlyAggregateRepository) ListAggregates(ctx context.Context, userID string) ([]domain.MonthlyAggregate, error) {
	query := `SELECT ` + aggregateColumns + ` FROM monthly_aggregates WHERE user_id = $1 ORDER BY month DESC`
	return r.queryAggregates(ctx, query, userID)
}

func (r *PgxMonthlyAggregateRepository) ListAggregatesByYear(ctx context.Context, userID, year string) ([]domain.MonthlyAggregate, error) {
	query := `SELECT ` + aggregateColumns + ` FROM monthly_aggregates WHERE user_id = $1 AND month LIKE $2 ORDER BY month`
	return r.queryAggregates(ctx, query, userID, year+"-%")
}

func (r *PgxMonthlyAggregateRepository) queryAggregates(ctx context.Context, query string, args ...any) ([]domain.MonthlyAggregate, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly aggregates: %w", err)
	}
	defer rows.Close()

	out := make([]domain.MonthlyAggregate, 0)
	for rows.Next() {
		agg, err := scanAggregate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly aggregate row: %w", err)
		}
		out = append(out, *agg)
	}
	return out, rows.Err()
}
