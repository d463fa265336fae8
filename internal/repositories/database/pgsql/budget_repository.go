package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 AND user_id = $2`
	b, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID, userID))
	if err != nil {
		return nil, mapError(err, "budget %s", budgetID)
	}
	return b, nil
}

func (r *PgxBudgetRepository) FindBudgetByKey(ctx context.Context, userID string, budgetType domain.BudgetType, parentID, classifyID *string) (*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1 AND type = $2
		  AND parent_id IS NOT DISTINCT FROM $3
		  AND classify_id IS NOT DISTINCT FROM $4;
	`
	b, err := scanBudget(r.Pool.QueryRow(ctx, query, userID, string(budgetType), nullString(parentID), nullString(classifyID)))
	if err != nil {
		return nil, mapError(err, "budget")
	}
	return b, nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, userID string, budgetType domain.BudgetType) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND ($2 = '' OR type = $2) ORDER BY created_at, id`
	rows, err := r.Pool.Query(ctx, query, userID, string(budgetType))
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]domain.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, *b)
	}
	return budgets, rows.Err()
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, b domain.Budget) error {
	query := `
		INSERT INTO budgets (id, user_id, type, amount, classify_id, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query, b.ID, b.UserID, string(b.Type), b.Amount.Decimal(), nullString(b.ClassifyID), nullString(b.ParentID), b.CreatedAt, b.UpdatedAt)
	return mapError(err, "budget %s", b.ID)
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, b domain.Budget) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE budgets SET amount = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`,
		b.Amount.Decimal(), b.UpdatedAt, b.ID, b.UserID)
	if err != nil {
		return mapError(err, "failed to update budget %s", b.ID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, b.ID)
	}
	return nil
}

// DeleteBudgetTree removes the budget and its children in one statement.
func (r *PgxBudgetRepository) DeleteBudgetTree(ctx context.Context, userID, budgetID string) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE user_id = $1 AND (id = $2 OR parent_id = $2)`, userID, budgetID)
	if err != nil {
		return 0, mapError(err, "failed to delete budget %s", budgetID)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, budgetID)
	}
	return cmdTag.RowsAffected(), nil
}
