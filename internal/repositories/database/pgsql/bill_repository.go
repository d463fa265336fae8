package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBillRepository struct {
	BaseRepository
}

func newPgxBillRepository(pool *pgxpool.Pool) *PgxBillRepository {
	return &PgxBillRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BillReader = (*PgxBillRepository)(nil)

func (r *PgxBillRepository) FindBillByID(ctx context.Context, userID, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1 AND user_id = $2 AND is_active`
	bill, err := scanBill(r.Pool.QueryRow(ctx, query, billID, userID))
	if err != nil {
		return nil, mapError(err, "bill %s", billID)
	}
	return bill, nil
}

func (r *PgxBillRepository) ListBills(ctx context.Context, userID string, filter domain.BillFilter) ([]domain.Bill, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + billColumns + ` FROM bills WHERE user_id = $1 AND is_active`)
	args := []any{userID}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		fmt.Fprintf(&sb, " AND type = $%d", len(args))
	}
	if filter.StartDate > 0 {
		args = append(args, filter.StartDate)
		fmt.Fprintf(&sb, " AND date >= $%d", len(args))
	}
	if filter.EndDate > 0 {
		args = append(args, filter.EndDate)
		fmt.Fprintf(&sb, " AND date <= $%d", len(args))
	}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		fmt.Fprintf(&sb, " AND remark ILIKE $%d", len(args))
	}
	if filter.After != nil {
		args = append(args, filter.After.Date, filter.After.ID)
		fmt.Fprintf(&sb, " AND (date, id) < ($%d, $%d)", len(args)-1, len(args))
	}
	sb.WriteString(" ORDER BY date DESC, id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	bills := make([]domain.Bill, 0)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		bills = append(bills, *bill)
	}
	return bills, rows.Err()
}

func (r *PgxBillRepository) ExpenseTotalsByClassify(ctx context.Context, userID string, period domain.Period) (map[string]domain.Money, error) {
	query := `
		SELECT classify_id, SUM(amount)
		FROM bills
		WHERE user_id = $1 AND is_active AND type = 'expense' AND date BETWEEN $2 AND $3
		GROUP BY classify_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID, period.StartMillis(), period.EndMillis())
	if err != nil {
		return nil, fmt.Errorf("failed to total expenses: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]domain.Money)
	for rows.Next() {
		var (
			classifyID string
			sum        decimal.Decimal
		)
		if err := rows.Scan(&classifyID, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan expense total: %w", err)
		}
		m, err := toMoney(sum)
		if err != nil {
			return nil, err
		}
		totals[classifyID] = m
	}
	return totals, rows.Err()
}
