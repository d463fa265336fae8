package repositories

import (
	"context"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
)

// BillReader defines read operations for bills. Writes go through LedgerTx.
type BillReader interface {
	// FindBillByID returns an active bill owned by userID.
	FindBillByID(ctx context.Context, userID, billID string) (*domain.Bill, error)

	// ListBills returns active bills matching filter, newest first.
	ListBills(ctx context.Context, userID string, filter domain.BillFilter) ([]domain.Bill, error)

	// ExpenseTotalsByClassify sums active expense bills of userID within period per classify id.
	ExpenseTotalsByClassify(ctx context.Context, userID string, period domain.Period) (map[string]domain.Money, error)
}
