package services

import (
	"context"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	"github.com/SscSPs/pocket_ledger/internal/dto"
)

// BillReaderSvc defines read operations for bills
type BillReaderSvc interface {
	GetBill(ctx context.Context, userID, billID string) (*domain.Bill, error)
	// ListBills returns one newest-first page and the token of the next page, if any.
	ListBills(ctx context.Context, userID string, params dto.ListBillsParams) ([]domain.Bill, *string, error)
	Statistics(ctx context.Context, userID string, params dto.BillStatisticsParams) (*domain.BillStatistics, error)

	// CurrentBills lists the bills of the current month or year.
	CurrentBills(ctx context.Context, userID, timeRange string) ([]domain.Bill, error)
}

// BillWriterSvc defines bill mutations. A bill linked to an asset moves that
// asset's balance in the same transaction.
type BillWriterSvc interface {
	CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (*domain.Bill, error)
	UpdateBill(ctx context.Context, userID, billID string, req dto.UpdateBillRequest) (*domain.Bill, error)
	DeleteBill(ctx context.Context, userID, billID string) error
}

// BillSvcFacade combines all bill service interfaces
type BillSvcFacade interface {
	BillReaderSvc
	BillWriterSvc
}
