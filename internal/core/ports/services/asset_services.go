package services

import (
	"context"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pocket_ledger/internal/dto"
)

// AssetReaderSvc defines read operations of the asset ledger
type AssetReaderSvc interface {
	GetAsset(ctx context.Context, userID, assetID string) (*domain.Asset, error)
	ListAssets(ctx context.Context, userID string, filter portsrepo.AssetFilter) ([]domain.Asset, domain.AssetSummary, error)
}

// AssetLedgerSvc defines the balance-mutating operations of the asset ledger.
// Each mutation appends change records in the same transaction and dispatches
// aggregate maintenance after commit.
type AssetLedgerSvc interface {
	CreateAsset(ctx context.Context, userID string, req dto.CreateAssetRequest) (*domain.Asset, error)
	UpdateAsset(ctx context.Context, userID, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error)
	DeleteAsset(ctx context.Context, userID, assetID string) error
	Transfer(ctx context.Context, userID string, req dto.TransferRequest) (*domain.TransferResult, error)
}

// AssetSvcFacade combines all asset service interfaces
type AssetSvcFacade interface {
	AssetReaderSvc
	AssetLedgerSvc
}

// ChangeRecordSvc defines the change record log operations
type ChangeRecordSvc interface {
	// ListByAssetAndMonth groups one asset's records of a "YYYY-MM" month by day.
	ListByAssetAndMonth(ctx context.Context, userID, assetID, month string) ([]domain.ChangeRecordDay, error)
	GetChangeRecord(ctx context.Context, userID, recordID string) (*domain.ChangeRecord, error)

	// AddNote appends a zero-delta manual record carrying only a remark.
	AddNote(ctx context.Context, userID string, req dto.AddNoteRequest) (*domain.ChangeRecord, error)
}
