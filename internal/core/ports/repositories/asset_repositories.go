package repositories

import (
	"context"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
)

// AssetFilter narrows asset listings. Empty fields do not filter.
type AssetFilter struct {
	AccountID string
	Kind      domain.AccountKind
}

// AssetReader defines read operations for assets. Writes go through LedgerTx.
type AssetReader interface {
	// FindAssetByID returns an active asset owned by userID.
	FindAssetByID(ctx context.Context, userID, assetID string) (*domain.Asset, error)

	// ListAssets returns the active assets of userID ordered by creation time.
	ListAssets(ctx context.Context, userID string, filter AssetFilter) ([]domain.Asset, error)
}

// ChangeRecordReader defines read operations for the change record log.
type ChangeRecordReader interface {
	FindChangeRecord(ctx context.Context, userID, recordID string) (*domain.ChangeRecord, error)

	// ListChangeRecords returns records of one asset within period, newest first.
	ListChangeRecords(ctx context.Context, userID, assetID string, period domain.Period) ([]domain.ChangeRecord, error)

	// ListChangeRecordsByAsset returns the whole trail of an asset, oldest first.
	ListChangeRecordsByAsset(ctx context.Context, assetID string) ([]domain.ChangeRecord, error)
}
