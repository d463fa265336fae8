package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
)

// LedgerTx exposes the row-locking reads and writes available inside one ledger
// transaction. Every method runs against the same transaction; locks are held
// until RunInTx returns.
type LedgerTx interface {
	// FindAssetForUpdate loads an active asset owned by userID and locks its row.
	FindAssetForUpdate(ctx context.Context, userID, assetID string) (*domain.Asset, error)

	// FindAssetsForUpdate locks several active assets in ascending id order.
	// Missing ids are absent from the result.
	FindAssetsForUpdate(ctx context.Context, userID string, assetIDs []string) (map[string]domain.Asset, error)

	InsertAsset(ctx context.Context, asset domain.Asset) error

	// UpdateAsset writes name, remark and amount of a locked asset.
	UpdateAsset(ctx context.Context, asset domain.Asset) error

	DeactivateAsset(ctx context.Context, assetID string, now time.Time) error

	AppendChangeRecord(ctx context.Context, record domain.ChangeRecord) error

	// DeleteChangeRecordsByAsset hard-deletes the trail of an asset and returns the number removed.
	DeleteChangeRecordsByAsset(ctx context.Context, assetID string) (int64, error)

	InsertBill(ctx context.Context, bill domain.Bill) error

	// FindBillForUpdate loads an active bill owned by userID and locks its row.
	FindBillForUpdate(ctx context.Context, userID, billID string) (*domain.Bill, error)

	UpdateBill(ctx context.Context, bill domain.Bill) error

	DeactivateBill(ctx context.Context, billID string, now time.Time) error
}

// TransactionManager runs fn inside one all-or-nothing ledger transaction.
// A non-nil error from fn rolls back every write made through tx.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
