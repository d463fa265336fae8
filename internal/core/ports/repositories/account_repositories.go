package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
)

// AssetAccountReader defines read operations for asset accounts
type AssetAccountReader interface {
	// FindActiveAccount returns the account when it exists and is active, ErrNotFound otherwise.
	FindActiveAccount(ctx context.Context, accountID string) (*domain.AssetAccount, error)

	// HasActiveChildren reports whether any active account names accountID as parent.
	HasActiveChildren(ctx context.Context, accountID string) (bool, error)

	ListAccounts(ctx context.Context) ([]domain.AssetAccount, error)
}

// AssetAccountWriter defines write operations for asset accounts
type AssetAccountWriter interface {
	SaveAccount(ctx context.Context, account domain.AssetAccount) error
	DeactivateAccount(ctx context.Context, accountID string, now time.Time) error
}

// AssetAccountRepositoryFacade combines all asset account operations
type AssetAccountRepositoryFacade interface {
	AssetAccountReader
	AssetAccountWriter
}

// CategoryReader is the read side of the classify and tag collaborators.
type CategoryReader interface {
	FindClassify(ctx context.Context, classifyID string) (*domain.Classify, error)
	FindTag(ctx context.Context, tagID string) (*domain.Tag, error)
}
