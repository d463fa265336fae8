package services

import (
	"context"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	"github.com/SscSPs/pocket_ledger/internal/dto"
)

// AccountRegistrySvc is the asset account collaborator of the ledger.
type AccountRegistrySvc interface {
	FindActiveAccount(ctx context.Context, accountID string) (*domain.AssetAccount, error)
	HasActiveChildren(ctx context.Context, accountID string) (bool, error)
	ListAccounts(ctx context.Context) ([]domain.AssetAccount, error)
	CreateAccount(ctx context.Context, req dto.CreateAssetAccountRequest) (*domain.AssetAccount, error)

	// DeactivateAccount fails with ErrDuplicate while active children exist.
	DeactivateAccount(ctx context.Context, accountID string) error
}
