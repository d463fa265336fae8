package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountRegistrySvc interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AssetAccountRepositoryFacade
}

// NewAccountService creates the asset account registry.
func NewAccountService(repo portsrepo.AssetAccountRepositoryFacade, options ...ServiceOption) portssvc.AccountRegistrySvc {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.AccountRegistrySvc = (*accountService)(nil)

func (s *accountService) FindActiveAccount(ctx context.Context, accountID string) (*domain.AssetAccount, error) {
	return s.accountRepo.FindActiveAccount(ctx, accountID)
}

func (s *accountService) HasActiveChildren(ctx context.Context, accountID string) (bool, error) {
	return s.accountRepo.HasActiveChildren(ctx, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.AssetAccount, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list asset accounts")
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAssetAccountRequest) (*domain.AssetAccount, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: account kind %q is unknown", apperrors.ErrValidation, req.Kind)
	}

	if req.ParentID != nil {
		parent, err := s.accountRepo.FindActiveAccount(ctx, *req.ParentID)
		if err != nil {
			s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_id", *req.ParentID))
			return nil, err
		}
		// One level of nesting only.
		if parent.ParentID != nil {
			return nil, fmt.Errorf("%w: parent account %s is itself a child", apperrors.ErrValidation, parent.ID)
		}
		if parent.Kind != req.Kind {
			return nil, fmt.Errorf("%w: child kind %s differs from parent kind %s", apperrors.ErrValidation, req.Kind, parent.Kind)
		}
	}

	now := s.Now()
	account := domain.AssetAccount{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Kind:        req.Kind,
		ParentID:    req.ParentID,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save asset account", slog.String("account_id", account.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Asset account created", slog.String("account_id", account.ID))
	return &account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string) error {
	if _, err := s.accountRepo.FindActiveAccount(ctx, accountID); err != nil {
		return err
	}
	hasChildren, err := s.accountRepo.HasActiveChildren(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check child accounts", slog.String("account_id", accountID))
		return err
	}
	if hasChildren {
		return fmt.Errorf("%w: account %s still has active children", apperrors.ErrDuplicate, accountID)
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate asset account", slog.String("account_id", accountID))
		return err
	}
	return nil
}
