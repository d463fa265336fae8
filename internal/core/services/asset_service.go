package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/SscSPs/pocket_ledger/internal/platform/metrics"
	"github.com/google/uuid"
)

// assetService implements the AssetSvcFacade interface
type assetService struct {
	BaseService
	ledger      portsrepo.TransactionManager
	assetRepo   portsrepo.AssetReader
	accountRepo portsrepo.AssetAccountReader
}

// NewAssetService creates the asset ledger.
func NewAssetService(ledger portsrepo.TransactionManager, assetRepo portsrepo.AssetReader, accountRepo portsrepo.AssetAccountReader, options ...ServiceOption) portssvc.AssetSvcFacade {
	svc := &assetService{
		ledger:      ledger,
		assetRepo:   assetRepo,
		accountRepo: accountRepo,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

func (s *assetService) GetAsset(ctx context.Context, userID, assetID string) (*domain.Asset, error) {
	return s.assetRepo.FindAssetByID(ctx, userID, assetID)
}

func (s *assetService) ListAssets(ctx context.Context, userID string, filter portsrepo.AssetFilter) ([]domain.Asset, domain.AssetSummary, error) {
	assets, err := s.assetRepo.ListAssets(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list assets", slog.String("user_id", userID))
		return nil, domain.AssetSummary{}, err
	}
	return assets, domain.Summarize(assets), nil
}

func (s *assetService) CreateAsset(ctx context.Context, userID string, req dto.CreateAssetRequest) (asset *domain.Asset, err error) {
	defer func() { metrics.ObserveLedger("asset_create", err) }()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: asset name is required", apperrors.ErrValidation)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: initial amount must not be negative", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindActiveAccount(ctx, req.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find asset account", slog.String("account_id", req.AccountID))
		return nil, err
	}
	if req.Kind != "" && req.Kind != account.Kind {
		return nil, fmt.Errorf("%w: kind %s does not match account kind %s", apperrors.ErrValidation, req.Kind, account.Kind)
	}

	now := s.Now()
	newAsset := domain.Asset{
		ID:          uuid.NewString(),
		AccountID:   account.ID,
		UserID:      userID,
		Name:        name,
		Amount:      req.Amount,
		Kind:        account.Kind,
		Remark:      req.Remark,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if err := tx.InsertAsset(ctx, newAsset); err != nil {
			return err
		}
		record := newChangeRecord(newAsset, newAsset.Amount, domain.ChangeManual,
			fmt.Sprintf("created asset %s, initial amount %s", newAsset.Name, newAsset.Amount), now)
		return tx.AppendChangeRecord(ctx, record)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create asset", slog.String("user_id", userID), slog.String("account_id", account.ID))
		return nil, err
	}

	s.dispatchAggregate(ctx, userID, newAsset.Kind, newAsset.Amount, domain.AggregateCreate)
	s.LogInfo(ctx, "Asset created", slog.String("asset_id", newAsset.ID), slog.String("amount", newAsset.Amount.String()))
	return &newAsset, nil
}

func (s *assetService) UpdateAsset(ctx context.Context, userID, assetID string, req dto.UpdateAssetRequest) (asset *domain.Asset, err error) {
	defer func() { metrics.ObserveLedger("asset_update", err) }()

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: asset name must not be empty", apperrors.ErrValidation)
	}
	if req.Amount != nil && req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}

	now := s.Now()
	var (
		updated domain.Asset
		delta   domain.Money
	)
	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		current, err := tx.FindAssetForUpdate(ctx, userID, assetID)
		if err != nil {
			return err
		}
		updated = *current
		if req.Name != nil {
			updated.Name = strings.TrimSpace(*req.Name)
		}
		if req.Remark != nil {
			updated.Remark = *req.Remark
		}
		if req.Amount != nil {
			updated.Amount = *req.Amount
			delta = updated.Amount - current.Amount
		}
		updated.UpdatedAt = now

		if err := tx.UpdateAsset(ctx, updated); err != nil {
			return err
		}
		if delta == 0 {
			return nil
		}
		record := newChangeRecord(updated, delta, domain.ChangeManual,
			fmt.Sprintf("adjusted balance from %s to %s", current.Amount, updated.Amount), now)
		return tx.AppendChangeRecord(ctx, record)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update asset", slog.String("asset_id", assetID))
		return nil, err
	}

	s.dispatchAggregate(ctx, userID, updated.Kind, delta, domain.AggregateUpdate)
	return &updated, nil
}

func (s *assetService) DeleteAsset(ctx context.Context, userID, assetID string) (err error) {
	defer func() { metrics.ObserveLedger("asset_delete", err) }()

	existing, err := s.assetRepo.FindAssetByID(ctx, userID, assetID)
	if err != nil {
		return err
	}
	account, err := s.accountRepo.FindActiveAccount(ctx, existing.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Owning account of asset is missing",
			slog.String("asset_id", assetID),
			slog.String("account_id", existing.AccountID))
		return err
	}

	var (
		amount  domain.Money
		removed int64
	)
	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		locked, err := tx.FindAssetForUpdate(ctx, userID, assetID)
		if err != nil {
			return err
		}
		amount = locked.Amount
		if err := tx.DeactivateAsset(ctx, assetID, s.Now()); err != nil {
			return err
		}
		removed, err = tx.DeleteChangeRecordsByAsset(ctx, assetID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete asset", slog.String("asset_id", assetID))
		return err
	}

	s.dispatchAggregate(ctx, userID, account.Kind, amount, domain.AggregateDelete)
	s.LogInfo(ctx, "Asset deleted", slog.String("asset_id", assetID), slog.Int64("records_removed", removed))
	return nil
}

func (s *assetService) Transfer(ctx context.Context, userID string, req dto.TransferRequest) (result *domain.TransferResult, err error) {
	defer func() { metrics.ObserveLedger("asset_transfer", err) }()

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.FromAssetID == req.ToAssetID {
		return nil, fmt.Errorf("%w: cannot transfer an asset to itself", apperrors.ErrValidation)
	}

	now := s.Now()
	at := now
	if req.CreatedAt != nil && *req.CreatedAt > 0 {
		at = time.UnixMilli(*req.CreatedAt).In(now.Location())
	}

	var res domain.TransferResult
	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		locked, err := tx.FindAssetsForUpdate(ctx, userID, []string{req.FromAssetID, req.ToAssetID})
		if err != nil {
			return err
		}
		from, ok := locked[req.FromAssetID]
		if !ok {
			return fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, req.FromAssetID)
		}
		to, ok := locked[req.ToAssetID]
		if !ok {
			return fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, req.ToAssetID)
		}
		if from.Amount < req.Amount {
			return fmt.Errorf("%w: asset %s holds %s, transfer needs %s",
				apperrors.ErrInsufficientFunds, from.ID, from.Amount, req.Amount)
		}

		from.Amount -= req.Amount
		from.UpdatedAt = now
		to.Amount += req.Amount
		to.UpdatedAt = now
		if err := tx.UpdateAsset(ctx, from); err != nil {
			return err
		}
		if err := tx.UpdateAsset(ctx, to); err != nil {
			return err
		}

		out := newChangeRecord(from, -req.Amount, domain.ChangeTransferOut, transferRemark("transfer to", to.Name, req.Remark), at)
		in := newChangeRecord(to, req.Amount, domain.ChangeTransferIn, transferRemark("transfer from", from.Name, req.Remark), at)
		if err := tx.AppendChangeRecord(ctx, out); err != nil {
			return err
		}
		if err := tx.AppendChangeRecord(ctx, in); err != nil {
			return err
		}
		res = domain.TransferResult{From: from, To: to, OutRecord: out, InRecord: in}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to transfer between assets",
			slog.String("from_asset_id", req.FromAssetID),
			slog.String("to_asset_id", req.ToAssetID))
		return nil, err
	}

	s.dispatchEffects(ctx, userID, []balanceEffect{
		{kind: res.From.Kind, delta: -req.Amount},
		{kind: res.To.Kind, delta: req.Amount},
	})
	s.LogInfo(ctx, "Transfer completed",
		slog.String("from_asset_id", res.From.ID),
		slog.String("to_asset_id", res.To.ID),
		slog.String("amount", req.Amount.String()))
	return &res, nil
}

func newChangeRecord(asset domain.Asset, delta domain.Money, kind domain.ChangeKind, remark string, at time.Time) domain.ChangeRecord {
	return domain.ChangeRecord{
		ID:        uuid.NewString(),
		AssetID:   asset.ID,
		UserID:    asset.UserID,
		Delta:     delta,
		Kind:      kind,
		Remark:    remark,
		CreatedAt: at,
	}
}

func transferRemark(prefix, counterpart, remark string) string {
	if remark == "" {
		return prefix + " " + counterpart
	}
	return fmt.Sprintf("%s %s: %s", prefix, counterpart, remark)
}
