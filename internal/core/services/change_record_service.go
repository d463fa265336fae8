package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
)

type changeRecordService struct {
	BaseService
	ledger     portsrepo.TransactionManager
	assetRepo  portsrepo.AssetReader
	changeRepo portsrepo.ChangeRecordReader
}

// NewChangeRecordService creates the read side of the change record log.
func NewChangeRecordService(ledger portsrepo.TransactionManager, assetRepo portsrepo.AssetReader, changeRepo portsrepo.ChangeRecordReader, options ...ServiceOption) portssvc.ChangeRecordSvc {
	svc := &changeRecordService{
		ledger:     ledger,
		assetRepo:  assetRepo,
		changeRepo: changeRepo,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.ChangeRecordSvc = (*changeRecordService)(nil)

func (s *changeRecordService) ListByAssetAndMonth(ctx context.Context, userID, assetID, month string) ([]domain.ChangeRecordDay, error) {
	period, err := domain.ParseMonth(month, s.Now().Location())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if _, err := s.assetRepo.FindAssetByID(ctx, userID, assetID); err != nil {
		return nil, err
	}

	records, err := s.changeRepo.ListChangeRecords(ctx, userID, assetID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list change records",
			slog.String("asset_id", assetID),
			slog.String("month", month))
		return nil, err
	}
	return domain.GroupByDay(records), nil
}

func (s *changeRecordService) GetChangeRecord(ctx context.Context, userID, recordID string) (*domain.ChangeRecord, error) {
	return s.changeRepo.FindChangeRecord(ctx, userID, recordID)
}

func (s *changeRecordService) AddNote(ctx context.Context, userID string, req dto.AddNoteRequest) (*domain.ChangeRecord, error) {
	remark := strings.TrimSpace(req.Remark)
	if remark == "" {
		return nil, fmt.Errorf("%w: note remark is required", apperrors.ErrValidation)
	}

	var record domain.ChangeRecord
	err := s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		asset, err := tx.FindAssetForUpdate(ctx, userID, req.AssetID)
		if err != nil {
			return err
		}
		record = newChangeRecord(*asset, 0, domain.ChangeManual, remark, s.Now())
		return tx.AppendChangeRecord(ctx, record)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add note", slog.String("asset_id", req.AssetID))
		return nil, err
	}
	return &record, nil
}
