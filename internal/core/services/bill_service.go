package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/SscSPs/pocket_ledger/internal/platform/metrics"
	"github.com/SscSPs/pocket_ledger/internal/utils/pagination"
	"github.com/google/uuid"
)

// billService records bills. A bill linked to an asset moves that asset's
// balance and appends to its change record log in the same transaction.
type billService struct {
	BaseService
	ledger       portsrepo.TransactionManager
	billRepo     portsrepo.BillReader
	categoryRepo portsrepo.CategoryReader
}

func NewBillService(ledger portsrepo.TransactionManager, billRepo portsrepo.BillReader, categoryRepo portsrepo.CategoryReader, options ...ServiceOption) portssvc.BillSvcFacade {
	svc := &billService{
		ledger:       ledger,
		billRepo:     billRepo,
		categoryRepo: categoryRepo,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

func (s *billService) GetBill(ctx context.Context, userID, billID string) (*domain.Bill, error) {
	return s.billRepo.FindBillByID(ctx, userID, billID)
}

func (s *billService) ListBills(ctx context.Context, userID string, params dto.ListBillsParams) ([]domain.Bill, *string, error) {
	if params.StartDate > 0 && params.EndDate > 0 && params.StartDate > params.EndDate {
		return nil, nil, fmt.Errorf("%w: startDate is after endDate", apperrors.ErrValidation)
	}
	filter := domain.BillFilter{
		Type:      domain.BillType(params.Type),
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Keyword:   params.Keyword,
		Limit:     pagination.ClampLimit(params.Limit),
	}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeBillCursor(params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.After = cursor
	}

	bills, err := s.billRepo.ListBills(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills", slog.String("user_id", userID))
		return nil, nil, err
	}

	var nextToken *string
	if len(bills) == filter.Limit {
		token := pagination.EncodeBillCursor(bills[len(bills)-1])
		nextToken = &token
	}
	return bills, nextToken, nil
}

func (s *billService) Statistics(ctx context.Context, userID string, params dto.BillStatisticsParams) (*domain.BillStatistics, error) {
	anchor := s.Now()
	if params.Date > 0 {
		anchor = time.UnixMilli(params.Date).In(anchor.Location())
	}
	period, err := domain.RangePeriod(params.TimeRange, anchor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	bills, err := s.billRepo.ListBills(ctx, userID, domain.BillFilter{
		Type:      domain.BillType(params.Type),
		StartDate: period.StartMillis(),
		EndDate:   period.EndMillis(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills for statistics", slog.String("range", params.TimeRange))
		return nil, err
	}

	summary, daily := domain.SummarizeBills(bills, anchor.Location())
	return &domain.BillStatistics{
		Range:   params.TimeRange,
		Start:   period.StartMillis(),
		End:     period.EndMillis(),
		Summary: summary,
		Daily:   daily,
		Bills:   bills,
	}, nil
}

func (s *billService) CurrentBills(ctx context.Context, userID, timeRange string) ([]domain.Bill, error) {
	var period domain.Period
	switch timeRange {
	case "month":
		period = domain.MonthPeriod(s.Now())
	case "year":
		period = domain.YearPeriod(s.Now())
	default:
		return nil, fmt.Errorf("%w: time range %q, use month/year", apperrors.ErrValidation, timeRange)
	}
	return s.billRepo.ListBills(ctx, userID, domain.BillFilter{
		StartDate: period.StartMillis(),
		EndDate:   period.EndMillis(),
	})
}

func (s *billService) CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (created *domain.Bill, err error) {
	defer func() { metrics.ObserveLedger("bill_create", err) }()

	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: bill type %q is unknown", apperrors.ErrValidation, req.Type)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: bill amount must be positive", apperrors.ErrValidation)
	}
	if req.Date <= 0 {
		return nil, fmt.Errorf("%w: bill date is required", apperrors.ErrValidation)
	}
	classify, err := s.resolveCategories(ctx, req.ClassifyID, req.TagID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	bill := domain.Bill{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        req.Type,
		Amount:      req.Amount,
		Date:        req.Date,
		ClassifyID:  classify.ID,
		AssetID:     req.AssetID,
		TagID:       req.TagID,
		Remark:      req.Remark,
		Images:      slices.Clone(req.Images),
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	var effects []balanceEffect
	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if err := tx.InsertBill(ctx, bill); err != nil {
			return err
		}
		if bill.AssetID == nil {
			return nil
		}
		effect, err := s.moveBalance(ctx, tx, userID, *bill.AssetID, bill.SignedAmount(), bill.Type,
			billRemark(bill.Type, classify.Label), bill.Time(now.Location()), now)
		if err != nil {
			return err
		}
		effects = append(effects, effect)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create bill", slog.String("user_id", userID))
		return nil, err
	}

	s.dispatchEffects(ctx, userID, effects)
	return &bill, nil
}

func (s *billService) UpdateBill(ctx context.Context, userID, billID string, req dto.UpdateBillRequest) (updated *domain.Bill, err error) {
	defer func() { metrics.ObserveLedger("bill_update", err) }()

	if req.Type != nil && !req.Type.Valid() {
		return nil, fmt.Errorf("%w: bill type %q is unknown", apperrors.ErrValidation, *req.Type)
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return nil, fmt.Errorf("%w: bill amount must be positive", apperrors.ErrValidation)
	}
	if req.Date != nil && *req.Date <= 0 {
		return nil, fmt.Errorf("%w: bill date must be positive", apperrors.ErrValidation)
	}
	if req.ClearAsset && req.AssetID != nil {
		return nil, fmt.Errorf("%w: assetId and clearAsset are exclusive", apperrors.ErrValidation)
	}

	current, err := s.billRepo.FindBillByID(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	classifyID := current.ClassifyID
	if req.ClassifyID != nil {
		classifyID = *req.ClassifyID
	}
	tagID := current.TagID
	if req.TagID != nil {
		tagID = req.TagID
	}
	classify, err := s.resolveCategories(ctx, classifyID, tagID)
	if err != nil {
		return nil, err
	}
	oldLabel := s.classifyLabel(ctx, current.ClassifyID)

	now := s.Now()
	var (
		next    domain.Bill
		effects []balanceEffect
	)
	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		old, err := tx.FindBillForUpdate(ctx, userID, billID)
		if err != nil {
			return err
		}
		next = applyBillUpdate(*old, req, classify.ID, tagID, now)
		if err := tx.UpdateBill(ctx, next); err != nil {
			return err
		}

		at := next.Time(now.Location())
		applyRemark := billRemark(next.Type, classify.Label)

		if old.AssetID != nil && next.AssetID != nil && *old.AssetID == *next.AssetID {
			net := next.SignedAmount() - old.SignedAmount()
			if net == 0 {
				return nil
			}
			effect, err := s.moveBalance(ctx, tx, userID, *next.AssetID, net, next.Type, applyRemark, at, now)
			switch {
			case err == nil:
				effects = append(effects, effect)
			case !isNotFound(err):
				return err
			}
			return nil
		}

		if old.AssetID != nil {
			effect, err := s.moveBalance(ctx, tx, userID, *old.AssetID, -old.SignedAmount(), old.Type,
				"revert "+billRemark(old.Type, oldLabel), now, now)
			switch {
			case err == nil:
				effects = append(effects, effect)
			case !isNotFound(err):
				return err
			}
		}
		if next.AssetID != nil {
			effect, err := s.moveBalance(ctx, tx, userID, *next.AssetID, next.SignedAmount(), next.Type, applyRemark, at, now)
			if err != nil {
				return err
			}
			effects = append(effects, effect)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update bill", slog.String("bill_id", billID))
		return nil, err
	}

	s.dispatchEffects(ctx, userID, effects)
	return &next, nil
}

func (s *billService) DeleteBill(ctx context.Context, userID, billID string) (err error) {
	defer func() { metrics.ObserveLedger("bill_delete", err) }()

	current, err := s.billRepo.FindBillByID(ctx, userID, billID)
	if err != nil {
		return err
	}
	label := s.classifyLabel(ctx, current.ClassifyID)

	now := s.Now()
	var effects []balanceEffect
	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		bill, err := tx.FindBillForUpdate(ctx, userID, billID)
		if err != nil {
			return err
		}
		if err := tx.DeactivateBill(ctx, billID, now); err != nil {
			return err
		}
		if bill.AssetID == nil {
			return nil
		}
		effect, err := s.moveBalance(ctx, tx, userID, *bill.AssetID, -bill.SignedAmount(), bill.Type,
			"revert "+billRemark(bill.Type, label), now, now)
		if err != nil {
			// A deleted asset took its trail along; there is nothing left to revert.
			if isNotFound(err) {
				return nil
			}
			return err
		}
		effects = append(effects, effect)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete bill", slog.String("bill_id", billID))
		return err
	}

	s.dispatchEffects(ctx, userID, effects)
	return nil
}

// moveBalance locks the asset, shifts its balance by delta and appends the matching record.
func (s *billService) moveBalance(ctx context.Context, tx portsrepo.LedgerTx, userID, assetID string, delta domain.Money, billType domain.BillType, remark string, at, now time.Time) (balanceEffect, error) {
	asset, err := tx.FindAssetForUpdate(ctx, userID, assetID)
	if err != nil {
		return balanceEffect{}, err
	}
	asset.Amount += delta
	asset.UpdatedAt = now
	if err := tx.UpdateAsset(ctx, *asset); err != nil {
		return balanceEffect{}, err
	}
	kind := domain.ChangeIncome
	if billType == domain.BillExpense {
		kind = domain.ChangeExpense
	}
	if err := tx.AppendChangeRecord(ctx, newChangeRecord(*asset, delta, kind, remark, at)); err != nil {
		return balanceEffect{}, err
	}
	return balanceEffect{kind: asset.Kind, delta: delta}, nil
}

func (s *billService) resolveCategories(ctx context.Context, classifyID string, tagID *string) (*domain.Classify, error) {
	classify, err := s.categoryRepo.FindClassify(ctx, classifyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find classify", slog.String("classify_id", classifyID))
		return nil, err
	}
	if tagID != nil {
		if _, err := s.categoryRepo.FindTag(ctx, *tagID); err != nil {
			s.LogError(ctx, err, "Failed to find tag", slog.String("tag_id", *tagID))
			return nil, err
		}
	}
	return classify, nil
}

// classifyLabel falls back to the id when the classify has since been deactivated.
func (s *billService) classifyLabel(ctx context.Context, classifyID string) string {
	classify, err := s.categoryRepo.FindClassify(ctx, classifyID)
	if err != nil {
		return classifyID
	}
	return classify.Label
}

func applyBillUpdate(bill domain.Bill, req dto.UpdateBillRequest, classifyID string, tagID *string, now time.Time) domain.Bill {
	if req.Type != nil {
		bill.Type = *req.Type
	}
	if req.Amount != nil {
		bill.Amount = *req.Amount
	}
	if req.Date != nil {
		bill.Date = *req.Date
	}
	if req.AssetID != nil {
		bill.AssetID = req.AssetID
	}
	if req.ClearAsset {
		bill.AssetID = nil
	}
	if req.Remark != nil {
		bill.Remark = *req.Remark
	}
	if req.Images != nil {
		bill.Images = slices.Clone(req.Images)
	}
	bill.ClassifyID = classifyID
	bill.TagID = tagID
	bill.UpdatedAt = now
	return bill
}

func billRemark(t domain.BillType, label string) string {
	return fmt.Sprintf("%s(%s)", t, label)
}
