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

// aggregateService maintains the per-user-per-month totals. Apply is the
// consumer end of the dispatcher; the rest backs the statistics views.
type aggregateService struct {
	BaseService
	aggregateRepo portsrepo.MonthlyAggregateRepositoryFacade
	assetRepo     portsrepo.AssetReader
}

func NewAggregateService(aggregateRepo portsrepo.MonthlyAggregateRepositoryFacade, assetRepo portsrepo.AssetReader, options ...ServiceOption) portssvc.MonthlyAggregateSvc {
	svc := &aggregateService{
		aggregateRepo: aggregateRepo,
		assetRepo:     assetRepo,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.MonthlyAggregateSvc = (*aggregateService)(nil)

// Apply routes the task amount to the total matching the account kind.
func (s *aggregateService) Apply(ctx context.Context, task domain.AggregateTask) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	positive, negative := task.Deltas()
	agg, err := s.aggregateRepo.ApplyAggregateDelta(ctx, task.UserID, task.Month, positive, negative, s.Now())
	if err != nil {
		return err
	}
	s.LogDebug(ctx, "Monthly aggregate applied",
		slog.String("user_id", task.UserID),
		slog.String("month", task.Month),
		slog.String("positive", agg.PositiveTotal.String()),
		slog.String("negative", agg.NegativeTotal.String()))
	return nil
}

func (s *aggregateService) ListAggregates(ctx context.Context, userID string) ([]domain.MonthlyAggregate, error) {
	return s.aggregateRepo.ListAggregates(ctx, userID)
}

func (s *aggregateService) FindByYear(ctx context.Context, userID, year string) ([]domain.MonthlyAggregate, error) {
	if !domain.ValidYear(year) {
		return nil, fmt.Errorf("%w: year %q is not YYYY", apperrors.ErrValidation, year)
	}
	rows, err := s.aggregateRepo.ListAggregatesByYear(ctx, userID, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to list monthly aggregates", slog.String("year", year))
		return nil, err
	}

	byMonth := make(map[string]domain.MonthlyAggregate, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row
	}
	months := domain.YearMonths(year)
	out := make([]domain.MonthlyAggregate, 0, len(months))
	for _, month := range months {
		if row, ok := byMonth[month]; ok {
			out = append(out, row)
			continue
		}
		out = append(out, domain.MonthlyAggregate{UserID: userID, Month: month})
	}
	return out, nil
}

func (s *aggregateService) GetAggregate(ctx context.Context, userID, aggregateID string) (*domain.MonthlyAggregate, error) {
	return s.aggregateRepo.FindAggregateByID(ctx, userID, aggregateID)
}

func (s *aggregateService) CreateAggregate(ctx context.Context, userID string, req dto.CreateMonthlyAggregateRequest) (*domain.MonthlyAggregate, error) {
	if !domain.ValidMonth(req.Month) {
		return nil, fmt.Errorf("%w: month %q is not YYYY-MM", apperrors.ErrValidation, req.Month)
	}
	if req.Positive.IsNegative() || req.Negative.IsNegative() {
		return nil, fmt.Errorf("%w: totals must not be negative", apperrors.ErrValidation)
	}

	now := s.Now()
	agg := domain.MonthlyAggregate{
		ID:            uuid.NewString(),
		UserID:        userID,
		Month:         req.Month,
		PositiveTotal: req.Positive,
		NegativeTotal: req.Negative,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.aggregateRepo.SaveAggregate(ctx, agg); err != nil {
		s.LogError(ctx, err, "Failed to save monthly aggregate", slog.String("month", req.Month))
		return nil, err
	}
	return &agg, nil
}

func (s *aggregateService) UpdateAggregate(ctx context.Context, userID, aggregateID string, req dto.UpdateMonthlyAggregateRequest) (*domain.MonthlyAggregate, error) {
	agg, err := s.aggregateRepo.FindAggregateByID(ctx, userID, aggregateID)
	if err != nil {
		return nil, err
	}
	if req.Positive != nil {
		if req.Positive.IsNegative() {
			return nil, fmt.Errorf("%w: positive total must not be negative", apperrors.ErrValidation)
		}
		agg.PositiveTotal = *req.Positive
	}
	if req.Negative != nil {
		if req.Negative.IsNegative() {
			return nil, fmt.Errorf("%w: negative total must not be negative", apperrors.ErrValidation)
		}
		agg.NegativeTotal = *req.Negative
	}
	agg.UpdatedAt = s.Now()

	if err := s.aggregateRepo.UpdateAggregate(ctx, *agg); err != nil {
		s.LogError(ctx, err, "Failed to update monthly aggregate", slog.String("aggregate_id", aggregateID))
		return nil, err
	}
	return agg, nil
}

func (s *aggregateService) DeleteAggregate(ctx context.Context, userID, aggregateID string) error {
	return s.aggregateRepo.DeleteAggregate(ctx, userID, aggregateID)
}

func (s *aggregateService) Reconcile(ctx context.Context, userID string) (*domain.MonthlyAggregate, error) {
	assets, err := s.assetRepo.ListAssets(ctx, userID, portsrepo.AssetFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list assets for reconcile", slog.String("user_id", userID))
		return nil, err
	}
	summary := domain.Summarize(assets)

	now := s.Now()
	month := domain.MonthKey(now)
	agg, err := s.aggregateRepo.SetAggregate(ctx, userID, month, summary.Positive, summary.Negative, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to reconcile monthly aggregate", slog.String("user_id", userID), slog.String("month", month))
		return nil, err
	}

	s.LogInfo(ctx, "Monthly aggregate reconciled",
		slog.String("user_id", userID),
		slog.String("month", month),
		slog.Int("assets", len(assets)))
	return agg, nil
}
