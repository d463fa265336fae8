package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/google/uuid"
)

type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepositoryFacade
	billRepo     portsrepo.BillReader
	categoryRepo portsrepo.CategoryReader
}

func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, billRepo portsrepo.BillReader, categoryRepo portsrepo.CategoryReader, options ...ServiceOption) portssvc.BudgetSvcFacade {
	svc := &budgetService{
		budgetRepo:   budgetRepo,
		billRepo:     billRepo,
		categoryRepo: categoryRepo,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: budget type %q is unknown", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: budget amount must not be negative", apperrors.ErrValidation)
	}
	if req.ClassifyID != nil {
		if _, err := s.categoryRepo.FindClassify(ctx, *req.ClassifyID); err != nil {
			return nil, err
		}
	}
	if req.ParentID != nil {
		parent, err := s.budgetRepo.FindBudgetByID(ctx, userID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.IsTotal() || parent.ParentID != nil || parent.Type != req.Type {
			return nil, fmt.Errorf("%w: parent budget %s must be a %s total budget", apperrors.ErrValidation, parent.ID, req.Type)
		}
	}

	now := s.Now()
	existing, err := s.budgetRepo.FindBudgetByKey(ctx, userID, req.Type, req.ParentID, req.ClassifyID)
	switch {
	case err == nil:
		existing.Amount = req.Amount
		existing.UpdatedAt = now
		if err := s.budgetRepo.UpdateBudget(ctx, *existing); err != nil {
			s.LogError(ctx, err, "Failed to replace budget", slog.String("budget_id", existing.ID))
			return nil, err
		}
		return existing, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up budget")
		return nil, err
	}

	budget := domain.Budget{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        req.Type,
		Amount:      req.Amount,
		ClassifyID:  req.ClassifyID,
		ParentID:    req.ParentID,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget")
		return nil, err
	}
	return &budget, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: budget amount must not be negative", apperrors.ErrValidation)
	}
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	budget.Amount = req.Amount
	budget.UpdatedAt = s.Now()
	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, err
	}
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	removed, err := s.budgetRepo.DeleteBudgetTree(ctx, userID, budgetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		return err
	}
	if removed == 0 {
		return fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, budgetID)
	}
	return nil
}

func (s *budgetService) GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	return s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string, budgetType domain.BudgetType) ([]domain.Budget, error) {
	if budgetType != "" && !budgetType.Valid() {
		return nil, fmt.Errorf("%w: budget type %q is unknown", apperrors.ErrValidation, budgetType)
	}
	return s.budgetRepo.ListBudgets(ctx, userID, budgetType)
}

func (s *budgetService) Usage(ctx context.Context, userID string, budgetType domain.BudgetType, anchor time.Time) ([]domain.BudgetUsage, error) {
	var period domain.Period
	switch budgetType {
	case domain.BudgetMonthly:
		period = domain.MonthPeriod(anchor)
	case domain.BudgetYearly:
		period = domain.YearPeriod(anchor)
	default:
		return nil, fmt.Errorf("%w: budget type %q is unknown", apperrors.ErrValidation, budgetType)
	}

	budgets, err := s.budgetRepo.ListBudgets(ctx, userID, budgetType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("type", string(budgetType)))
		return nil, err
	}
	totals, err := s.billRepo.ExpenseTotalsByClassify(ctx, userID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to total expenses", slog.String("type", string(budgetType)))
		return nil, err
	}
	var all domain.Money
	for _, amount := range totals {
		all += amount
	}

	usages := make([]domain.BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		if b.Amount <= 0 {
			return nil, fmt.Errorf("%w: budget %s has no amount", apperrors.ErrInvalidBudget, b.ID)
		}
		used := all
		if !b.IsTotal() {
			used = totals[*b.ClassifyID]
		}
		usages = append(usages, domain.BudgetUsage{
			Budget:     b,
			Used:       used,
			Remaining:  b.Amount - used,
			Percentage: domain.UsagePercentage(used, b.Amount),
		})
	}
	return usages, nil
}
