package services

import (
	"context"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	"github.com/SscSPs/pocket_ledger/internal/dto"
)

// BudgetSvcFacade defines the budget tracker
type BudgetSvcFacade interface {
	// CreateBudget inserts the budget or replaces the amount of the existing one
	// with the same type, parent and classify.
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error
	GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string, budgetType domain.BudgetType) ([]domain.Budget, error)

	// Usage compares every budget of the type against expense totals in the
	// month or year containing anchor.
	Usage(ctx context.Context, userID string, budgetType domain.BudgetType, anchor time.Time) ([]domain.BudgetUsage, error)
}
