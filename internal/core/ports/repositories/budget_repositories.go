package repositories

import (
	"context"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
)

// BudgetReader defines read operations for budgets
type BudgetReader interface {
	FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error)

	// FindBudgetByKey finds the budget of (user, type, parent, classify). Nil pointers match NULL.
	FindBudgetByKey(ctx context.Context, userID string, budgetType domain.BudgetType, parentID, classifyID *string) (*domain.Budget, error)

	// ListBudgets returns the budgets of userID; an empty type lists all.
	ListBudgets(ctx context.Context, userID string, budgetType domain.BudgetType) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budgets
type BudgetWriter interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudgetTree removes a budget and its children, returning the number of rows removed.
	DeleteBudgetTree(ctx context.Context, userID, budgetID string) (int64, error)
}

// BudgetRepositoryFacade combines all budget operations
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
