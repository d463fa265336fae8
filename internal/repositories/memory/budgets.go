package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
)

func (s *Store) FindBudgetByID(_ context.Context, userID, budgetID string) (*domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[budgetID]
	if !ok || b.UserID != userID {
		return nil, fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, budgetID)
	}
	return &b, nil
}

func (s *Store) FindBudgetByKey(_ context.Context, userID string, budgetType domain.BudgetType, parentID, classifyID *string) (*domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.budgets {
		if b.UserID == userID && b.Type == budgetType && sameOptional(b.ParentID, parentID) && sameOptional(b.ClassifyID, classifyID) {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("%w: budget", apperrors.ErrNotFound)
}

func (s *Store) ListBudgets(_ context.Context, userID string, budgetType domain.BudgetType) ([]domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Budget, 0)
	for _, b := range s.budgets {
		if b.UserID == userID && (budgetType == "" || b.Type == budgetType) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) SaveBudget(_ context.Context, budget domain.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.budgets[budget.ID]; exists {
		return fmt.Errorf("%w: budget %s", apperrors.ErrDuplicate, budget.ID)
	}
	s.budgets[budget.ID] = budget
	return nil
}

func (s *Store) UpdateBudget(_ context.Context, budget domain.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.budgets[budget.ID]
	if !ok || cur.UserID != budget.UserID {
		return fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, budget.ID)
	}
	cur.Amount = budget.Amount
	cur.UpdatedAt = budget.UpdatedAt
	s.budgets[cur.ID] = cur
	return nil
}

func (s *Store) DeleteBudgetTree(_ context.Context, userID, budgetID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	root, ok := s.budgets[budgetID]
	if !ok || root.UserID != userID {
		return 0, fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, budgetID)
	}
	var n int64
	for id, b := range s.budgets {
		if id == budgetID || (b.ParentID != nil && *b.ParentID == budgetID && b.UserID == userID) {
			delete(s.budgets, id)
			n++
		}
	}
	return n, nil
}
