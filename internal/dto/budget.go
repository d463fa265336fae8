package dto

import (
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest creates or replaces the budget for (type, parent, classify).
type CreateBudgetRequest struct {
	Type       domain.BudgetType `json:"type" binding:"required,oneof=monthly yearly"`
	Amount     domain.Money      `json:"amount" binding:"gte=0"`
	ClassifyID *string           `json:"classifyId"`
	ParentID   *string           `json:"parentId"`
}

// UpdateBudgetRequest changes a budget's amount.
type UpdateBudgetRequest struct {
	Amount domain.Money `json:"amount" binding:"gte=0"`
}

// BudgetUsageParams selects the usage window. Date is epoch milliseconds and defaults to now.
type BudgetUsageParams struct {
	Type string `form:"type" binding:"required,oneof=monthly yearly"`
	Date int64  `form:"date" binding:"omitempty,gte=0"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	ID         string            `json:"id"`
	Type       domain.BudgetType `json:"type"`
	Amount     domain.Money      `json:"amount"`
	ClassifyID *string           `json:"classifyId,omitempty"`
	ParentID   *string           `json:"parentId,omitempty"`
}

// BudgetUsageResponse defines a budget compared against spending.
type BudgetUsageResponse struct {
	BudgetResponse
	Used       domain.Money    `json:"used"`
	Remaining  domain.Money    `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
}

func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:         b.ID,
		Type:       b.Type,
		Amount:     b.Amount,
		ClassifyID: b.ClassifyID,
		ParentID:   b.ParentID,
	}
}

func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return res
}

func ToBudgetUsageResponse(usages []domain.BudgetUsage) []BudgetUsageResponse {
	res := make([]BudgetUsageResponse, len(usages))
	for i := range usages {
		res[i] = BudgetUsageResponse{
			BudgetResponse: ToBudgetResponse(&usages[i].Budget),
			Used:           usages[i].Used,
			Remaining:      usages[i].Remaining,
			Percentage:     usages[i].Percentage,
		}
	}
	return res
}
