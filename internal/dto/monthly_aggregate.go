package dto

import "github.com/SscSPs/pocket_ledger/internal/core/domain"

// CreateMonthlyAggregateRequest records a month's totals by hand.
type CreateMonthlyAggregateRequest struct {
	Month    string       `json:"month" binding:"required,month"`
	Positive domain.Money `json:"positive" binding:"gte=0"`
	Negative domain.Money `json:"negative" binding:"gte=0"`
}

// UpdateMonthlyAggregateRequest overwrites a month's totals. Absent fields are kept.
type UpdateMonthlyAggregateRequest struct {
	Positive *domain.Money `json:"positive" binding:"omitempty,gte=0"`
	Negative *domain.Money `json:"negative" binding:"omitempty,gte=0"`
}

// MonthlyAggregateResponse defines the data returned for an aggregate row.
// ID is empty for zero-filled months that have no stored row.
type MonthlyAggregateResponse struct {
	ID       string       `json:"id,omitempty"`
	Month    string       `json:"month"`
	Positive domain.Money `json:"positive"`
	Negative domain.Money `json:"negative"`
	Total    domain.Money `json:"total"`
}

func ToMonthlyAggregateResponse(a *domain.MonthlyAggregate) MonthlyAggregateResponse {
	return MonthlyAggregateResponse{
		ID:       a.ID,
		Month:    a.Month,
		Positive: a.PositiveTotal,
		Negative: a.NegativeTotal,
		Total:    a.Total(),
	}
}

func ToListMonthlyAggregateResponse(rows []domain.MonthlyAggregate) []MonthlyAggregateResponse {
	res := make([]MonthlyAggregateResponse, len(rows))
	for i := range rows {
		res[i] = ToMonthlyAggregateResponse(&rows[i])
	}
	return res
}
