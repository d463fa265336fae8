package domain

import "github.com/shopspring/decimal"

// BudgetType is the length of the budget window.
type BudgetType string

const (
	BudgetMonthly BudgetType = "monthly"
	BudgetYearly  BudgetType = "yearly"
)

func (t BudgetType) Valid() bool {
	return t == BudgetMonthly || t == BudgetYearly
}

// Budget is a spending ceiling. A nil ClassifyID makes it a total budget;
// ParentID groups sub-budgets under a total one level deep.
type Budget struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Type       BudgetType `json:"type"`
	Amount     Money      `json:"amount"`
	ClassifyID *string    `json:"classifyId,omitempty"`
	ParentID   *string    `json:"parentId,omitempty"`
	AuditFields
}

// IsTotal reports whether the budget spans all categories.
func (b Budget) IsTotal() bool {
	return b.ClassifyID == nil
}

// BudgetUsage is a budget compared against expense totals in its window.
type BudgetUsage struct {
	Budget     Budget          `json:"budget"`
	Used       Money           `json:"used"`
	Remaining  Money           `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
}

var hundred = decimal.NewFromInt(100)

// UsagePercentage returns min(100, used/amount*100) rounded to two places.
// The caller guarantees amount is positive.
func UsagePercentage(used, amount Money) decimal.Decimal {
	if used <= 0 {
		return decimal.Zero
	}
	pct := decimal.NewFromInt(int64(used)).Mul(hundred).Div(decimal.NewFromInt(int64(amount))).Round(2)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}
