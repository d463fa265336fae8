package domain

import (
	"sort"
	"time"
)

// BillType distinguishes spending from earning.
type BillType string

const (
	BillExpense BillType = "expense"
	BillIncome  BillType = "income"
)

func (t BillType) Valid() bool {
	return t == BillExpense || t == BillIncome
}

// Bill is a single income or expense event. Date is epoch milliseconds so
// entries can be backdated freely.
type Bill struct {
	ID         string   `json:"id"`
	UserID     string   `json:"userId"`
	Type       BillType `json:"type"`
	Amount     Money    `json:"amount"`
	Date       int64    `json:"date"`
	ClassifyID string   `json:"classifyId"`
	AssetID    *string  `json:"assetId,omitempty"`
	TagID      *string  `json:"tagId,omitempty"`
	Remark     string   `json:"remark"`
	Images     []string `json:"images"`
	IsActive   bool     `json:"isActive"`
	AuditFields
}

// SignedAmount is the effect of the bill on a linked asset balance.
func (b Bill) SignedAmount() Money {
	if b.Type == BillExpense {
		return -b.Amount
	}
	return b.Amount
}

// Time returns the bill date as a time in loc.
func (b Bill) Time(loc *time.Location) time.Time {
	return time.UnixMilli(b.Date).In(loc)
}

// BillFilter narrows bill listings. Zero values do not filter.
// After resumes a newest-first listing strictly past the given bill; Limit caps the page.
type BillFilter struct {
	Type      BillType
	StartDate int64
	EndDate   int64
	Keyword   string
	After     *BillCursor
	Limit     int
}

// BillCursor is the (date, id) position of a bill in newest-first order.
type BillCursor struct {
	Date int64
	ID   string
}

// Before reports whether b sorts after the cursor in newest-first order.
func (c BillCursor) Before(b Bill) bool {
	return b.Date < c.Date || (b.Date == c.Date && b.ID < c.ID)
}

// BillSummary totals bills by type.
type BillSummary struct {
	Expense Money `json:"expense"`
	Income  Money `json:"income"`
}

// DailyBillStat totals bills of one calendar day.
type DailyBillStat struct {
	Date    string `json:"date"`
	Expense Money  `json:"expense"`
	Income  Money  `json:"income"`
}

// BillStatistics is the summary view of a time range.
type BillStatistics struct {
	Range   string          `json:"range"`
	Start   int64           `json:"start"`
	End     int64           `json:"end"`
	Summary BillSummary     `json:"summary"`
	Daily   []DailyBillStat `json:"daily"`
	Bills   []Bill          `json:"bills"`
}

// SummarizeBills folds bills into a summary and per-day totals in ascending date order.
func SummarizeBills(bills []Bill, loc *time.Location) (BillSummary, []DailyBillStat) {
	var summary BillSummary
	byDay := make(map[string]*DailyBillStat)
	order := make([]string, 0)
	for _, b := range bills {
		day := b.Time(loc).Format("2006-01-02")
		stat, ok := byDay[day]
		if !ok {
			stat = &DailyBillStat{Date: day}
			byDay[day] = stat
			order = append(order, day)
		}
		if b.Type == BillExpense {
			summary.Expense += b.Amount
			stat.Expense += b.Amount
		} else {
			summary.Income += b.Amount
			stat.Income += b.Amount
		}
	}
	sort.Strings(order)
	daily := make([]DailyBillStat, 0, len(order))
	for _, day := range order {
		daily = append(daily, *byDay[day])
	}
	return summary, daily
}
