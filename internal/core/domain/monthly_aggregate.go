package domain

import (
	"fmt"
	"regexp"
	"time"
)

var (
	monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	yearPattern  = regexp.MustCompile(`^\d{4}$`)
)

// MonthKeyLayout is the time layout of a month key.
const MonthKeyLayout = "2006-01"

// MonthKey returns the "YYYY-MM" key of t.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// ValidMonth reports whether s is a "YYYY-MM" key.
func ValidMonth(s string) bool {
	return monthPattern.MatchString(s)
}

// ValidYear reports whether s is a "YYYY" string.
func ValidYear(s string) bool {
	return yearPattern.MatchString(s)
}

// AggregateOperation is the kind of ledger mutation feeding an aggregate.
type AggregateOperation string

const (
	AggregateCreate AggregateOperation = "create"
	AggregateUpdate AggregateOperation = "update"
	AggregateDelete AggregateOperation = "delete"
)

// MonthlyAggregate is the per-user-per-month running total of asset value by polarity.
// Both totals are kept at or above zero.
type MonthlyAggregate struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	Month         string `json:"month"`
	PositiveTotal Money  `json:"positive"`
	NegativeTotal Money  `json:"negative"`
	AuditFields
}

// Total is the net value of the month.
func (a MonthlyAggregate) Total() Money {
	return a.PositiveTotal - a.NegativeTotal
}

// AggregateTask is one unit of deferred aggregate maintenance.
type AggregateTask struct {
	UserID    string             `json:"userId"`
	Month     string             `json:"month"`
	Kind      AccountKind        `json:"kind"`
	Amount    Money              `json:"amount"`
	Operation AggregateOperation `json:"operation"`
}

// Key identifies the aggregate row the task touches.
func (t AggregateTask) Key() string {
	return t.UserID + "|" + t.Month
}

// Deltas returns the signed changes to apply to the positive and negative totals.
func (t AggregateTask) Deltas() (positive, negative Money) {
	amount := t.Amount
	if t.Operation == AggregateDelete {
		amount = -amount
	}
	if t.Kind == KindNegative {
		return 0, amount
	}
	return amount, 0
}

// Validate checks the task before it is applied.
func (t AggregateTask) Validate() error {
	if t.UserID == "" {
		return fmt.Errorf("aggregate task without user")
	}
	if !ValidMonth(t.Month) {
		return fmt.Errorf("aggregate task month %q is not YYYY-MM", t.Month)
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("aggregate task kind %q is unknown", t.Kind)
	}
	switch t.Operation {
	case AggregateCreate, AggregateUpdate, AggregateDelete:
	default:
		return fmt.Errorf("aggregate task operation %q is unknown", t.Operation)
	}
	return nil
}

// ClampAdd adds delta to total with a floor of zero.
func ClampAdd(total, delta Money) Money {
	if sum := total + delta; sum > 0 {
		return sum
	}
	return 0
}

// YearMonths lists the twelve month keys of a year.
func YearMonths(year string) []string {
	months := make([]string, 0, 12)
	for m := 1; m <= 12; m++ {
		months = append(months, fmt.Sprintf("%s-%02d", year, m))
	}
	return months
}
