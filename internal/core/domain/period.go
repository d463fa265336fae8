package domain

import (
	"fmt"
	"time"
)

// Period is a closed-open time window [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// StartMillis and EndMillis express the window in the epoch-millisecond form used by bills.
// EndMillis is inclusive.
func (p Period) StartMillis() int64 { return p.Start.UnixMilli() }
func (p Period) EndMillis() int64   { return p.End.UnixMilli() - 1 }

// Contains reports whether the epoch-millisecond instant falls in the window.
func (p Period) Contains(ms int64) bool {
	return ms >= p.StartMillis() && ms <= p.EndMillis()
}

// MonthPeriod returns the calendar month containing t.
func MonthPeriod(t time.Time) Period {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

// YearPeriod returns the calendar year containing t.
func YearPeriod(t time.Time) Period {
	start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	return Period{Start: start, End: start.AddDate(1, 0, 0)}
}

// WeekPeriod returns the Monday-started week containing t.
func WeekPeriod(t time.Time) Period {
	offset := (int(t.Weekday()) + 6) % 7
	start := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	return Period{Start: start, End: start.AddDate(0, 0, 7)}
}

// RangePeriod resolves "week", "month" or "year" around t.
func RangePeriod(name string, t time.Time) (Period, error) {
	switch name {
	case "week":
		return WeekPeriod(t), nil
	case "month":
		return MonthPeriod(t), nil
	case "year":
		return YearPeriod(t), nil
	}
	return Period{}, fmt.Errorf("unknown time range %q, use week/month/year", name)
}

// ParseMonth parses a "YYYY-MM" key into the month window in loc.
func ParseMonth(key string, loc *time.Location) (Period, error) {
	if !ValidMonth(key) {
		return Period{}, fmt.Errorf("month %q is not YYYY-MM", key)
	}
	t, err := time.ParseInLocation(MonthKeyLayout, key, loc)
	if err != nil {
		return Period{}, err
	}
	return MonthPeriod(t), nil
}
