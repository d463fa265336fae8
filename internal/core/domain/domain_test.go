package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateTaskDeltas(t *testing.T) {
	tests := []struct {
		name    string
		task    AggregateTask
		wantPos Money
		wantNeg Money
	}{
		{"create positive", AggregateTask{Kind: KindPositive, Amount: 10000, Operation: AggregateCreate}, 10000, 0},
		{"update negative signed", AggregateTask{Kind: KindNegative, Amount: -2500, Operation: AggregateUpdate}, 0, -2500},
		{"delete negative", AggregateTask{Kind: KindNegative, Amount: 30000, Operation: AggregateDelete}, 0, -30000},
		{"delete positive", AggregateTask{Kind: KindPositive, Amount: 700, Operation: AggregateDelete}, -700, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, neg := tt.task.Deltas()
			assert.Equal(t, tt.wantPos, pos)
			assert.Equal(t, tt.wantNeg, neg)
		})
	}
}

func TestAggregateTaskValidate(t *testing.T) {
	ok := AggregateTask{UserID: "u1", Month: "2024-05", Kind: KindPositive, Amount: 1, Operation: AggregateCreate}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Month = "2024-13"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Kind = "neutral"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Operation = "upsert"
	assert.Error(t, bad.Validate())
}

func TestClampAdd(t *testing.T) {
	assert.Equal(t, Money(150), ClampAdd(100, 50))
	assert.Equal(t, Money(0), ClampAdd(100, -30000))
	assert.Equal(t, Money(0), ClampAdd(0, 0))
}

func TestValidMonthAndYear(t *testing.T) {
	assert.True(t, ValidMonth("2024-01"))
	assert.True(t, ValidMonth("2024-12"))
	assert.False(t, ValidMonth("2024-1"))
	assert.False(t, ValidMonth("2024-00"))
	assert.False(t, ValidMonth("24-01"))
	assert.True(t, ValidYear("2024"))
	assert.False(t, ValidYear("20245"))
}

func TestYearMonths(t *testing.T) {
	months := YearMonths("2024")
	require.Len(t, months, 12)
	assert.Equal(t, "2024-01", months[0])
	assert.Equal(t, "2024-12", months[11])
}

func TestPeriods(t *testing.T) {
	// Wednesday
	at := time.Date(2024, time.May, 15, 13, 30, 0, 0, time.UTC)

	week := WeekPeriod(at)
	assert.Equal(t, time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC), week.Start)
	assert.Equal(t, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC), week.End)

	sunday := time.Date(2024, time.May, 19, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, week, WeekPeriod(sunday))

	month := MonthPeriod(at)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), month.End)
	assert.True(t, month.Contains(at.UnixMilli()))
	assert.False(t, month.Contains(month.End.UnixMilli()))

	year := YearPeriod(at)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), year.Start)

	_, err := RangePeriod("decade", at)
	assert.Error(t, err)

	p, err := ParseMonth("2024-02", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), p.End)
}

func TestGroupByDay(t *testing.T) {
	d1 := time.Date(2024, time.May, 14, 20, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, time.May, 14, 8, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, time.May, 13, 9, 0, 0, 0, time.UTC)
	groups := GroupByDay([]ChangeRecord{
		{ID: "a", Delta: 100, CreatedAt: d1},
		{ID: "b", Delta: -50, CreatedAt: d2},
		{ID: "c", Delta: 10, CreatedAt: d3},
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "05-14 Tuesday", groups[0].Title)
	assert.Len(t, groups[0].Records, 2)
	assert.Equal(t, "05-13 Monday", groups[1].Title)
	assert.Equal(t, Money(60), SumDeltas(append(groups[0].Records, groups[1].Records...)))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Asset{
		{Kind: KindPositive, Amount: 10000, IsActive: true},
		{Kind: KindPositive, Amount: 500, IsActive: false},
		{Kind: KindNegative, Amount: 2500, IsActive: true},
	})
	assert.Equal(t, AssetSummary{Positive: 10000, Negative: 2500, Total: 7500}, s)
}

func TestSummarizeBills(t *testing.T) {
	day1 := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC).UnixMilli()
	day2 := time.Date(2024, time.May, 2, 10, 0, 0, 0, time.UTC).UnixMilli()
	summary, daily := SummarizeBills([]Bill{
		{Type: BillExpense, Amount: 300, Date: day2},
		{Type: BillIncome, Amount: 1000, Date: day1},
		{Type: BillExpense, Amount: 200, Date: day1},
	}, time.UTC)
	assert.Equal(t, BillSummary{Expense: 500, Income: 1000}, summary)
	require.Len(t, daily, 2)
	assert.Equal(t, DailyBillStat{Date: "2024-05-01", Expense: 200, Income: 1000}, daily[0])
	assert.Equal(t, "2024-05-02", daily[1].Date)
}

func TestBillSignedAmount(t *testing.T) {
	assert.Equal(t, Money(-500), Bill{Type: BillExpense, Amount: 500}.SignedAmount())
	assert.Equal(t, Money(500), Bill{Type: BillIncome, Amount: 500}.SignedAmount())
}

func TestUsagePercentage(t *testing.T) {
	tests := []struct {
		used, amount Money
		want         string
	}{
		{0, 10000, "0"},
		{2500, 10000, "25"},
		{1, 3, "33.33"},
		{20000, 10000, "100"},
	}
	for _, tt := range tests {
		got := UsagePercentage(tt.used, tt.amount)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "used=%d amount=%d got=%s", tt.used, tt.amount, got)
	}
}
