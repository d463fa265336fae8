package domain

import "time"

// ChangeKind classifies a balance delta.
type ChangeKind int

const (
	ChangeManual      ChangeKind = 1
	ChangeTransferIn  ChangeKind = 2
	ChangeTransferOut ChangeKind = 3
	ChangeExpense     ChangeKind = 4
	ChangeIncome      ChangeKind = 5
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeManual:
		return "manual"
	case ChangeTransferIn:
		return "transfer_in"
	case ChangeTransferOut:
		return "transfer_out"
	case ChangeExpense:
		return "expense"
	case ChangeIncome:
		return "income"
	}
	return "unknown"
}

// ChangeRecord is an immutable entry recording one signed balance delta on an asset.
type ChangeRecord struct {
	ID        string     `json:"id"`
	AssetID   string     `json:"assetId"`
	UserID    string     `json:"userId"`
	Delta     Money      `json:"delta"`
	Kind      ChangeKind `json:"kind"`
	Remark    string     `json:"remark"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ChangeRecordDay is one calendar day of records, newest first.
type ChangeRecordDay struct {
	Title   string         `json:"title"`
	Records []ChangeRecord `json:"data"`
}

// GroupByDay splits records (already sorted newest first) into per-day groups.
// Titles read like "05-14 Tuesday".
func GroupByDay(records []ChangeRecord) []ChangeRecordDay {
	groups := make([]ChangeRecordDay, 0)
	for _, r := range records {
		title := r.CreatedAt.Format("01-02 Monday")
		if n := len(groups); n > 0 && groups[n-1].Title == title {
			groups[n-1].Records = append(groups[n-1].Records, r)
			continue
		}
		groups = append(groups, ChangeRecordDay{Title: title, Records: []ChangeRecord{r}})
	}
	return groups
}

// SumDeltas returns the running total of the given records.
func SumDeltas(records []ChangeRecord) Money {
	var total Money
	for _, r := range records {
		total += r.Delta
	}
	return total
}
