package domain

// Asset is a balance-bearing instrument owned by a user and bound to one account.
// Amount is the authoritative current balance.
type Asset struct {
	ID        string      `json:"id"`
	AccountID string      `json:"accountId"`
	UserID    string      `json:"userId"`
	Name      string      `json:"name"`
	Amount    Money       `json:"amount"`
	Kind      AccountKind `json:"kind"`
	Remark    string      `json:"remark"`
	IsActive  bool        `json:"isActive"`
	AuditFields
}

// AssetSummary totals the active assets of a listing by polarity.
type AssetSummary struct {
	Positive Money `json:"positive"`
	Negative Money `json:"negative"`
	Total    Money `json:"total"`
}

// Summarize adds up active assets by kind.
func Summarize(assets []Asset) AssetSummary {
	var s AssetSummary
	for _, a := range assets {
		if !a.IsActive {
			continue
		}
		switch a.Kind {
		case KindPositive:
			s.Positive += a.Amount
		case KindNegative:
			s.Negative += a.Amount
		}
	}
	s.Total = s.Positive - s.Negative
	return s
}

// TransferResult is the outcome of moving funds between two assets.
type TransferResult struct {
	From      Asset
	To        Asset
	OutRecord ChangeRecord
	InRecord  ChangeRecord
}
