package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccountKind is the polarity of an asset account. Positive accounts hold
// value (cash, bank cards); negative accounts hold obligations (credit cards, loans).
type AccountKind string

const (
	KindPositive AccountKind = "positive"
	KindNegative AccountKind = "negative"
)

// Valid reports whether k is a known kind.
func (k AccountKind) Valid() bool {
	return k == KindPositive || k == KindNegative
}
