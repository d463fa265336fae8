package domain

// AssetAccount groups assets under a named category with a polarity.
// The hierarchy is one level deep: a parent has children, a child has no children.
type AssetAccount struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Kind     AccountKind `json:"kind"`
	ParentID *string     `json:"parentId,omitempty"`
	IsActive bool        `json:"isActive"`
	AuditFields
}

// Classify is a bill category.
type Classify struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     BillType `json:"type"`
	IsActive bool     `json:"isActive"`
}

// Tag is a free label attached to bills.
type Tag struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}
