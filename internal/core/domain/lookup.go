package domain

// LookupKind identifies a family of master data values.
type LookupKind string

const (
	LookupExpenseType LookupKind = "EXPENSE_TYPE"
	LookupStatus      LookupKind = "STATUS"
)

// IsValid reports whether k is a known lookup kind.
func (k LookupKind) IsValid() bool {
	return k == LookupExpenseType || k == LookupStatus
}

// LookupValue is a configurable master data entry such as an expense type or a transaction status.
type LookupValue struct {
	Kind     LookupKind `json:"kind"`
	Code     string     `json:"code"`
	Name     string     `json:"name"`
	IsActive bool       `json:"isActive"`
	AuditFields
}
