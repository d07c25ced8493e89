package models

// LookupValue represents a row of the lookup_values table (expense types, statuses).
type LookupValue struct {
	Kind     string `db:"kind"`
	Code     string `db:"code"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
	AuditFields
}
