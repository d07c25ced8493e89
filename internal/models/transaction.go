package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row of the transactions table.
// ReportingAmounts is stored as JSONB; a JSON null value means the conversion was not possible.
type Transaction struct {
	TransactionID    string                         `db:"transaction_id"` // Primary Key (UUID)
	TransactionDate  time.Time                      `db:"transaction_date"`
	TransactionType  string                         `db:"transaction_type"`
	ExpenseType      *string                        `db:"expense_type"` // Nullable, FK -> lookup_values
	Status           string                         `db:"status"`
	Category         *string                        `db:"category"`
	Comments         *string                        `db:"comments"`
	Amount           decimal.Decimal                `db:"amount"`
	CurrencyCode     string                         `db:"currency_code"`
	OriginalAmount   decimal.Decimal                `db:"original_amount"`
	OriginalCurrency string                         `db:"original_currency"`
	HubAmount        decimal.NullDecimal            `db:"hub_amount"`
	ReportingAmounts map[string]decimal.NullDecimal `db:"reporting_amounts"`
	AuditFields
}
