package models

import (
	"github.com/shopspring/decimal"
)

// ExchangeRate stores the current conversion rate for one ordered currency pair.
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"`   // Primary Key (UUID)
	FromCurrencyCode string          `db:"from_currency_code"` // FK -> currencies.currency_code
	ToCurrencyCode   string          `db:"to_currency_code"`   // FK -> currencies.currency_code
	Rate             decimal.Decimal `db:"rate"`
	AuditFields
}
