package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a directional rate: 1 unit of FromCurrencyCode buys Rate units of ToCurrencyCode.
// There is at most one row per ordered (from, to) pair.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"` // Always > 0
	AuditFields
}

// UpdatedAt returns when the rate value was last changed.
func (r ExchangeRate) UpdatedAt() time.Time {
	return r.LastUpdatedAt
}
