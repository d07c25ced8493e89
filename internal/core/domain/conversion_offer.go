package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionOffer is a pending offer to rescale an amount entered in the hub currency into the
// default currency. It lives only until it is answered or expires.
type ConversionOffer struct {
	OfferID         string          `json:"offerID"`
	Amount          decimal.Decimal `json:"amount"`
	HubCurrency     string          `json:"hubCurrency"`
	DefaultCurrency string          `json:"defaultCurrency"`
	Rate            decimal.Decimal `json:"rate"`
	CandidateAmount decimal.Decimal `json:"candidateAmount"`
	Path            string          `json:"path"`
	CreatedBy       string          `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
	ExpiresAt       time.Time       `json:"expiresAt"`
}
