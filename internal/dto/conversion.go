package dto

import (
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	"github.com/shopspring/decimal"
)

// ConversionPreviewRequest asks for the cached amounts a transaction would get.
type ConversionPreviewRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"string" example:"50"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currencycode"`
	// TargetCurrency optionally adds a single conversion with its resolution path.
	TargetCurrency string `json:"targetCurrency" binding:"omitempty,currencycode"`
}

// ConvertParams are the query parameters of a single conversion.
type ConvertParams struct {
	Amount decimal.Decimal `form:"amount" binding:"required,gt=0" swaggertype:"string"`
	From   string          `form:"from" binding:"required,currencycode"`
	To     string          `form:"to" binding:"required,currencycode"`
}

// ConversionPreviewResponse carries the normalizer output and the optional single conversion.
type ConversionPreviewResponse struct {
	HubCurrency      string                         `json:"hubCurrency"`
	HubAmount        decimal.NullDecimal            `json:"hubAmount" swaggertype:"string"`
	ReportingAmounts map[string]decimal.NullDecimal `json:"reportingAmounts" swaggertype:"object"`
	Conversion       *fx.Conversion                 `json:"conversion,omitempty"`
}

// CreateConversionOfferRequest reports a change of the currency field in a transaction form.
type CreateConversionOfferRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"string" example:"100"`
	PreviousCurrency string          `json:"previousCurrency" binding:"required,currencycode"`
	NewCurrency      string          `json:"newCurrency" binding:"required,currencycode"`
}

// ConversionOfferResponse answers a currency change. When OfferPresented is false, State says
// why (IDLE when the change does not qualify, NO_RATE_AVAILABLE when no rate exists) and Form is
// the value the form should keep.
type ConversionOfferResponse struct {
	State           string           `json:"state"`
	OfferPresented  bool             `json:"offerPresented"`
	OfferID         string           `json:"offerID,omitempty"`
	CandidateAmount *decimal.Decimal `json:"candidateAmount,omitempty" swaggertype:"string"`
	Rate            *decimal.Decimal `json:"rate,omitempty" swaggertype:"string"`
	DefaultCurrency string           `json:"defaultCurrency,omitempty"`
	ExpiresAt       *time.Time       `json:"expiresAt,omitempty"`
	Form            FormAmountDTO    `json:"form"`
}

// FormAmountDTO is the amount and currency a transaction form should display.
type FormAmountDTO struct {
	Amount       decimal.Decimal `json:"amount" swaggertype:"string"`
	CurrencyCode string          `json:"currencyCode"`
}

// ConversionOfferDecisionResponse is returned after accepting or declining an offer.
type ConversionOfferDecisionResponse struct {
	OfferID string        `json:"offerID"`
	State   string        `json:"state"`
	Form    FormAmountDTO `json:"form"`
}

func ToFormAmountDTO(f fx.FormAmount) FormAmountDTO {
	return FormAmountDTO{Amount: f.Amount, CurrencyCode: f.CurrencyCode}
}

func ToConversionOfferResponse(state fx.ConfirmationState, form fx.FormAmount, offer *domain.ConversionOffer) ConversionOfferResponse {
	res := ConversionOfferResponse{State: string(state), Form: ToFormAmountDTO(form)}
	if offer != nil {
		expires := offer.ExpiresAt
		candidate, rate := offer.CandidateAmount, offer.Rate
		res.OfferPresented = true
		res.OfferID = offer.OfferID
		res.CandidateAmount = &candidate
		res.Rate = &rate
		res.DefaultCurrency = offer.DefaultCurrency
		res.ExpiresAt = &expires
	}
	return res
}
