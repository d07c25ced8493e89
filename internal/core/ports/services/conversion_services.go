package services

import (
	"context"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// ConversionPreview is what a transaction would cache for an amount, plus an optional
// single conversion with its resolution path.
type ConversionPreview struct {
	Normalized fx.Normalized
	Conversion *fx.Conversion
}

// ConversionSvc exposes the resolver and normalizer against the current rate table.
type ConversionSvc interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*fx.Conversion, error)

	Preview(ctx context.Context, req dto.ConversionPreviewRequest) (*ConversionPreview, error)
}

// OfferOutcome is the result of reporting a currency change on a transaction form.
// Offer is nil unless State is OFFER_PRESENTED.
type OfferOutcome struct {
	State fx.ConfirmationState
	Form  fx.FormAmount
	Offer *domain.ConversionOffer
}

// OfferDecision is the result of answering a presented offer.
type OfferDecision struct {
	OfferID string
	State   fx.ConfirmationState
	Form    fx.FormAmount
}

// ConversionOfferSvc drives the conversion confirmation across separate requests.
type ConversionOfferSvc interface {
	CreateOffer(ctx context.Context, req dto.CreateConversionOfferRequest, userID string) (*OfferOutcome, error)

	AcceptOffer(ctx context.Context, offerID string, userID string) (*OfferDecision, error)

	DeclineOffer(ctx context.Context, offerID string, userID string) (*OfferDecision, error)
}
