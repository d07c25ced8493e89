package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
	"github.com/SscSPs/biz_finance_tracker/internal/metrics"
	"github.com/oklog/ulid/v2"
)

const defaultOfferTTL = 15 * time.Minute

type conversionOfferService struct {
	BaseService
	rates       portssvc.ExchangeRateReaderSvc
	currencySvc portssvc.CurrencyReaderSvc
	store       portsrepo.ConversionOfferStore
	hub         string
	ttl         time.Duration
	metrics     *metrics.Metrics
	now         func() time.Time
}

// ConversionOfferServiceOption is a functional option for configuring the conversion offer service
type ConversionOfferServiceOption func(*conversionOfferService)

// WithOfferTTL sets how long a presented offer can be answered.
func WithOfferTTL(ttl time.Duration) ConversionOfferServiceOption {
	return func(s *conversionOfferService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithOfferMetrics records offer outcomes.
func WithOfferMetrics(m *metrics.Metrics) ConversionOfferServiceOption {
	return func(s *conversionOfferService) {
		s.metrics = m
	}
}

// WithOfferClock overrides the time source.
func WithOfferClock(now func() time.Time) ConversionOfferServiceOption {
	return func(s *conversionOfferService) {
		s.now = now
	}
}

// NewConversionOfferService creates a service that presents and settles conversion offers.
func NewConversionOfferService(
	rates portssvc.ExchangeRateReaderSvc,
	currencySvc portssvc.CurrencyReaderSvc,
	store portsrepo.ConversionOfferStore,
	hub string,
	options ...ConversionOfferServiceOption,
) portssvc.ConversionOfferSvc {
	svc := &conversionOfferService{
		rates:       rates,
		currencySvc: currencySvc,
		store:       store,
		hub:         hub,
		ttl:         defaultOfferTTL,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ConversionOfferSvc = (*conversionOfferService)(nil)

// CreateOffer handles a change of the currency field. When the change qualifies and a rate exists
// the offer is stored and must be answered with AcceptOffer or DeclineOffer.
func (s *conversionOfferService) CreateOffer(ctx context.Context, req dto.CreateConversionOfferRequest, userID string) (*portssvc.OfferOutcome, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if err := validateActiveCurrencies(ctx, s.currencySvc, req.PreviousCurrency, req.NewCurrency); err != nil {
		return nil, err
	}

	defaultCurrency, err := s.currencySvc.GetDefaultCurrency(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no default currency is configured", apperrors.ErrValidation)
		}
		return nil, err
	}

	if !fx.OfferApplies(s.hub, defaultCurrency.CurrencyCode, req.PreviousCurrency, req.NewCurrency) {
		return &portssvc.OfferOutcome{
			State: fx.StateIdle,
			Form:  fx.FormAmount{Amount: req.Amount, CurrencyCode: req.NewCurrency},
		}, nil
	}

	table, err := s.rates.LoadRateTable(ctx)
	if err != nil {
		return nil, err
	}
	policy, err := fx.NewConfirmationPolicy(table, defaultCurrency.CurrencyCode)
	if err != nil {
		return nil, err
	}
	offer, err := policy.OnCurrencyChanged(req.Amount, req.PreviousCurrency, req.NewCurrency)
	if err != nil {
		return nil, err
	}

	outcome := &portssvc.OfferOutcome{State: policy.State(), Form: policy.Current()}
	if offer == nil {
		if policy.State() == fx.StateNoRateAvailable {
			s.metrics.ObserveOffer("no_rate")
			s.LogInfo(ctx, "No rate for conversion offer",
				slog.String("hub", s.hub),
				slog.String("default_currency", defaultCurrency.CurrencyCode))
		}
		return outcome, nil
	}

	now := s.now().UTC()
	stored := domain.ConversionOffer{
		OfferID:         ulid.Make().String(),
		Amount:          offer.Amount,
		HubCurrency:     offer.HubCurrency,
		DefaultCurrency: offer.DefaultCurrency,
		Rate:            offer.Rate,
		CandidateAmount: offer.CandidateAmount,
		Path:            string(offer.Path),
		CreatedBy:       userID,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.ttl),
	}
	if err := s.store.SaveOffer(ctx, stored, s.ttl); err != nil {
		s.LogError(ctx, err, "Failed to store conversion offer")
		return nil, fmt.Errorf("failed to store conversion offer: %w", err)
	}

	s.metrics.ObserveOffer("presented")
	s.LogInfo(ctx, "Conversion offer presented",
		slog.String("offer_id", stored.OfferID),
		slog.String("candidate_amount", stored.CandidateAmount.String()))
	outcome.Offer = &stored
	return outcome, nil
}

func (s *conversionOfferService) AcceptOffer(ctx context.Context, offerID string, userID string) (*portssvc.OfferDecision, error) {
	return s.settle(ctx, offerID, userID, (*fx.ConfirmationPolicy).Accept, "accepted")
}

func (s *conversionOfferService) DeclineOffer(ctx context.Context, offerID string, userID string) (*portssvc.OfferDecision, error) {
	return s.settle(ctx, offerID, userID, (*fx.ConfirmationPolicy).Decline, "declined")
}

// settle consumes the stored offer so each offer is answered at most once.
func (s *conversionOfferService) settle(ctx context.Context, offerID, userID string, answer func(*fx.ConfirmationPolicy) (fx.FormAmount, error), outcome string) (*portssvc.OfferDecision, error) {
	pending, err := s.store.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if pending.CreatedBy != userID {
		return nil, fmt.Errorf("%w: offer %s belongs to another user", apperrors.ErrForbidden, offerID)
	}

	stored, err := s.store.TakeOffer(ctx, offerID)
	if err != nil {
		// Answered concurrently between the read and the take.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: offer %s was already answered", apperrors.ErrInvalidState, offerID)
		}
		return nil, err
	}

	policy := fx.ResumeOffer(toFxOffer(*stored))
	form, err := answer(policy)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveOffer(outcome)
	s.LogInfo(ctx, "Conversion offer "+outcome,
		slog.String("offer_id", offerID),
		slog.String("amount", form.Amount.String()),
		slog.String("currency", form.CurrencyCode))
	return &portssvc.OfferDecision{OfferID: offerID, State: policy.State(), Form: form}, nil
}

func toFxOffer(o domain.ConversionOffer) fx.Offer {
	return fx.Offer{
		Amount:          o.Amount,
		HubCurrency:     o.HubCurrency,
		DefaultCurrency: o.DefaultCurrency,
		Rate:            o.Rate,
		CandidateAmount: o.CandidateAmount,
		Path:            fx.Path(o.Path),
	}
}
