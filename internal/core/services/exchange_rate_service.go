package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
	"github.com/SscSPs/biz_finance_tracker/internal/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type exchangeRateService struct {
	BaseService
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	currencySvc portssvc.CurrencyReaderSvc
	loader      *fx.RateTableLoader
	metrics     *metrics.Metrics
	loaderOpts  []fx.LoaderOption
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithRateLoaderOptions passes retry settings through to the rate table loader.
func WithRateLoaderOptions(opts ...fx.LoaderOption) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.loaderOpts = append(s.loaderOpts, opts...)
	}
}

// WithExchangeRateMetrics records rate table loads.
func WithExchangeRateMetrics(m *metrics.Metrics) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.metrics = m
	}
}

// NewExchangeRateService creates a new exchange rate service building rate tables around hub.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc, hub string, options ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		rateRepo:    rateRepo,
		currencySvc: currencySvc,
	}
	for _, option := range options {
		option(svc)
	}
	svc.loader = fx.NewRateTableLoader(rateRepo, hub, svc.loaderOpts...)
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func normalizePair(fromCode, toCode string) (string, string, error) {
	fromCode = strings.ToUpper(strings.TrimSpace(fromCode))
	toCode = strings.ToUpper(strings.TrimSpace(toCode))
	if len(fromCode) != 3 || len(toCode) != 3 {
		return "", "", fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if fromCode == toCode {
		return "", "", fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	return fromCode, toCode, nil
}

// UpsertExchangeRate creates or replaces the rate of an ordered pair. Both currencies must be active.
func (s *exchangeRateService) UpsertExchangeRate(ctx context.Context, req dto.UpsertExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	fromCode, toCode, err := normalizePair(req.FromCurrencyCode, req.ToCurrencyCode)
	if err != nil {
		return nil, err
	}
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if err := s.currencySvc.ValidateActiveCurrency(ctx, fromCode); err != nil {
		return nil, fmt.Errorf("'from' currency: %w", err)
	}
	if err := s.currencySvc.ValidateActiveCurrency(ctx, toCode); err != nil {
		return nil, fmt.Errorf("'to' currency: %w", err)
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             req.Rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	saved, err := s.rateRepo.UpsertExchangeRate(ctx, rate)
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert exchange rate",
			slog.String("from", fromCode),
			slog.String("to", toCode))
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate saved",
		slog.String("exchange_rate_id", saved.ExchangeRateID),
		slog.String("from", fromCode),
		slog.String("to", toCode),
		slog.String("rate", saved.Rate.String()))
	return saved, nil
}

// GetExchangeRate answers a pair from the stored direct rate, or from the reciprocal of the
// stored reverse rate.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, bool, error) {
	fromCode, toCode, err := normalizePair(fromCode, toCode)
	if err != nil {
		return nil, false, err
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err == nil {
		return rate, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to find exchange rate", slog.String("from", fromCode), slog.String("to", toCode))
		return nil, false, fmt.Errorf("failed to get exchange rate: %w", err)
	}

	reverse, err := s.rateRepo.FindExchangeRate(ctx, toCode, fromCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, apperrors.NewNotFoundError(fmt.Sprintf("no exchange rate between %s and %s", fromCode, toCode))
		}
		s.LogError(ctx, err, "Failed to find reverse exchange rate", slog.String("from", toCode), slog.String("to", fromCode))
		return nil, false, fmt.Errorf("failed to get exchange rate: %w", err)
	}

	inverse := *reverse
	inverse.ExchangeRateID = ""
	inverse.FromCurrencyCode = fromCode
	inverse.ToCurrencyCode = toCode
	inverse.Rate = decimal.NewFromInt(1).Div(reverse.Rate)
	return &inverse, true, nil
}

func (s *exchangeRateService) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

func (s *exchangeRateService) DeleteExchangeRate(ctx context.Context, rateID string, userID string) error {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, rateID)
	if err != nil {
		return err
	}
	if err := s.rateRepo.DeleteExchangeRate(ctx, rateID); err != nil {
		s.LogError(ctx, err, "Failed to delete exchange rate", slog.String("exchange_rate_id", rateID))
		return fmt.Errorf("failed to delete exchange rate: %w", err)
	}
	s.LogInfo(ctx, "Exchange rate deleted",
		slog.String("exchange_rate_id", rateID),
		slog.String("from", rate.FromCurrencyCode),
		slog.String("to", rate.ToCurrencyCode),
		slog.String("deleted_by", userID))
	return nil
}

// LoadRateTable reads a fresh snapshot. It never falls back to a previously loaded table.
func (s *exchangeRateService) LoadRateTable(ctx context.Context) (*fx.RateTable, error) {
	table, err := s.loader.Load(ctx)
	if err != nil {
		s.metrics.ObserveRateTableLoad(0, err)
		s.LogError(ctx, err, "Failed to load rate table", slog.String("hub", s.loader.Hub()))
		return nil, err
	}
	s.metrics.ObserveRateTableLoad(table.Len(), nil)
	s.LogDebug(ctx, "Rate table loaded", slog.String("hub", table.Hub()), slog.Int("rates", table.Len()))
	return table, nil
}
