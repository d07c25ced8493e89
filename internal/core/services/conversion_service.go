package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
	"github.com/SscSPs/biz_finance_tracker/internal/metrics"
	"github.com/shopspring/decimal"
)

type conversionService struct {
	BaseService
	rates       portssvc.ExchangeRateReaderSvc
	currencySvc portssvc.CurrencyReaderSvc
	reporting   []string
	metrics     *metrics.Metrics
}

// ConversionServiceOption is a functional option for configuring the conversion service
type ConversionServiceOption func(*conversionService)

// WithConversionMetrics records conversions and normalizations.
func WithConversionMetrics(m *metrics.Metrics) ConversionServiceOption {
	return func(s *conversionService) {
		s.metrics = m
	}
}

// NewConversionService creates a conversion service. reporting is the full list of reporting
// currencies, hub included.
func NewConversionService(
	rates portssvc.ExchangeRateReaderSvc,
	currencySvc portssvc.CurrencyReaderSvc,
	reporting []string,
	options ...ConversionServiceOption,
) portssvc.ConversionSvc {
	svc := &conversionService{
		rates:       rates,
		currencySvc: currencySvc,
		reporting:   reporting,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ConversionSvc = (*conversionService)(nil)

func (s *conversionService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*fx.Conversion, error) {
	if err := validateActiveCurrencies(ctx, s.currencySvc, from, to); err != nil {
		return nil, err
	}
	table, err := s.rates.LoadRateTable(ctx)
	if err != nil {
		return nil, err
	}
	conv, err := fx.Convert(amount, from, to, table)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveConversion(string(conv.Path))
	if !conv.OK() {
		s.LogInfo(ctx, "No conversion path", slog.String("from", conv.From), slog.String("to", conv.To))
	}
	return &conv, nil
}

func (s *conversionService) Preview(ctx context.Context, req dto.ConversionPreviewRequest) (*portssvc.ConversionPreview, error) {
	codes := []string{req.CurrencyCode}
	if req.TargetCurrency != "" {
		codes = append(codes, req.TargetCurrency)
	}
	if err := validateActiveCurrencies(ctx, s.currencySvc, codes...); err != nil {
		return nil, err
	}
	table, err := s.rates.LoadRateTable(ctx)
	if err != nil {
		return nil, err
	}

	normalized, err := normalize(ctx, &s.BaseService, s.metrics, req.Amount, req.CurrencyCode, table, s.reporting)
	if err != nil {
		return nil, err
	}
	preview := &portssvc.ConversionPreview{Normalized: normalized}

	if req.TargetCurrency != "" {
		conv, err := fx.Convert(req.Amount, req.CurrencyCode, req.TargetCurrency, table)
		if err != nil {
			return nil, err
		}
		s.metrics.ObserveConversion(string(conv.Path))
		preview.Conversion = &conv
	}
	return preview, nil
}

// validateActiveCurrencies returns ErrValidation for the first code that is unknown or inactive.
func validateActiveCurrencies(ctx context.Context, currencySvc portssvc.CurrencyReaderSvc, codes ...string) error {
	for _, code := range codes {
		if err := currencySvc.ValidateActiveCurrency(ctx, code); err != nil {
			return err
		}
	}
	return nil
}

// normalize runs the normalizer and records whether any cached figure came out null.
func normalize(ctx context.Context, base *BaseService, m *metrics.Metrics, amount decimal.Decimal, currency string, table *fx.RateTable, reporting []string) (fx.Normalized, error) {
	n, err := fx.Normalize(amount, currency, table, reporting)
	if err != nil {
		return n, err
	}

	var missing []string
	if !n.HubAmount.Valid {
		missing = append(missing, n.HubCurrency)
	}
	for _, code := range reporting {
		if v, ok := n.ReportingAmounts[code]; ok && !v.Valid && code != n.HubCurrency {
			missing = append(missing, code)
		}
	}
	m.ObserveNormalization(len(missing) > 0)
	if len(missing) > 0 {
		base.LogWarn(ctx, "No conversion path for some reporting currencies",
			slog.String("currency", currency),
			slog.Any("missing", missing))
	}
	return n, nil
}
