package services

import (
	"context"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// GetDefaultCurrency returns the currency flagged as the deployment default.
	GetDefaultCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies, or only the active ones.
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)

	// ValidateActiveCurrency returns ErrValidation unless code names an active currency.
	ValidateActiveCurrency(ctx context.Context, currencyCode string) error
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// UpdateCurrency changes the symbol, name or active flag of a currency.
	UpdateCurrency(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRequest, userID string) (*domain.Currency, error)

	// SetDefaultCurrency makes currencyCode the single default currency.
	SetDefaultCurrency(ctx context.Context, currencyCode string, userID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRate returns the rate for the ordered pair. When only the reverse pair is stored,
	// the returned rate is its reciprocal and inverse is true.
	GetExchangeRate(ctx context.Context, fromCode, toCode string) (rate *domain.ExchangeRate, inverse bool, err error)

	// ListExchangeRates returns every stored rate.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// LoadRateTable reads a fresh snapshot of all rates for the configured hub currency.
	// Failures are reported as apperrors.ErrRateLookup.
	LoadRateTable(ctx context.Context) (*fx.RateTable, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// UpsertExchangeRate creates the rate for a pair or replaces its value.
	UpsertExchangeRate(ctx context.Context, req dto.UpsertExchangeRateRequest, userID string) (*domain.ExchangeRate, error)

	// DeleteExchangeRate removes a stored rate.
	DeleteExchangeRate(ctx context.Context, rateID string, userID string) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
