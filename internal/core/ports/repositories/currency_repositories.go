package repositories

import (
	"context"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// FindDefaultCurrency retrieves the currency flagged as the deployment default.
	FindDefaultCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves currencies ordered by code, optionally only the active ones.
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency inserts or updates a currency. The default flag is not changed by this call.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// SetDefaultCurrency makes currencyCode the only default currency.
	SetDefaultCurrency(ctx context.Context, currencyCode, userID string) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
// This is a facade for clients that need access to all operations
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}

// CurrencyRepositoryWithTx extends CurrencyRepositoryFacade with transaction capabilities
type CurrencyRepositoryWithTx interface {
	CurrencyRepositoryFacade
	TransactionManager
}
