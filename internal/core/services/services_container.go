package services

import (
	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/metrics"
	"github.com/SscSPs/biz_finance_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	reporting := fx.ReportingCurrencies(cfg.HubCurrency, cfg.ReportingCurrencies)

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Lookup = NewLookupService(repos.LookupRepo)

	// Every rate table is read fresh from storage through this service.
	container.ExchangeRate = NewExchangeRateService(
		repos.ExchangeRateRepo,
		container.Currency,
		cfg.HubCurrency,
		WithRateLoaderOptions(fx.WithMaxRetries(cfg.RateLoadMaxRetries)),
		WithExchangeRateMetrics(m),
	)

	container.Conversion = NewConversionService(container.ExchangeRate, container.Currency, reporting, WithConversionMetrics(m))
	container.ConversionOffer = NewConversionOfferService(
		container.ExchangeRate,
		container.Currency,
		repos.OfferStore,
		cfg.HubCurrency,
		WithOfferTTL(cfg.ConversionOfferTTL),
		WithOfferMetrics(m),
	)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		container.Currency,
		container.Lookup,
		container.ExchangeRate,
		reporting,
		WithTransactionMetrics(m),
	)
	container.Reporting = NewReportingService(repos.ReportingRepo, cfg.HubCurrency, reporting)
	container.Export = NewExportService(repos.ReportingRepo, cfg.HubCurrency, reporting)

	return container
}
