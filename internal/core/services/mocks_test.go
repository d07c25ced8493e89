package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindDefaultCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) SetDefaultCurrency(ctx context.Context, currencyCode, userID string) error {
	args := m.Called(ctx, currencyCode, userID)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) DeleteExchangeRate(ctx context.Context, rateID string) error {
	args := m.Called(ctx, rateID)
	return args.Error(0)
}

// --- Mock LookupRepository ---
type MockLookupRepository struct {
	mock.Mock
}

func (m *MockLookupRepository) FindLookupValue(ctx context.Context, kind domain.LookupKind, code string) (*domain.LookupValue, error) {
	args := m.Called(ctx, kind, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LookupValue), args.Error(1)
}

func (m *MockLookupRepository) ListLookupValues(ctx context.Context, kind domain.LookupKind, activeOnly bool) ([]domain.LookupValue, error) {
	args := m.Called(ctx, kind, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LookupValue), args.Error(1)
}

func (m *MockLookupRepository) SaveLookupValue(ctx context.Context, value domain.LookupValue) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *MockLookupRepository) UpdateLookupValue(ctx context.Context, value domain.LookupValue) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, params portsrepo.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) ListTransactionsInRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock ConversionOfferStore ---
type MockConversionOfferStore struct {
	mock.Mock
}

func (m *MockConversionOfferStore) SaveOffer(ctx context.Context, offer domain.ConversionOffer, ttl time.Duration) error {
	args := m.Called(ctx, offer, ttl)
	return args.Error(0)
}

func (m *MockConversionOfferStore) TakeOffer(ctx context.Context, offerID string) (*domain.ConversionOffer, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionOffer), args.Error(1)
}

func (m *MockConversionOfferStore) GetOffer(ctx context.Context, offerID string) (*domain.ConversionOffer, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionOffer), args.Error(1)
}

// --- Fixtures ---

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func activeCurrency(code string) *domain.Currency {
	return &domain.Currency{CurrencyCode: code, Name: code, Symbol: code, IsActive: true}
}

func storedRate(from, to, rate string) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   from + "-" + to,
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             dec(rate),
	}
}

func activeLookup(kind domain.LookupKind, code string) *domain.LookupValue {
	return &domain.LookupValue{Kind: kind, Code: code, Name: code, IsActive: true}
}

var (
	_ portsrepo.CurrencyRepositoryFacade     = (*MockCurrencyRepository)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)
	_ portsrepo.LookupRepositoryFacade       = (*MockLookupRepository)(nil)
	_ portsrepo.TransactionRepositoryFacade  = (*MockTransactionRepository)(nil)
	_ portsrepo.ReportingRepository          = (*MockReportingRepository)(nil)
	_ portsrepo.ConversionOfferStore         = (*MockConversionOfferStore)(nil)
)
