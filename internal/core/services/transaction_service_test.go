package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/core/services"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
	"github.com/SscSPs/biz_finance_tracker/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxRepo       *MockTransactionRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockLookupRepo   *MockLookupRepository
	mockRateRepo     *MockExchangeRateRepository
	service          portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxRepo = new(MockTransactionRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockLookupRepo = new(MockLookupRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)

	m := metrics.New(prometheus.NewRegistry())
	currencySvc := services.NewCurrencyService(suite.mockCurrencyRepo)
	suite.service = services.NewTransactionService(
		suite.mockTxRepo,
		currencySvc,
		services.NewLookupService(suite.mockLookupRepo),
		newRateService(suite.mockRateRepo, suite.mockCurrencyRepo, m),
		fx.ReportingCurrencies("SGD", []string{"INR", "USD"}),
		services.WithTransactionMetrics(m),
	)
}

func (suite *TransactionServiceTestSuite) masterData() {
	for _, code := range []string{"SGD", "INR", "USD", "EUR"} {
		suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, code).Return(activeCurrency(code), nil).Maybe()
	}
	suite.mockLookupRepo.On("FindLookupValue", mock.Anything, domain.LookupStatus, "PAID").
		Return(activeLookup(domain.LookupStatus, "PAID"), nil).Maybe()
	suite.mockLookupRepo.On("FindLookupValue", mock.Anything, domain.LookupExpenseType, "TRAVEL").
		Return(activeLookup(domain.LookupExpenseType, "TRAVEL"), nil).Maybe()
}

func (suite *TransactionServiceTestSuite) hubRates() {
	suite.mockRateRepo.On("ListExchangeRates", mock.Anything).
		Return([]domain.ExchangeRate{storedRate("SGD", "INR", "60"), storedRate("SGD", "USD", "0.75")}, nil)
}

func expenseRequest(amount, currency string) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		TransactionDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		TransactionType: domain.Expense,
		ExpenseType:     "travel",
		Status:          "PAID",
		Category:        "Flights",
		Amount:          dec(amount),
		CurrencyCode:    currency,
	}
}

func near(want string, got decimal.NullDecimal) bool {
	return got.Valid && got.Decimal.Sub(dec(want)).Abs().LessThan(dec("0.000001"))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Normalizes() {
	ctx := context.Background()
	suite.masterData()
	suite.hubRates()
	suite.mockTxRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	tx, err := suite.service.CreateTransaction(ctx, expenseRequest("50", "inr"), "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(tx.TransactionID)
	suite.Equal("INR", tx.CurrencyCode)
	suite.Equal("TRAVEL", tx.ExpenseType)
	suite.Equal("INR", tx.OriginalCurrency)
	suite.True(tx.OriginalAmount.Equal(dec("50")))
	suite.True(near("0.833333", tx.HubAmount))
	suite.True(near("0.625", tx.ReportingAmounts["USD"]))
	suite.True(tx.ReportingAmounts["INR"].Decimal.Equal(dec("50")))
	suite.mockTxRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NoPathStillSaves() {
	ctx := context.Background()
	suite.masterData()
	suite.hubRates()
	suite.mockTxRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(tx domain.Transaction) bool {
		return !tx.HubAmount.Valid && !tx.ReportingAmounts["INR"].Valid && !tx.ReportingAmounts["USD"].Valid
	})).Return(nil).Once()

	tx, err := suite.service.CreateTransaction(ctx, expenseRequest("75", "EUR"), "user-1")

	suite.Require().NoError(err)
	suite.False(tx.HubAmount.Valid, "unknown hub amount is null, not zero")
	suite.mockTxRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FromAcceptedOffer() {
	ctx := context.Background()
	suite.masterData()
	suite.hubRates()
	suite.mockTxRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	req := expenseRequest("6000", "INR")
	original := dec("100")
	sgd := "SGD"
	req.OriginalAmount = &original
	req.OriginalCurrency = &sgd

	tx, err := suite.service.CreateTransaction(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.True(tx.IsConverted())
	suite.True(tx.OriginalAmount.Equal(dec("100")))
	suite.True(near("100", tx.HubAmount))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RateLookupFailure() {
	ctx := context.Background()
	suite.masterData()
	suite.mockRateRepo.On("ListExchangeRates", mock.Anything).Return(nil, errors.New("db unavailable"))

	_, err := suite.service.CreateTransaction(ctx, expenseRequest("50", "INR"), "user-1")

	suite.ErrorIs(err, apperrors.ErrRateLookup)
	suite.mockTxRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveStatus() {
	ctx := context.Background()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "INR").Return(activeCurrency("INR"), nil)
	void := activeLookup(domain.LookupStatus, "VOID")
	void.IsActive = false
	suite.mockLookupRepo.On("FindLookupValue", mock.Anything, domain.LookupStatus, "VOID").Return(void, nil)

	req := expenseRequest("50", "INR")
	req.Status = "void"
	_, err := suite.service.CreateTransaction(ctx, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "ListExchangeRates", mock.Anything)
}

func (suite *TransactionServiceTestSuite) existing() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:    "tx-1",
		TransactionDate:  time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		TransactionType:  domain.Expense,
		ExpenseType:      "TRAVEL",
		Status:           "PAID",
		Amount:           dec("50"),
		CurrencyCode:     "INR",
		OriginalAmount:   dec("50"),
		OriginalCurrency: "INR",
		HubAmount:        decimal.NewNullDecimal(dec("0.8333333333333333")),
		ReportingAmounts: map[string]decimal.NullDecimal{"SGD": decimal.NewNullDecimal(dec("0.8333333333333333"))},
	}
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountChangeRenormalizes() {
	ctx := context.Background()
	suite.masterData()
	suite.hubRates()
	suite.mockTxRepo.On("FindTransactionByID", ctx, "tx-1").Return(suite.existing(), nil).Once()
	suite.mockTxRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.Amount.Equal(dec("120")) && tx.OriginalAmount.Equal(dec("50")) && tx.OriginalCurrency == "INR" && tx.LastUpdatedBy == "editor"
	})).Return(nil).Once()

	amount := dec("120")
	tx, err := suite.service.UpdateTransaction(ctx, "tx-1", dto.UpdateTransactionRequest{Amount: &amount}, "editor")

	suite.Require().NoError(err)
	suite.True(near("2", tx.HubAmount))
	suite.True(near("1.5", tx.ReportingAmounts["USD"]))
	suite.mockTxRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_CurrencyChangeRenormalizes() {
	ctx := context.Background()
	suite.masterData()
	suite.hubRates()
	suite.mockTxRepo.On("FindTransactionByID", ctx, "tx-1").Return(suite.existing(), nil).Once()
	suite.mockTxRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.CurrencyCode == "SGD" && tx.OriginalAmount.Equal(dec("50")) && tx.OriginalCurrency == "INR"
	})).Return(nil).Once()

	sgd := " sgd"
	tx, err := suite.service.UpdateTransaction(ctx, "tx-1", dto.UpdateTransactionRequest{CurrencyCode: &sgd}, "editor")

	suite.Require().NoError(err)
	suite.Equal("SGD", tx.CurrencyCode)
	suite.True(tx.Amount.Equal(dec("50")))
	suite.Require().True(tx.HubAmount.Valid)
	suite.Equal(dec("50").String(), tx.HubAmount.Decimal.String(), "hub currency amounts are stored exactly")
	suite.True(near("3000", tx.ReportingAmounts["INR"]))
	suite.True(near("37.5", tx.ReportingAmounts["USD"]))
	suite.Equal("INR", tx.OriginalCurrency)
	suite.True(tx.OriginalAmount.Equal(dec("50")))
	suite.mockCurrencyRepo.AssertCalled(suite.T(), "FindCurrencyByCode", mock.Anything, "SGD")
	suite.mockTxRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_InactiveTargetCurrency() {
	ctx := context.Background()
	suite.masterData()
	jpy := activeCurrency("JPY")
	jpy.IsActive = false
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "JPY").Return(jpy, nil).Once()
	suite.mockTxRepo.On("FindTransactionByID", ctx, "tx-1").Return(suite.existing(), nil).Once()

	code := "JPY"
	_, err := suite.service.UpdateTransaction(ctx, "tx-1", dto.UpdateTransactionRequest{CurrencyCode: &code}, "editor")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "ListExchangeRates", mock.Anything)
	suite.mockTxRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_CommentsOnlyKeepsCachedAmounts() {
	ctx := context.Background()
	existing := suite.existing()
	suite.mockTxRepo.On("FindTransactionByID", ctx, "tx-1").Return(existing, nil).Once()
	suite.mockTxRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	comments := "client dinner"
	tx, err := suite.service.UpdateTransaction(ctx, "tx-1", dto.UpdateTransactionRequest{Comments: &comments}, "editor")

	suite.Require().NoError(err)
	suite.Equal("client dinner", tx.Comments)
	suite.Equal(existing.HubAmount, tx.HubAmount)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "ListExchangeRates", mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_InvalidAmount() {
	ctx := context.Background()
	suite.mockTxRepo.On("FindTransactionByID", ctx, "tx-1").Return(suite.existing(), nil).Once()

	zero := decimal.Zero
	_, err := suite.service.UpdateTransaction(ctx, "tx-1", dto.UpdateTransactionRequest{Amount: &zero}, "editor")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DefaultsAndInclusiveEnd() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	next := "token"

	suite.mockTxRepo.On("ListTransactions", ctx, mock.MatchedBy(func(p portsrepo.ListTransactionsParams) bool {
		return p.Limit == 20 && p.From.Equal(from) && p.To.Equal(to.Add(24*time.Hour-time.Nanosecond))
	})).Return(nil, &next, nil).Once()

	txs, nextToken, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{From: &from, To: &to})

	suite.Require().NoError(err)
	suite.NotNil(txs)
	suite.Equal(&next, nextToken)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_InvalidRange() {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := suite.service.ListTransactions(context.Background(), dto.ListTransactionsParams{From: &from, To: &to})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()
	suite.mockTxRepo.On("DeleteTransaction", ctx, "missing").Return(apperrors.NewNotFoundError("transaction missing not found")).Once()

	suite.ErrorIs(suite.service.DeleteTransaction(ctx, "missing", "editor"), apperrors.ErrNotFound)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
