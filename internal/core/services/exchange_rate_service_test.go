package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/core/services"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
	"github.com/SscSPs/biz_finance_tracker/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// newRateService wires an exchange rate service with fast retries for tests.
func newRateService(rateRepo *MockExchangeRateRepository, currencyRepo *MockCurrencyRepository, m *metrics.Metrics) portssvc.ExchangeRateSvcFacade {
	return services.NewExchangeRateService(
		rateRepo,
		services.NewCurrencyService(currencyRepo),
		"SGD",
		services.WithRateLoaderOptions(fx.WithMaxRetries(1), fx.WithBackoffIntervals(time.Millisecond, time.Millisecond)),
		services.WithExchangeRateMetrics(m),
	)
}

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	metrics          *metrics.Metrics
	service          portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.metrics = metrics.New(prometheus.NewRegistry())
	suite.service = newRateService(suite.mockRateRepo, suite.mockCurrencyRepo, suite.metrics)
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertExchangeRate_Success() {
	ctx := context.Background()
	req := dto.UpsertExchangeRateRequest{FromCurrencyCode: "sgd", ToCurrencyCode: "INR", Rate: dec("60")}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "SGD").Return(activeCurrency("SGD"), nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "INR").Return(activeCurrency("INR"), nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrencyCode == "SGD" && r.ToCurrencyCode == "INR" && r.Rate.Equal(dec("60")) && r.CreatedBy == "admin"
	})).Return(&domain.ExchangeRate{ExchangeRateID: "existing-id", FromCurrencyCode: "SGD", ToCurrencyCode: "INR", Rate: dec("60")}, nil).Once()

	rate, err := suite.service.UpsertExchangeRate(ctx, req, "admin")

	suite.Require().NoError(err)
	suite.Equal("existing-id", rate.ExchangeRateID, "the stored row is returned")
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertExchangeRate_Rejects() {
	ctx := context.Background()
	tests := []struct {
		name string
		req  dto.UpsertExchangeRateRequest
	}{
		{name: "zero rate", req: dto.UpsertExchangeRateRequest{FromCurrencyCode: "SGD", ToCurrencyCode: "INR", Rate: dec("0")}},
		{name: "negative rate", req: dto.UpsertExchangeRateRequest{FromCurrencyCode: "SGD", ToCurrencyCode: "INR", Rate: dec("-1")}},
		{name: "same currency", req: dto.UpsertExchangeRateRequest{FromCurrencyCode: "SGD", ToCurrencyCode: "sgd", Rate: dec("1")}},
		{name: "bad code", req: dto.UpsertExchangeRateRequest{FromCurrencyCode: "SG", ToCurrencyCode: "INR", Rate: dec("1")}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.UpsertExchangeRate(ctx, tt.req, "admin")
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertExchangeRate_InactiveCurrency() {
	ctx := context.Background()
	eur := activeCurrency("EUR")
	eur.IsActive = false
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "SGD").Return(activeCurrency("SGD"), nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(eur, nil).Once()

	_, err := suite.service.UpsertExchangeRate(ctx, dto.UpsertExchangeRateRequest{FromCurrencyCode: "SGD", ToCurrencyCode: "EUR", Rate: dec("0.7")}, "admin")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_Direct() {
	ctx := context.Background()
	stored := storedRate("SGD", "INR", "60")
	suite.mockRateRepo.On("FindExchangeRate", ctx, "SGD", "INR").Return(&stored, nil).Once()

	rate, inverse, err := suite.service.GetExchangeRate(ctx, "sgd", "inr")

	suite.Require().NoError(err)
	suite.False(inverse)
	suite.True(rate.Rate.Equal(dec("60")))
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_Inverse() {
	ctx := context.Background()
	stored := storedRate("INR", "SGD", "0.02")
	suite.mockRateRepo.On("FindExchangeRate", ctx, "SGD", "INR").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "INR", "SGD").Return(&stored, nil).Once()

	rate, inverse, err := suite.service.GetExchangeRate(ctx, "SGD", "INR")

	suite.Require().NoError(err)
	suite.True(inverse)
	suite.Equal("SGD", rate.FromCurrencyCode)
	suite.Equal("INR", rate.ToCurrencyCode)
	suite.Empty(rate.ExchangeRateID)
	suite.True(rate.Rate.Equal(dec("50")))
	suite.True(stored.Rate.Equal(dec("0.02")), "stored row is not modified")
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_NotFound() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "SGD", "EUR").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "EUR", "SGD").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.GetExchangeRate(ctx, "SGD", "EUR")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExchangeRateServiceTestSuite) TestDeleteExchangeRate() {
	ctx := context.Background()
	stored := storedRate("SGD", "INR", "60")
	suite.mockRateRepo.On("FindExchangeRateByID", ctx, "SGD-INR").Return(&stored, nil).Once()
	suite.mockRateRepo.On("DeleteExchangeRate", ctx, "SGD-INR").Return(nil).Once()

	suite.NoError(suite.service.DeleteExchangeRate(ctx, "SGD-INR", "admin"))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestLoadRateTable() {
	ctx := context.Background()
	suite.mockRateRepo.On("ListExchangeRates", ctx).
		Return([]domain.ExchangeRate{storedRate("SGD", "INR", "60"), storedRate("SGD", "USD", "0.75")}, nil).Once()

	table, err := suite.service.LoadRateTable(ctx)

	suite.Require().NoError(err)
	suite.Equal("SGD", table.Hub())
	suite.Equal(2, table.Len())
	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.RateTableLoads.WithLabelValues("ok")))
	suite.Equal(float64(2), testutil.ToFloat64(suite.metrics.RateTableSize))
}

func (suite *ExchangeRateServiceTestSuite) TestLoadRateTable_StorageFailure() {
	ctx := context.Background()
	suite.mockRateRepo.On("ListExchangeRates", ctx).Return(nil, errors.New("connection refused"))

	table, err := suite.service.LoadRateTable(ctx)

	suite.Nil(table)
	suite.ErrorIs(err, apperrors.ErrRateLookup)
	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "ListExchangeRates", 2)
	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.RateTableLoads.WithLabelValues("error")))
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
