package services_test

import (
	"context"
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

type ConversionOfferServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockStore        *MockConversionOfferStore
	metrics          *metrics.Metrics
	now              time.Time
	service          portssvc.ConversionOfferSvc
}

func (suite *ConversionOfferServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockStore = new(MockConversionOfferStore)
	suite.metrics = metrics.New(prometheus.NewRegistry())
	suite.now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, code := range []string{"SGD", "INR", "USD"} {
		suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, code).Return(activeCurrency(code), nil).Maybe()
	}

	currencySvc := services.NewCurrencyService(suite.mockCurrencyRepo)
	rates := newRateService(suite.mockRateRepo, suite.mockCurrencyRepo, suite.metrics)
	suite.service = services.NewConversionOfferService(rates, currencySvc, suite.mockStore, "SGD",
		services.WithOfferTTL(5*time.Minute),
		services.WithOfferMetrics(suite.metrics),
		services.WithOfferClock(func() time.Time { return suite.now }),
	)
}

func (suite *ConversionOfferServiceTestSuite) defaultCurrency(code string) {
	c := activeCurrency(code)
	c.IsDefault = true
	suite.mockCurrencyRepo.On("FindDefaultCurrency", mock.Anything).Return(c, nil)
}

func (suite *ConversionOfferServiceTestSuite) TestCreateOffer_Presented() {
	ctx := context.Background()
	suite.defaultCurrency("INR")
	suite.mockRateRepo.On("ListExchangeRates", ctx).Return([]domain.ExchangeRate{storedRate("SGD", "INR", "60")}, nil).Once()

	var saved domain.ConversionOffer
	suite.mockStore.On("SaveOffer", ctx, mock.AnythingOfType("domain.ConversionOffer"), 5*time.Minute).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.ConversionOffer) }).
		Return(nil).Once()

	outcome, err := suite.service.CreateOffer(ctx, dto.CreateConversionOfferRequest{
		Amount: dec("100"), PreviousCurrency: "INR", NewCurrency: "SGD",
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(fx.StateOfferPresented, outcome.State)
	suite.Require().NotNil(outcome.Offer)
	suite.Len(outcome.Offer.OfferID, 26, "offer IDs are ULIDs")
	suite.True(outcome.Offer.CandidateAmount.Equal(dec("6000")))
	suite.True(outcome.Offer.Rate.Equal(dec("60")))
	suite.Equal("user-1", outcome.Offer.CreatedBy)
	suite.Equal(suite.now.Add(5*time.Minute), outcome.Offer.ExpiresAt)
	suite.Equal("SGD", outcome.Form.CurrencyCode, "form holds the hub until the offer is answered")
	suite.Equal(outcome.Offer.OfferID, saved.OfferID)
	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.OfferOutcomes.WithLabelValues("presented")))
}

func (suite *ConversionOfferServiceTestSuite) TestCreateOffer_NotApplicableSkipsRateLookup() {
	ctx := context.Background()
	suite.defaultCurrency("INR")

	outcome, err := suite.service.CreateOffer(ctx, dto.CreateConversionOfferRequest{
		Amount: dec("100"), PreviousCurrency: "SGD", NewCurrency: "USD",
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(fx.StateIdle, outcome.State)
	suite.Nil(outcome.Offer)
	suite.Equal("USD", outcome.Form.CurrencyCode)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "ListExchangeRates", mock.Anything)
	suite.mockStore.AssertNotCalled(suite.T(), "SaveOffer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversionOfferServiceTestSuite) TestCreateOffer_NoRate() {
	ctx := context.Background()
	suite.defaultCurrency("INR")
	suite.mockRateRepo.On("ListExchangeRates", ctx).Return([]domain.ExchangeRate{storedRate("SGD", "USD", "0.75")}, nil).Once()

	outcome, err := suite.service.CreateOffer(ctx, dto.CreateConversionOfferRequest{
		Amount: dec("100"), PreviousCurrency: "INR", NewCurrency: "SGD",
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(fx.StateNoRateAvailable, outcome.State)
	suite.Nil(outcome.Offer)
	suite.True(outcome.Form.Amount.Equal(dec("100")))
	suite.Equal("SGD", outcome.Form.CurrencyCode)
	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.OfferOutcomes.WithLabelValues("no_rate")))
}

func (suite *ConversionOfferServiceTestSuite) TestCreateOffer_NoDefaultCurrency() {
	suite.mockCurrencyRepo.On("FindDefaultCurrency", mock.Anything).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.CreateOffer(context.Background(), dto.CreateConversionOfferRequest{
		Amount: dec("100"), PreviousCurrency: "INR", NewCurrency: "SGD",
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ConversionOfferServiceTestSuite) TestCreateOffer_UnknownOrInactiveCurrency() {
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "QQQ").Return(nil, apperrors.ErrNotFound)
	eur := activeCurrency("EUR")
	eur.IsActive = false
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "EUR").Return(eur, nil)

	tests := []struct {
		name     string
		previous string
		next     string
	}{
		{name: "unknown previous", previous: "QQQ", next: "SGD"},
		{name: "unknown new", previous: "INR", next: "QQQ"},
		{name: "inactive previous", previous: "EUR", next: "SGD"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			outcome, err := suite.service.CreateOffer(context.Background(), dto.CreateConversionOfferRequest{
				Amount: dec("100"), PreviousCurrency: tt.previous, NewCurrency: tt.next,
			}, "user-1")

			suite.Nil(outcome)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "FindDefaultCurrency", mock.Anything)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "ListExchangeRates", mock.Anything)
	suite.mockStore.AssertNotCalled(suite.T(), "SaveOffer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversionOfferServiceTestSuite) pendingOffer() *domain.ConversionOffer {
	return &domain.ConversionOffer{
		OfferID:         "01HQZX3G7J5Y7Q3V1F8K9M2N4P",
		Amount:          dec("100"),
		HubCurrency:     "SGD",
		DefaultCurrency: "INR",
		Rate:            dec("60"),
		CandidateAmount: dec("6000"),
		Path:            string(fx.PathDirect),
		CreatedBy:       "user-1",
	}
}

func (suite *ConversionOfferServiceTestSuite) TestAcceptOffer() {
	ctx := context.Background()
	offer := suite.pendingOffer()
	suite.mockStore.On("GetOffer", ctx, offer.OfferID).Return(offer, nil).Once()
	suite.mockStore.On("TakeOffer", ctx, offer.OfferID).Return(offer, nil).Once()

	decision, err := suite.service.AcceptOffer(ctx, offer.OfferID, "user-1")

	suite.Require().NoError(err)
	suite.Equal(fx.StateAccepted, decision.State)
	suite.Equal("6000.00", decision.Form.Amount.StringFixed(2))
	suite.Equal("INR", decision.Form.CurrencyCode)
	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.OfferOutcomes.WithLabelValues("accepted")))
}

func (suite *ConversionOfferServiceTestSuite) TestDeclineOffer() {
	ctx := context.Background()
	offer := suite.pendingOffer()
	suite.mockStore.On("GetOffer", ctx, offer.OfferID).Return(offer, nil).Once()
	suite.mockStore.On("TakeOffer", ctx, offer.OfferID).Return(offer, nil).Once()

	decision, err := suite.service.DeclineOffer(ctx, offer.OfferID, "user-1")

	suite.Require().NoError(err)
	suite.Equal(fx.StateDeclined, decision.State)
	suite.True(decision.Form.Amount.Equal(dec("100")))
	suite.Equal("SGD", decision.Form.CurrencyCode)
}

func (suite *ConversionOfferServiceTestSuite) TestAnswerOffer_OtherUser() {
	ctx := context.Background()
	offer := suite.pendingOffer()
	suite.mockStore.On("GetOffer", ctx, offer.OfferID).Return(offer, nil).Once()

	_, err := suite.service.AcceptOffer(ctx, offer.OfferID, "someone-else")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockStore.AssertNotCalled(suite.T(), "TakeOffer", mock.Anything, mock.Anything)
}

func (suite *ConversionOfferServiceTestSuite) TestAnswerOffer_Expired() {
	ctx := context.Background()
	suite.mockStore.On("GetOffer", ctx, "gone").Return(nil, apperrors.NewNotFoundError("conversion offer gone not found or expired")).Once()

	_, err := suite.service.DeclineOffer(ctx, "gone", "user-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ConversionOfferServiceTestSuite) TestAnswerOffer_AlreadyAnswered() {
	ctx := context.Background()
	offer := suite.pendingOffer()
	suite.mockStore.On("GetOffer", ctx, offer.OfferID).Return(offer, nil).Once()
	suite.mockStore.On("TakeOffer", ctx, offer.OfferID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AcceptOffer(ctx, offer.OfferID, "user-1")

	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func TestConversionOfferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversionOfferServiceTestSuite))
}
