package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/core/services"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "usd",
		Symbol:       "$",
		Name:         "US Dollar",
	}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "USD" && c.IsActive && !c.IsDefault && c.CreatedBy == creatorUserID
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Equal("USD", currency.CurrencyCode)
	suite.Equal("$", currency.Symbol)
	suite.True(currency.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Duplicate() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "INR").Return(activeCurrency("INR"), nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, dto.CreateCurrencyRequest{CurrencyCode: "INR", Symbol: "₹", Name: "Rupee"}, "user")

	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_CannotDeactivateDefault() {
	ctx := context.Background()
	inr := activeCurrency("INR")
	inr.IsDefault = true
	suite.mockRepo.On("FindCurrencyByCode", ctx, "INR").Return(inr, nil).Once()

	inactive := false
	_, err := suite.service.UpdateCurrency(ctx, "INR", dto.UpdateCurrencyRequest{IsActive: &inactive}, "user")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_Success() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(activeCurrency("USD"), nil).Once()
	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Name == "United States Dollar" && c.LastUpdatedBy == "editor"
	})).Return(nil).Once()

	name := "United States Dollar"
	currency, err := suite.service.UpdateCurrency(ctx, "usd", dto.UpdateCurrencyRequest{Name: &name}, "editor")

	suite.Require().NoError(err)
	suite.Equal(name, currency.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestSetDefaultCurrency() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(activeCurrency("USD"), nil).Once()
	suite.mockRepo.On("SetDefaultCurrency", ctx, "USD", "admin").Return(nil).Once()

	currency, err := suite.service.SetDefaultCurrency(ctx, "USD", "admin")

	suite.Require().NoError(err)
	suite.True(currency.IsDefault)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestSetDefaultCurrency_Inactive() {
	ctx := context.Background()
	eur := activeCurrency("EUR")
	eur.IsActive = false
	suite.mockRepo.On("FindCurrencyByCode", ctx, "EUR").Return(eur, nil).Once()

	_, err := suite.service.SetDefaultCurrency(ctx, "EUR", "admin")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetDefaultCurrency", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_EmptyIsNotNil() {
	ctx := context.Background()
	suite.mockRepo.On("ListCurrencies", ctx, true).Return(nil, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx, true)

	suite.Require().NoError(err)
	suite.NotNil(currencies)
	suite.Empty(currencies)
}

func (suite *CurrencyServiceTestSuite) TestValidateActiveCurrency() {
	ctx := context.Background()
	inactive := activeCurrency("EUR")
	inactive.IsActive = false
	suite.mockRepo.On("FindCurrencyByCode", ctx, "INR").Return(activeCurrency("INR"), nil)
	suite.mockRepo.On("FindCurrencyByCode", ctx, "EUR").Return(inactive, nil)
	suite.mockRepo.On("FindCurrencyByCode", ctx, "XYZ").Return(nil, apperrors.NewNotFoundError("currency XYZ not found"))

	suite.NoError(suite.service.ValidateActiveCurrency(ctx, "inr"))
	suite.ErrorIs(suite.service.ValidateActiveCurrency(ctx, "EUR"), apperrors.ErrValidation)
	suite.ErrorIs(suite.service.ValidateActiveCurrency(ctx, "XYZ"), apperrors.ErrValidation)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
