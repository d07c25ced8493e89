package fx_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func fastLoader(source fx.RateSource, retries int) *fx.RateTableLoader {
	return fx.NewRateTableLoader(source, "SGD",
		fx.WithMaxRetries(retries),
		fx.WithBackoffIntervals(time.Millisecond, 2*time.Millisecond),
	)
}

func TestRateTableLoader_Load(t *testing.T) {
	source := new(MockRateSource)
	source.On("ListExchangeRates", mock.Anything).
		Return([]domain.ExchangeRate{rate("SGD", "INR", "60")}, nil).Once()

	table, err := fastLoader(source, 2).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SGD", table.Hub())
	assert.Equal(t, 1, table.Len())
	source.AssertExpectations(t)
}

func TestRateTableLoader_RetriesTransientFailure(t *testing.T) {
	source := new(MockRateSource)
	source.On("ListExchangeRates", mock.Anything).Return(nil, errors.New("connection reset")).Once()
	source.On("ListExchangeRates", mock.Anything).
		Return([]domain.ExchangeRate{rate("SGD", "USD", "0.75")}, nil).Once()

	table, err := fastLoader(source, 2).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	source.AssertNumberOfCalls(t, "ListExchangeRates", 2)
}

func TestRateTableLoader_GivesUp(t *testing.T) {
	source := new(MockRateSource)
	source.On("ListExchangeRates", mock.Anything).Return(nil, errors.New("db down"))

	table, err := fastLoader(source, 2).Load(context.Background())
	assert.Nil(t, table)
	assert.ErrorIs(t, err, apperrors.ErrRateLookup)
	assert.Contains(t, err.Error(), "db down")
	source.AssertNumberOfCalls(t, "ListExchangeRates", 3)
}

func TestRateTableLoader_InvalidStoredRate(t *testing.T) {
	source := new(MockRateSource)
	source.On("ListExchangeRates", mock.Anything).
		Return([]domain.ExchangeRate{rate("SGD", "INR", "0")}, nil).Once()

	_, err := fastLoader(source, 0).Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrRateLookup)
}

func TestRateTableLoader_CancelledContext(t *testing.T) {
	source := new(MockRateSource)
	source.On("ListExchangeRates", mock.Anything).Return(nil, context.Canceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fastLoader(source, 5).Load(ctx)
	assert.ErrorIs(t, err, apperrors.ErrRateLookup)
	source.AssertNumberOfCalls(t, "ListExchangeRates", 1)
}
