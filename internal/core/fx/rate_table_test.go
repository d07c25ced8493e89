package fx_test

import (
	"testing"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateTable(t *testing.T) {
	table, err := fx.NewRateTable("sgd", []domain.ExchangeRate{
		rate("SGD", "INR", "60"),
		rate("usd", "sgd", "1.35"),
	})
	require.NoError(t, err)

	assert.Equal(t, "SGD", table.Hub())
	assert.Equal(t, 2, table.Len())

	r, ok := table.FindDirect("USD", "SGD")
	require.True(t, ok)
	assert.True(t, r.Rate.Equal(dec("1.35")))

	_, ok = table.FindDirect("SGD", "USD")
	assert.False(t, ok, "FindDirect does not consider inverses")

	rates := table.Rates()
	require.Len(t, rates, 2)
	assert.Equal(t, "SGD", rates[0].FromCurrencyCode)
	assert.Equal(t, "USD", rates[1].FromCurrencyCode)
}

func TestNewRateTable_LatestDuplicateWins(t *testing.T) {
	older := rate("SGD", "INR", "59")
	older.LastUpdatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := rate("SGD", "INR", "61")
	newer.LastUpdatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, order := range [][]domain.ExchangeRate{{older, newer}, {newer, older}} {
		table, err := fx.NewRateTable("SGD", order)
		require.NoError(t, err)
		r, ok := table.FindDirect("SGD", "INR")
		require.True(t, ok)
		assert.True(t, r.Rate.Equal(dec("61")))
	}
}

func TestNewRateTable_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		hub   string
		rates []domain.ExchangeRate
	}{
		{name: "bad hub", hub: "SG"},
		{name: "zero rate", hub: "SGD", rates: []domain.ExchangeRate{rate("SGD", "INR", "0")}},
		{name: "negative rate", hub: "SGD", rates: []domain.ExchangeRate{rate("SGD", "INR", "-60")}},
		{name: "self pair", hub: "SGD", rates: []domain.ExchangeRate{rate("INR", "INR", "1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.NewRateTable(tt.hub, tt.rates)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}
