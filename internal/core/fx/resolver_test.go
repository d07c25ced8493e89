package fx_test

import (
	"testing"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(from, to, r string) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   from + "_" + to,
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             decimal.RequireFromString(r),
		AuditFields:      domain.AuditFields{LastUpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func mustTable(t *testing.T, rates ...domain.ExchangeRate) *fx.RateTable {
	t.Helper()
	table, err := fx.NewRateTable("SGD", rates)
	require.NoError(t, err)
	return table
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestConvert_Identity(t *testing.T) {
	tables := map[string]*fx.RateTable{
		"empty":     mustTable(t),
		"populated": mustTable(t, rate("SGD", "INR", "60"), rate("USD", "SGD", "1.35")),
	}
	amounts := []string{"0.01", "1", "100", "123456.789"}

	for name, table := range tables {
		for _, a := range amounts {
			for _, c := range []string{"SGD", "INR", "EUR"} {
				conv, err := fx.Convert(dec(a), c, c, table)
				require.NoError(t, err, name)
				assert.True(t, conv.OK())
				assert.Equal(t, fx.PathIdentity, conv.Path)
				assert.True(t, conv.Result.Decimal.Equal(dec(a)), "%s: %s %s", name, a, c)
				assert.Empty(t, conv.Legs)
			}
		}
	}
}

func TestConvert_DirectAndInverse(t *testing.T) {
	table := mustTable(t, rate("USD", "EUR", "0.92"))

	for _, a := range []string{"1", "50", "99.99", "1000000"} {
		x := dec(a)

		direct, err := fx.Convert(x, "USD", "EUR", table)
		require.NoError(t, err)
		assert.Equal(t, fx.PathDirect, direct.Path)
		assert.True(t, direct.Result.Decimal.Equal(x.Mul(dec("0.92"))), "direct %s", a)

		inverse, err := fx.Convert(x, "EUR", "USD", table)
		require.NoError(t, err)
		assert.Equal(t, fx.PathInverse, inverse.Path)
		assert.True(t, inverse.Result.Decimal.Equal(x.Div(dec("0.92"))), "inverse %s", a)
		require.Len(t, inverse.Legs, 1)
		assert.True(t, inverse.Legs[0].Inverted)
	}
}

func TestConvert_DirectPreferredOverInverse(t *testing.T) {
	table := mustTable(t, rate("USD", "EUR", "0.90"), rate("EUR", "USD", "1.25"))

	conv, err := fx.Convert(dec("10"), "USD", "EUR", table)
	require.NoError(t, err)
	assert.Equal(t, fx.PathDirect, conv.Path)
	assert.True(t, conv.Result.Decimal.Equal(dec("9")))
}

func TestConvert_HubRelay(t *testing.T) {
	tests := []struct {
		name  string
		rates []domain.ExchangeRate
		want  func(x decimal.Decimal) decimal.Decimal
	}{
		{
			name:  "both legs direct",
			rates: []domain.ExchangeRate{rate("INR", "SGD", "0.016"), rate("SGD", "USD", "0.75")},
			want:  func(x decimal.Decimal) decimal.Decimal { return x.Mul(dec("0.016")).Mul(dec("0.75")) },
		},
		{
			name:  "first leg inverse",
			rates: []domain.ExchangeRate{rate("SGD", "INR", "60"), rate("SGD", "USD", "0.75")},
			want:  func(x decimal.Decimal) decimal.Decimal { return x.Div(dec("60")).Mul(dec("0.75")) },
		},
		{
			name:  "second leg inverse",
			rates: []domain.ExchangeRate{rate("INR", "SGD", "0.016"), rate("USD", "SGD", "1.35")},
			want:  func(x decimal.Decimal) decimal.Decimal { return x.Mul(dec("0.016")).Div(dec("1.35")) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := mustTable(t, tt.rates...)
			for _, a := range []string{"1", "50", "2500.5"} {
				conv, err := fx.Convert(dec(a), "INR", "USD", table)
				require.NoError(t, err)
				assert.Equal(t, fx.PathHubRelay, conv.Path)
				require.Len(t, conv.Legs, 2)
				assert.Equal(t, "SGD", conv.Legs[0].To)
				assert.Equal(t, "SGD", conv.Legs[1].From)
				assert.True(t, conv.Result.Decimal.Equal(tt.want(dec(a))), "amount %s got %s", a, conv.Result.Decimal)
			}
		})
	}
}

func TestConvert_NoRelayWhenEndpointIsHub(t *testing.T) {
	// INR -> USD -> SGD would be a relay through a non-hub currency; it must not be used.
	table := mustTable(t, rate("INR", "USD", "0.012"), rate("USD", "EUR", "0.92"))

	conv, err := fx.Convert(dec("100"), "INR", "SGD", table)
	require.NoError(t, err)
	assert.False(t, conv.OK())
	assert.Equal(t, fx.PathNone, conv.Path)

	conv, err = fx.Convert(dec("100"), "SGD", "EUR", table)
	require.NoError(t, err)
	assert.False(t, conv.OK())
}

func TestConvert_NoPath(t *testing.T) {
	conv, err := fx.Convert(dec("42"), "INR", "USD", mustTable(t))
	require.NoError(t, err)
	assert.False(t, conv.OK(), "missing rate must not fall back to 1:1")
	assert.False(t, conv.Result.Valid)
	assert.Equal(t, fx.PathNone, conv.Path)

	// Only one relay leg available.
	conv, err = fx.Convert(dec("42"), "INR", "USD", mustTable(t, rate("SGD", "INR", "60")))
	require.NoError(t, err)
	assert.False(t, conv.OK())
}

func TestConvert_InvalidInput(t *testing.T) {
	table := mustTable(t, rate("SGD", "INR", "60"))

	tests := []struct {
		name   string
		amount decimal.Decimal
		from   string
		to     string
		table  *fx.RateTable
	}{
		{name: "zero amount", amount: decimal.Zero, from: "SGD", to: "INR", table: table},
		{name: "negative amount", amount: dec("-1"), from: "SGD", to: "INR", table: table},
		{name: "nil table", amount: dec("1"), from: "SGD", to: "INR", table: nil},
		{name: "bad code", amount: dec("1"), from: "SG", to: "INR", table: table},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.Convert(tt.amount, tt.from, tt.to, tt.table)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestConvert_NormalizesCodes(t *testing.T) {
	table := mustTable(t, rate("SGD", "INR", "60"))

	conv, err := fx.Convert(dec("2"), " sgd", "inr ", table)
	require.NoError(t, err)
	assert.Equal(t, "SGD", conv.From)
	assert.Equal(t, "INR", conv.To)
	assert.True(t, conv.Result.Decimal.Equal(dec("120")))
}

func TestLeg_EffectiveRate(t *testing.T) {
	assert.True(t, fx.Leg{Rate: dec("4")}.EffectiveRate().Equal(dec("4")))
	assert.True(t, fx.Leg{Rate: dec("4"), Inverted: true}.EffectiveRate().Equal(dec("0.25")))
}
