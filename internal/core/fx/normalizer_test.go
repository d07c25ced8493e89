package fx_test

import (
	"testing"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tolerance = decimal.New(1, -6)

func assertClose(t *testing.T, want decimal.Decimal, got decimal.NullDecimal, msgAndArgs ...interface{}) {
	t.Helper()
	require.True(t, got.Valid, msgAndArgs...)
	assert.True(t, got.Decimal.Sub(want).Abs().LessThan(tolerance), "want %s got %s", want, got.Decimal)
}

func TestNormalize_HubCurrencyIsExact(t *testing.T) {
	table := mustTable(t, rate("SGD", "INR", "60"), rate("SGD", "USD", "0.75"))

	for _, a := range []string{"0.01", "1", "3.14159265358979", "100000.005"} {
		n, err := fx.Normalize(dec(a), "SGD", table, []string{"SGD", "INR", "USD"})
		require.NoError(t, err)
		require.True(t, n.HubAmount.Valid)
		assert.Equal(t, dec(a).String(), n.HubAmount.Decimal.String(), "no drift for %s", a)
		assert.Equal(t, dec(a).String(), n.ReportingAmounts["SGD"].Decimal.String())
	}
}

func TestNormalize_EndToEnd(t *testing.T) {
	table := mustTable(t, rate("SGD", "INR", "60"), rate("SGD", "USD", "0.75"))

	n, err := fx.Normalize(dec("50"), "INR", table, []string{"SGD", "INR", "USD"})
	require.NoError(t, err)

	assert.Equal(t, "SGD", n.HubCurrency)
	assertClose(t, dec("0.833333"), n.HubAmount)
	assertClose(t, dec("0.625"), n.ReportingAmounts["USD"])
	assertClose(t, n.HubAmount.Decimal, n.ReportingAmounts["SGD"])
	assert.True(t, n.ReportingAmounts["INR"].Decimal.Equal(dec("50")), "own currency keeps the entered amount")
}

func TestNormalize_ReportingCurrenciesAgree(t *testing.T) {
	// A direct INR->USD rate exists alongside the hub rates. The hub-derived figure must agree
	// with the direct conversion.
	table := mustTable(t,
		rate("SGD", "INR", "60"),
		rate("SGD", "USD", "0.75"),
		rate("INR", "USD", "0.0125"),
	)

	for _, a := range []string{"1", "50", "12345.67"} {
		n, err := fx.Normalize(dec(a), "INR", table, []string{"SGD", "USD"})
		require.NoError(t, err)

		direct, err := fx.Convert(dec(a), "INR", "USD", table)
		require.NoError(t, err)
		require.Equal(t, fx.PathDirect, direct.Path)
		assertClose(t, direct.Result.Decimal, n.ReportingAmounts["USD"], "amount %s", a)
	}
}

func TestNormalize_FallsBackToDirectConversion(t *testing.T) {
	// No path from INR to the hub, but a direct INR->USD rate exists.
	table := mustTable(t, rate("INR", "USD", "0.012"))

	n, err := fx.Normalize(dec("1000"), "INR", table, []string{"SGD", "USD"})
	require.NoError(t, err)

	assert.False(t, n.HubAmount.Valid)
	assert.False(t, n.ReportingAmounts["SGD"].Valid)
	require.True(t, n.ReportingAmounts["USD"].Valid)
	assert.True(t, n.ReportingAmounts["USD"].Decimal.Equal(dec("12")))
}

func TestNormalize_UnknownIsNullNotZeroOrOriginal(t *testing.T) {
	n, err := fx.Normalize(dec("75"), "EUR", mustTable(t), []string{"SGD", "INR"})
	require.NoError(t, err)

	assert.False(t, n.HubAmount.Valid)
	require.Contains(t, n.ReportingAmounts, "INR")
	assert.False(t, n.ReportingAmounts["INR"].Valid)
	assert.False(t, n.ReportingAmounts["SGD"].Valid)
}

func TestNormalize_InvalidInput(t *testing.T) {
	_, err := fx.Normalize(dec("0"), "INR", mustTable(t), []string{"SGD"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = fx.Normalize(dec("1"), "INR", nil, []string{"SGD"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestReportingCurrencies(t *testing.T) {
	assert.Equal(t, []string{"SGD", "INR", "USD"}, fx.ReportingCurrencies("SGD", []string{"inr", "USD", "SGD", " usd", ""}))
	assert.Equal(t, []string{"SGD"}, fx.ReportingCurrencies("sgd", nil))
}
