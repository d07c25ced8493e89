package fx

import (
	"fmt"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Normalized is the set of denormalized amounts cached on a transaction.
// A null entry means no rate path existed; it must not be read as zero.
type Normalized struct {
	HubCurrency      string                         `json:"hubCurrency"`
	HubAmount        decimal.NullDecimal            `json:"hubAmount"`
	ReportingAmounts map[string]decimal.NullDecimal `json:"reportingAmounts"`
}

// ReportingCurrencies returns the configured reporting set with the hub guaranteed present,
// de-duplicated and normalized, preserving the configured order.
func ReportingCurrencies(hub string, configured []string) []string {
	hub = normalizeCode(hub)
	seen := map[string]bool{hub: true}
	out := []string{hub}
	for _, c := range configured {
		c = normalizeCode(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Normalize computes the hub amount and one amount per reporting currency for a transaction
// entered as (amount, currency).
//
// Reporting amounts are derived from the hub amount when it is known so every figure agrees
// through the hub; if that hop fails the original amount is converted directly instead.
func Normalize(amount decimal.Decimal, currency string, table *RateTable, reporting []string) (Normalized, error) {
	currency = normalizeCode(currency)
	if table == nil {
		return Normalized{}, fmt.Errorf("%w: rate table is required", apperrors.ErrValidation)
	}

	hubConv, err := Convert(amount, currency, table.Hub(), table)
	if err != nil {
		return Normalized{}, err
	}

	n := Normalized{
		HubCurrency:      table.Hub(),
		HubAmount:        hubConv.Result,
		ReportingAmounts: make(map[string]decimal.NullDecimal, len(reporting)),
	}
	if currency == table.Hub() {
		n.HubAmount = decimal.NewNullDecimal(amount)
	}

	for _, r := range reporting {
		r = normalizeCode(r)
		if r == "" {
			continue
		}
		n.ReportingAmounts[r] = reportingAmount(amount, currency, r, n.HubAmount, table)
	}
	return n, nil
}

func reportingAmount(amount decimal.Decimal, currency, target string, hubAmount decimal.NullDecimal, table *RateTable) decimal.NullDecimal {
	if currency == target {
		return decimal.NewNullDecimal(amount)
	}
	if hubAmount.Valid && hubAmount.Decimal.IsPositive() {
		if c, err := Convert(hubAmount.Decimal, table.Hub(), target, table); err == nil && c.OK() {
			return c.Result
		}
	}
	if c, err := Convert(amount, currency, target, table); err == nil && c.OK() {
		return c.Result
	}
	return decimal.NullDecimal{}
}
