// Package fx holds the multi-currency conversion core: an immutable rate table snapshot,
// the conversion resolver, the multi-target normalizer and the conversion confirmation policy.
//
// Everything here is pure. Loading rates from storage is a separate, explicit step
// (see RateTableLoader) so the conversion logic can be exercised without a database.
package fx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
)

type pairKey struct {
	from string
	to   string
}

// RateTable is a read-only snapshot of every stored exchange rate plus the hub currency
// used for two-hop conversions. It is safe to share between goroutines.
type RateTable struct {
	hub   string
	rates map[pairKey]domain.ExchangeRate
}

// NewRateTable builds a snapshot from stored rate rows.
// Rows with a non-positive rate or identical endpoints are rejected. If the same ordered pair
// appears more than once, the most recently updated row wins.
func NewRateTable(hub string, rates []domain.ExchangeRate) (*RateTable, error) {
	hub = normalizeCode(hub)
	if len(hub) != 3 {
		return nil, fmt.Errorf("%w: hub currency must be a 3 letter code, got %q", apperrors.ErrValidation, hub)
	}

	t := &RateTable{
		hub:   hub,
		rates: make(map[pairKey]domain.ExchangeRate, len(rates)),
	}
	for _, r := range rates {
		r.FromCurrencyCode = normalizeCode(r.FromCurrencyCode)
		r.ToCurrencyCode = normalizeCode(r.ToCurrencyCode)
		if r.FromCurrencyCode == r.ToCurrencyCode {
			return nil, fmt.Errorf("%w: rate %s has identical from and to currency %s", apperrors.ErrValidation, r.ExchangeRateID, r.FromCurrencyCode)
		}
		if !r.Rate.IsPositive() {
			return nil, fmt.Errorf("%w: rate %s->%s must be positive, got %s", apperrors.ErrValidation, r.FromCurrencyCode, r.ToCurrencyCode, r.Rate)
		}
		key := pairKey{from: r.FromCurrencyCode, to: r.ToCurrencyCode}
		if existing, ok := t.rates[key]; ok && existing.UpdatedAt().After(r.UpdatedAt()) {
			continue
		}
		t.rates[key] = r
	}
	return t, nil
}

// Hub returns the hub currency code.
func (t *RateTable) Hub() string {
	return t.hub
}

// Len returns the number of stored directional rates.
func (t *RateTable) Len() int {
	return len(t.rates)
}

// FindDirect returns the stored rate for exactly (from -> to). Inverses are not considered.
func (t *RateTable) FindDirect(from, to string) (domain.ExchangeRate, bool) {
	r, ok := t.rates[pairKey{from: normalizeCode(from), to: normalizeCode(to)}]
	return r, ok
}

// Rates returns a copy of the stored rates ordered by (from, to).
func (t *RateTable) Rates() []domain.ExchangeRate {
	out := make([]domain.ExchangeRate, 0, len(t.rates))
	for _, r := range t.rates {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FromCurrencyCode != out[j].FromCurrencyCode {
			return out[i].FromCurrencyCode < out[j].FromCurrencyCode
		}
		return out[i].ToCurrencyCode < out[j].ToCurrencyCode
	})
	return out
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
