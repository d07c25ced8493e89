package fx

import (
	"fmt"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Path describes how a conversion was resolved.
type Path string

const (
	PathIdentity Path = "IDENTITY"
	PathDirect   Path = "DIRECT"
	PathInverse  Path = "INVERSE"
	PathHubRelay Path = "HUB_RELAY"
	PathNone     Path = "NONE"
)

// Leg is one hop of a resolved conversion. When Inverted is true the stored rate is
// (To -> From) and the hop divides by it.
type Leg struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Rate     decimal.Decimal `json:"rate"`
	Inverted bool            `json:"inverted"`
}

// EffectiveRate is the multiplier this leg applies (1/rate for an inverted leg).
func (l Leg) EffectiveRate() decimal.Decimal {
	if l.Inverted {
		return decimal.NewFromInt(1).Div(l.Rate)
	}
	return l.Rate
}

func (l Leg) apply(amount decimal.Decimal) decimal.Decimal {
	if l.Inverted {
		return amount.Div(l.Rate)
	}
	return amount.Mul(l.Rate)
}

// Conversion is the outcome of Convert. Result is invalid (null) when no rate path exists.
type Conversion struct {
	From   string              `json:"from"`
	To     string              `json:"to"`
	Amount decimal.Decimal     `json:"amount"`
	Result decimal.NullDecimal `json:"result"`
	Path   Path                `json:"path"`
	Legs   []Leg               `json:"legs,omitempty"`
}

// OK reports whether a rate path was found.
func (c Conversion) OK() bool {
	return c.Result.Valid
}

// Convert expresses amount (in from) in the to currency using the rates in table.
//
// Resolution order: identity, direct (from->to), inverse (to->from), then a two-hop relay
// through the hub where each hop is itself direct or inverse. The relay is not attempted when
// either endpoint is the hub. When nothing resolves the result is null; there is never an
// implicit 1:1 fallback. Results are not rounded.
func Convert(amount decimal.Decimal, from, to string, table *RateTable) (Conversion, error) {
	from, to = normalizeCode(from), normalizeCode(to)
	conv := Conversion{From: from, To: to, Amount: amount, Path: PathNone}

	if table == nil {
		return conv, fmt.Errorf("%w: rate table is required", apperrors.ErrValidation)
	}
	if !amount.IsPositive() {
		return conv, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	if len(from) != 3 || len(to) != 3 {
		return conv, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	if from == to {
		conv.Path = PathIdentity
		conv.Result = decimal.NewNullDecimal(amount)
		return conv, nil
	}

	if leg, ok := resolveLeg(table, from, to); ok {
		conv.Path = PathDirect
		if leg.Inverted {
			conv.Path = PathInverse
		}
		conv.Legs = []Leg{leg}
		conv.Result = decimal.NewNullDecimal(leg.apply(amount))
		return conv, nil
	}

	hub := table.Hub()
	if from == hub || to == hub {
		return conv, nil
	}
	toHub, ok := resolveLeg(table, from, hub)
	if !ok {
		return conv, nil
	}
	fromHub, ok := resolveLeg(table, hub, to)
	if !ok {
		return conv, nil
	}
	conv.Path = PathHubRelay
	conv.Legs = []Leg{toHub, fromHub}
	conv.Result = decimal.NewNullDecimal(fromHub.apply(toHub.apply(amount)))
	return conv, nil
}

// resolveLeg finds a single-hop rate: the stored (from->to) row, or the stored (to->from) row
// used inversely.
func resolveLeg(table *RateTable, from, to string) (Leg, bool) {
	if r, ok := table.FindDirect(from, to); ok {
		return Leg{From: from, To: to, Rate: r.Rate}, true
	}
	if r, ok := table.FindDirect(to, from); ok {
		return Leg{From: from, To: to, Rate: r.Rate, Inverted: true}, true
	}
	return Leg{}, false
}
