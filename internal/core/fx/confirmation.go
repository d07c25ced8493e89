package fx

import (
	"fmt"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ConfirmationState is a state of the ConfirmationPolicy.
type ConfirmationState string

const (
	StateIdle              ConfirmationState = "IDLE"
	StateRateLookupPending ConfirmationState = "RATE_LOOKUP_PENDING"
	StateOfferPresented    ConfirmationState = "OFFER_PRESENTED"
	StateAccepted          ConfirmationState = "ACCEPTED"
	StateDeclined          ConfirmationState = "DECLINED"
	StateNoRateAvailable   ConfirmationState = "NO_RATE_AVAILABLE"
)

// FormAmount is the amount and currency currently held by a transaction form.
type FormAmount struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// Offer is a proposed rescale of the entered amount into the default currency.
type Offer struct {
	Amount          decimal.Decimal `json:"amount"`
	HubCurrency     string          `json:"hubCurrency"`
	DefaultCurrency string          `json:"defaultCurrency"`
	Rate            decimal.Decimal `json:"rate"`
	CandidateAmount decimal.Decimal `json:"candidateAmount"`
	Path            Path            `json:"path"`
}

// Accepted is the form value after the offer is confirmed.
// The currency is switched to the default currency, not left at the hub.
func (o Offer) Accepted() FormAmount {
	return FormAmount{Amount: o.CandidateAmount.Round(2), CurrencyCode: o.DefaultCurrency}
}

// Declined is the form value after the offer is refused.
func (o Offer) Declined() FormAmount {
	return FormAmount{Amount: o.Amount, CurrencyCode: o.HubCurrency}
}

// ConfirmationPolicy offers to rescale an amount when the user switches a transaction's
// currency to the hub currency. It only reacts to that one change; switching to any other
// currency never raises an offer. Presenting and answering the offer are separate calls.
//
// A policy is not safe for concurrent use.
type ConfirmationPolicy struct {
	table           *RateTable
	defaultCurrency string

	state   ConfirmationState
	current FormAmount
	offer   *Offer
}

// NewConfirmationPolicy creates a policy in the Idle state.
func NewConfirmationPolicy(table *RateTable, defaultCurrency string) (*ConfirmationPolicy, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: rate table is required", apperrors.ErrValidation)
	}
	defaultCurrency = normalizeCode(defaultCurrency)
	if len(defaultCurrency) != 3 {
		return nil, fmt.Errorf("%w: default currency must be a 3 letter code, got %q", apperrors.ErrValidation, defaultCurrency)
	}
	return &ConfirmationPolicy{
		table:           table,
		defaultCurrency: defaultCurrency,
		state:           StateIdle,
	}, nil
}

// ResumeOffer rebuilds a policy that is waiting for an answer to offer.
func ResumeOffer(offer Offer) *ConfirmationPolicy {
	o := offer
	return &ConfirmationPolicy{
		defaultCurrency: o.DefaultCurrency,
		state:           StateOfferPresented,
		current:         FormAmount{Amount: o.Amount, CurrencyCode: o.HubCurrency},
		offer:           &o,
	}
}

// State returns the current state.
func (p *ConfirmationPolicy) State() ConfirmationState {
	return p.state
}

// Current returns the form value as it stands after the last event.
func (p *ConfirmationPolicy) Current() FormAmount {
	return p.current
}

// Offer returns the offer waiting for an answer, if any.
func (p *ConfirmationPolicy) Offer() (Offer, bool) {
	if p.state != StateOfferPresented || p.offer == nil {
		return Offer{}, false
	}
	return *p.offer, true
}

// OnCurrencyChanged handles a change of the currency field from previous to next while amount
// is entered. It returns the offer when one is presented, or nil.
//
// The rate lookup (hub -> default currency) runs synchronously, so the policy leaves
// RateLookupPending before returning. When the default currency is the hub itself the policy
// does nothing.
func (p *ConfirmationPolicy) OnCurrencyChanged(amount decimal.Decimal, previous, next string) (*Offer, error) {
	if p.state == StateOfferPresented || p.state == StateRateLookupPending {
		return nil, fmt.Errorf("%w: currency changed while in state %s", apperrors.ErrInvalidState, p.state)
	}
	if p.table == nil {
		return nil, fmt.Errorf("%w: resumed offer cannot handle new currency changes", apperrors.ErrInvalidState)
	}

	hub := p.table.Hub()
	previous, next = normalizeCode(previous), normalizeCode(next)

	p.state = StateIdle
	p.offer = nil
	p.current = FormAmount{Amount: amount, CurrencyCode: next}

	if !OfferApplies(hub, p.defaultCurrency, previous, next) {
		return nil, nil
	}

	p.state = StateRateLookupPending
	conv, err := Convert(amount, hub, p.defaultCurrency, p.table)
	if err != nil {
		p.state = StateIdle
		return nil, err
	}
	if !conv.OK() {
		p.state = StateNoRateAvailable
		return nil, nil
	}

	p.offer = &Offer{
		Amount:          amount,
		HubCurrency:     hub,
		DefaultCurrency: p.defaultCurrency,
		Rate:            conv.Legs[0].EffectiveRate(),
		CandidateAmount: conv.Result.Decimal,
		Path:            conv.Path,
	}
	p.state = StateOfferPresented
	offer := *p.offer
	return &offer, nil
}

// OfferApplies reports whether a change of the currency field from previous to next raises an
// offer: only a switch onto the hub from another currency does, and only when the default
// currency differs from the hub.
func OfferApplies(hub, defaultCurrency, previous, next string) bool {
	hub, defaultCurrency = normalizeCode(hub), normalizeCode(defaultCurrency)
	previous, next = normalizeCode(previous), normalizeCode(next)
	return next == hub && previous != hub && defaultCurrency != hub
}

// Accept confirms the presented offer.
func (p *ConfirmationPolicy) Accept() (FormAmount, error) {
	if p.state != StateOfferPresented || p.offer == nil {
		return p.current, fmt.Errorf("%w: cannot accept in state %s", apperrors.ErrInvalidState, p.state)
	}
	p.current = p.offer.Accepted()
	p.state = StateAccepted
	return p.current, nil
}

// Decline refuses the presented offer. The form keeps the hub currency and the entered amount.
func (p *ConfirmationPolicy) Decline() (FormAmount, error) {
	if p.state != StateOfferPresented || p.offer == nil {
		return p.current, fmt.Errorf("%w: cannot decline in state %s", apperrors.ErrInvalidState, p.state)
	}
	p.current = p.offer.Declined()
	p.state = StateDeclined
	return p.current, nil
}
