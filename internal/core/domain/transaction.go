package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is money coming in or going out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Transaction represents a single income or expense record.
//
// OriginalAmount/OriginalCurrency capture the value exactly as entered and are never overwritten.
// Amount/CurrencyCode hold the active value, which may differ after an accepted conversion offer.
// HubAmount and ReportingAmounts are denormalized caches recomputed whenever Amount or
// CurrencyCode change; an invalid NullDecimal means no rate path existed.
type Transaction struct {
	TransactionID    string                         `json:"transactionID"`
	TransactionDate  time.Time                      `json:"transactionDate"`
	TransactionType  TransactionType                `json:"transactionType"`
	ExpenseType      string                         `json:"expenseType,omitempty"`
	Status           string                         `json:"status"`
	Category         string                         `json:"category,omitempty"`
	Comments         string                         `json:"comments,omitempty"`
	Amount           decimal.Decimal                `json:"amount"`
	CurrencyCode     string                         `json:"currencyCode"`
	OriginalAmount   decimal.Decimal                `json:"originalAmount"`
	OriginalCurrency string                         `json:"originalCurrency"`
	HubAmount        decimal.NullDecimal            `json:"hubAmount"`
	ReportingAmounts map[string]decimal.NullDecimal `json:"reportingAmounts"`
	AuditFields
}

// IsConverted reports whether the active amount differs in currency from what the user entered.
func (t Transaction) IsConverted() bool {
	return t.OriginalCurrency != "" && t.OriginalCurrency != t.CurrencyCode
}

// ReportingAmount returns the cached amount for a reporting currency, if it was computed.
func (t Transaction) ReportingAmount(currencyCode string) (decimal.Decimal, bool) {
	v, ok := t.ReportingAmounts[currencyCode]
	if !ok || !v.Valid {
		return decimal.Zero, false
	}
	return v.Decimal, true
}

// Validate checks the amount-relevant invariants of a transaction.
func (t Transaction) Validate() error {
	if !t.TransactionType.IsValid() {
		return errors.New("transaction type must be INCOME or EXPENSE")
	}
	if !t.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	if t.CurrencyCode == "" {
		return errors.New("currency code is required")
	}
	if !t.OriginalAmount.IsPositive() {
		return errors.New("original amount must be positive")
	}
	if t.OriginalCurrency == "" {
		return errors.New("original currency is required")
	}
	if t.TransactionType == Expense && t.ExpenseType == "" {
		return errors.New("expense type is required for expense transactions")
	}
	return nil
}
