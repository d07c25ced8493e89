package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyTotals holds the aggregated income and expense for one reporting currency.
// Transactions whose cached amount for the currency is null are not summed; they are
// counted in ExcludedCount instead.
type CurrencyTotals struct {
	CurrencyCode  string          `json:"currencyCode"`
	Income        decimal.Decimal `json:"income"`
	Expense       decimal.Decimal `json:"expense"`
	Net           decimal.Decimal `json:"net"`
	IncludedCount int             `json:"includedCount"`
	ExcludedCount int             `json:"excludedCount"`
}

// ExpenseTypeTotal represents the hub-currency expense total for a single expense type.
type ExpenseTypeTotal struct {
	ExpenseType   string          `json:"expenseType"`
	HubAmount     decimal.Decimal `json:"hubAmount"`
	Count         int             `json:"count"`
	ExcludedCount int             `json:"excludedCount"`
}

// DashboardSummary is the currency-agnostic aggregate shown on the dashboard.
type DashboardSummary struct {
	From             time.Time          `json:"from"`
	To               time.Time          `json:"to"`
	HubCurrency      string             `json:"hubCurrency"`
	TransactionCount int                `json:"transactionCount"`
	Totals           []CurrencyTotals   `json:"totals"`
	ExpenseByType    []ExpenseTypeTotal `json:"expenseByType"`
}
