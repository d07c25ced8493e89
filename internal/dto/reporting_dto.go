package dto

import (
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
)

// DashboardParams selects the period of the dashboard summary (inclusive, by transaction date).
type DashboardParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// ExportParams selects the period and format of a transaction export.
type ExportParams struct {
	From   time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To     time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
	Format string    `form:"format" binding:"omitempty,oneof=csv xlsx"`
}

// DashboardSummaryResponse is the dashboard aggregate. Totals only include transactions whose
// cached amount for that currency is known; the rest are counted in excludedCount.
type DashboardSummaryResponse struct {
	From             string                    `json:"from"`
	To               string                    `json:"to"`
	HubCurrency      string                    `json:"hubCurrency"`
	TransactionCount int                       `json:"transactionCount"`
	Totals           []domain.CurrencyTotals   `json:"totals"`
	ExpenseByType    []domain.ExpenseTypeTotal `json:"expenseByType"`
}

func ToDashboardSummaryResponse(s *domain.DashboardSummary) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		From:             s.From.Format("2006-01-02"),
		To:               s.To.Format("2006-01-02"),
		HubCurrency:      s.HubCurrency,
		TransactionCount: s.TransactionCount,
		Totals:           s.Totals,
		ExpenseByType:    s.ExpenseByType,
	}
}
