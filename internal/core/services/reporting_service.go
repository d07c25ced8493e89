package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	hub           string
	reporting     []string
}

// NewReportingService creates a new reporting service. reporting is the full list of reporting
// currencies, hub first.
func NewReportingService(repo portsrepo.ReportingRepository, hub string, reporting []string) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
		hub:           hub,
		reporting:     reporting,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// endOfDay returns the last instant of t's calendar day, so date-only upper bounds are inclusive.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: both 'from' and 'to' are required", apperrors.ErrValidation)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: 'to' must not be before 'from'", apperrors.ErrValidation)
	}
	return nil
}

// DashboardSummary totals income and expense per reporting currency from the cached amounts.
// A transaction with a null amount for a currency is left out of that currency's totals and
// counted as excluded.
func (s *reportingService) DashboardSummary(ctx context.Context, from, to time.Time) (*domain.DashboardSummary, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	txs, err := s.reportingRepo.ListTransactionsInRange(ctx, from, endOfDay(to))
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve transactions for dashboard",
			slog.String("from", from.Format(time.DateOnly)),
			slog.String("to", to.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve dashboard data: %w", err)
	}

	summary := &domain.DashboardSummary{
		From:             from,
		To:               to,
		HubCurrency:      s.hub,
		TransactionCount: len(txs),
		Totals:           make([]domain.CurrencyTotals, 0, len(s.reporting)),
		ExpenseByType:    expenseByType(txs),
	}

	for _, code := range s.reporting {
		totals := domain.CurrencyTotals{
			CurrencyCode: code,
			Income:       decimal.Zero,
			Expense:      decimal.Zero,
		}
		for _, tx := range txs {
			amount, ok := tx.ReportingAmount(code)
			if !ok {
				totals.ExcludedCount++
				continue
			}
			totals.IncludedCount++
			switch tx.TransactionType {
			case domain.Income:
				totals.Income = totals.Income.Add(amount)
			case domain.Expense:
				totals.Expense = totals.Expense.Add(amount)
			}
		}
		totals.Net = totals.Income.Sub(totals.Expense)
		summary.Totals = append(summary.Totals, totals)
	}

	s.LogInfo(ctx, "Dashboard summary generated",
		slog.String("from", from.Format(time.DateOnly)),
		slog.String("to", to.Format(time.DateOnly)),
		slog.Int("transaction_count", len(txs)))
	return summary, nil
}

// expenseByType groups expenses by type using the hub amount, sorted by type.
func expenseByType(txs []domain.Transaction) []domain.ExpenseTypeTotal {
	byType := make(map[string]*domain.ExpenseTypeTotal)
	for _, tx := range txs {
		if tx.TransactionType != domain.Expense {
			continue
		}
		total, ok := byType[tx.ExpenseType]
		if !ok {
			total = &domain.ExpenseTypeTotal{ExpenseType: tx.ExpenseType, HubAmount: decimal.Zero}
			byType[tx.ExpenseType] = total
		}
		if !tx.HubAmount.Valid {
			total.ExcludedCount++
			continue
		}
		total.Count++
		total.HubAmount = total.HubAmount.Add(tx.HubAmount.Decimal)
	}

	out := make([]domain.ExpenseTypeTotal, 0, len(byType))
	for _, t := range byType {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpenseType < out[j].ExpenseType })
	return out
}
