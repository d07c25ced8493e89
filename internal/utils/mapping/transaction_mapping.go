package mapping

import (
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/models"
	"github.com/shopspring/decimal"
)

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	reporting := make(map[string]decimal.NullDecimal, len(d.ReportingAmounts))
	for k, v := range d.ReportingAmounts {
		reporting[k] = v
	}
	return models.Transaction{
		TransactionID:    d.TransactionID,
		TransactionDate:  d.TransactionDate,
		TransactionType:  string(d.TransactionType),
		ExpenseType:      nullableString(d.ExpenseType),
		Status:           d.Status,
		Category:         nullableString(d.Category),
		Comments:         nullableString(d.Comments),
		Amount:           d.Amount,
		CurrencyCode:     d.CurrencyCode,
		OriginalAmount:   d.OriginalAmount,
		OriginalCurrency: d.OriginalCurrency,
		HubAmount:        d.HubAmount,
		ReportingAmounts: reporting,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	reporting := make(map[string]decimal.NullDecimal, len(m.ReportingAmounts))
	for k, v := range m.ReportingAmounts {
		reporting[k] = v
	}
	return domain.Transaction{
		TransactionID:    m.TransactionID,
		TransactionDate:  m.TransactionDate,
		TransactionType:  domain.TransactionType(m.TransactionType),
		ExpenseType:      stringValue(m.ExpenseType),
		Status:           m.Status,
		Category:         stringValue(m.Category),
		Comments:         stringValue(m.Comments),
		Amount:           m.Amount,
		CurrencyCode:     m.CurrencyCode,
		OriginalAmount:   m.OriginalAmount,
		OriginalCurrency: m.OriginalCurrency,
		HubAmount:        m.HubAmount,
		ReportingAmounts: reporting,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts model transactions to domain transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
