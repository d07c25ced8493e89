package dto

import (
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a new income or expense.
type CreateTransactionRequest struct {
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=INCOME EXPENSE"`
	ExpenseType     string                 `json:"expenseType" binding:"required_if=TransactionType EXPENSE,max=64"`
	Status          string                 `json:"status" binding:"required,max=64"`
	Category        string                 `json:"category" binding:"max=255"`
	Comments        string                 `json:"comments"`
	Amount          decimal.Decimal        `json:"amount" binding:"required,gt=0" swaggertype:"string" example:"100.00"`
	CurrencyCode    string                 `json:"currencyCode" binding:"required,currencycode"`
	// OriginalAmount/OriginalCurrency are set when the amount was rescaled by an accepted
	// conversion offer before saving. They default to Amount/CurrencyCode.
	OriginalAmount   *decimal.Decimal `json:"originalAmount,omitempty" swaggertype:"string"`
	OriginalCurrency *string          `json:"originalCurrency,omitempty" binding:"omitempty,currencycode"`
}

// UpdateTransactionRequest edits a transaction. Omitted fields are left unchanged.
type UpdateTransactionRequest struct {
	TransactionDate *time.Time              `json:"transactionDate"`
	TransactionType *domain.TransactionType `json:"transactionType" binding:"omitempty,oneof=INCOME EXPENSE"`
	ExpenseType     *string                 `json:"expenseType" binding:"omitempty,max=64"`
	Status          *string                 `json:"status" binding:"omitempty,max=64"`
	Category        *string                 `json:"category" binding:"omitempty,max=255"`
	Comments        *string                 `json:"comments"`
	Amount          *decimal.Decimal        `json:"amount" swaggertype:"string"`
	CurrencyCode    *string                 `json:"currencyCode" binding:"omitempty,currencycode"`
}

// ListTransactionsParams are the query parameters of the transaction list endpoint.
type ListTransactionsParams struct {
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string    `form:"nextToken"`
}

// TransactionResponse is the API shape of a transaction.
// Null hub/reporting amounts mean the conversion was not possible.
type TransactionResponse struct {
	TransactionID    string                         `json:"transactionID"`
	TransactionDate  time.Time                      `json:"transactionDate"`
	TransactionType  domain.TransactionType         `json:"transactionType"`
	ExpenseType      string                         `json:"expenseType,omitempty"`
	Status           string                         `json:"status"`
	Category         string                         `json:"category,omitempty"`
	Comments         string                         `json:"comments,omitempty"`
	Amount           decimal.Decimal                `json:"amount" swaggertype:"string"`
	CurrencyCode     string                         `json:"currencyCode"`
	OriginalAmount   decimal.Decimal                `json:"originalAmount" swaggertype:"string"`
	OriginalCurrency string                         `json:"originalCurrency"`
	HubAmount        decimal.NullDecimal            `json:"hubAmount" swaggertype:"string"`
	ReportingAmounts map[string]decimal.NullDecimal `json:"reportingAmounts" swaggertype:"object"`
	CreatedAt        time.Time                      `json:"createdAt"`
	CreatedBy        string                         `json:"createdBy"`
	LastUpdatedAt    time.Time                      `json:"lastUpdatedAt"`
	LastUpdatedBy    string                         `json:"lastUpdatedBy"`
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:    t.TransactionID,
		TransactionDate:  t.TransactionDate,
		TransactionType:  t.TransactionType,
		ExpenseType:      t.ExpenseType,
		Status:           t.Status,
		Category:         t.Category,
		Comments:         t.Comments,
		Amount:           t.Amount,
		CurrencyCode:     t.CurrencyCode,
		OriginalAmount:   t.OriginalAmount,
		OriginalCurrency: t.OriginalCurrency,
		HubAmount:        t.HubAmount,
		ReportingAmounts: t.ReportingAmounts,
		CreatedAt:        t.CreatedAt,
		CreatedBy:        t.CreatedBy,
		LastUpdatedAt:    t.LastUpdatedAt,
		LastUpdatedBy:    t.LastUpdatedBy,
	}
}

func ToListTransactionsResponse(txs []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := ListTransactionsResponse{Transactions: make([]TransactionResponse, len(txs)), NextToken: nextToken}
	for i := range txs {
		res.Transactions[i] = ToTransactionResponse(&txs[i])
	}
	return res
}
