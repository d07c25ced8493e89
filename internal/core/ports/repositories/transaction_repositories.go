package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
)

// ListTransactionsParams filters a page of transactions.
// Results are ordered by transaction date then ID, newest first.
type ListTransactionsParams struct {
	From      *time.Time
	To        *time.Time
	Limit     int
	NextToken *string
}

// TransactionReader defines read operations for transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves one page of transactions and the token for the next page, if any.
	ListTransactions(ctx context.Context, params ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transactions
type TransactionWriter interface {
	// SaveTransaction inserts a new transaction.
	SaveTransaction(ctx context.Context, transaction domain.Transaction) error

	// UpdateTransaction replaces the editable and derived fields of a transaction.
	// The original amount and currency columns are never written by this call.
	UpdateTransaction(ctx context.Context, transaction domain.Transaction) error

	// DeleteTransaction removes a transaction by ID.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
