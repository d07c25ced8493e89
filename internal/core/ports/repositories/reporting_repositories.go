package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
)

// ReportingRepository defines operations for retrieving report data
type ReportingRepository interface {
	// ListTransactionsInRange retrieves every transaction dated within [from, to], oldest first.
	ListTransactionsInRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)
}
