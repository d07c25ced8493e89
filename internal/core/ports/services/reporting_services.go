package services

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
)

// ReportingService defines operations for generating dashboard aggregates
type ReportingService interface {
	// DashboardSummary aggregates the transactions dated within [from, to].
	DashboardSummary(ctx context.Context, from, to time.Time) (*domain.DashboardSummary, error)
}

// ExportFormat is the file format of a transaction export.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	if f == ExportXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// ExportService writes transaction reports as files.
type ExportService interface {
	// ExportTransactions writes the transactions dated within [from, to] to w.
	ExportTransactions(ctx context.Context, from, to time.Time, format ExportFormat, w io.Writer) error
}
