package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/biz_finance_tracker/internal/models"
	"github.com/SscSPs/biz_finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportingRepository reads transactions for dashboards and exports.
type ReportingRepository struct {
	BaseRepository
}

func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// ListTransactionsInRange returns every transaction dated within [from, to], oldest first.
func (r *ReportingRepository) ListTransactionsInRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE transaction_date BETWEEN $1 AND $2
		ORDER BY transaction_date, transaction_id;`, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for report", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transactions for report", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}
