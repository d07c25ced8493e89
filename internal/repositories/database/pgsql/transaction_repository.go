package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/biz_finance_tracker/internal/models"
	"github.com/SscSPs/biz_finance_tracker/internal/utils/mapping"
	"github.com/SscSPs/biz_finance_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `
	transaction_id, transaction_date, transaction_type, expense_type, status, category, comments,
	amount, currency_code, original_amount, original_currency, hub_amount, reporting_amounts,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxTransactionRepository stores income and expense transactions.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.TransactionDate, &m.TransactionType, &m.ExpenseType, &m.Status, &m.Category, &m.Comments,
		&m.Amount, &m.CurrencyCode, &m.OriginalAmount, &m.OriginalCurrency, &m.HubAmount, &m.ReportingAmounts,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) error {
	m := mapping.ToModelTransaction(transaction)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`,
		m.TransactionID, m.TransactionDate, m.TransactionType, m.ExpenseType, m.Status, m.Category, m.Comments,
		m.Amount, m.CurrencyCode, m.OriginalAmount, m.OriginalCurrency, m.HubAmount, m.ReportingAmounts,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgErrUniqueViolation:
			return apperrors.NewAppError(409, "transaction "+m.TransactionID+" already exists", apperrors.ErrDuplicate)
		case pgErrForeignKeyViolation:
			return apperrors.NewAppError(400, "transaction references an unknown currency or lookup value", apperrors.ErrValidation)
		}
		return apperrors.NewAppError(500, "failed to save transaction", err)
	}
	return nil
}

// UpdateTransaction writes everything except the original amount/currency and creation audit columns.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	m := mapping.ToModelTransaction(transaction)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE transactions SET
			transaction_date = $2, transaction_type = $3, expense_type = $4, status = $5, category = $6, comments = $7,
			amount = $8, currency_code = $9, hub_amount = $10, reporting_amounts = $11,
			last_updated_at = $12, last_updated_by = $13
		WHERE transaction_id = $1;`,
		m.TransactionID, m.TransactionDate, m.TransactionType, m.ExpenseType, m.Status, m.Category, m.Comments,
		m.Amount, m.CurrencyCode, m.HubAmount, m.ReportingAmounts,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgErrForeignKeyViolation {
			return apperrors.NewAppError(400, "transaction references an unknown currency or lookup value", apperrors.ErrValidation)
		}
		return apperrors.NewAppError(500, "failed to update transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + m.TransactionID + " not found")
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.Pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1;`, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction", err)
	}
	tx := mapping.ToDomainTransaction(m)
	return &tx, nil
}

// ListTransactions uses keyset pagination on (transaction_date, transaction_id), newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, params portsrepo.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE TRUE`
	args := []interface{}{}

	if params.From != nil {
		args = append(args, *params.From)
		query += " AND transaction_date >= $" + strconv.Itoa(len(args))
	}
	if params.To != nil {
		args = append(args, *params.To)
		query += " AND transaction_date <= $" + strconv.Itoa(len(args))
	}
	if params.NextToken != nil && *params.NextToken != "" {
		cursor, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, cursor.Date, cursor.ID)
		query += " AND (transaction_date, transaction_id) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}
	args = append(args, fetchLimit)
	query += " ORDER BY transaction_date DESC, transaction_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan transactions", err)
	}

	var nextToken *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.TransactionDate, ID: last.TransactionID})
		nextToken = &token
		ms = ms[:limit]
	}

	return mapping.ToDomainTransactionSlice(ms), nextToken, nil
}
