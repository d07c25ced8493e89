package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/biz_finance_tracker/internal/models"
	"github.com/SscSPs/biz_finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const lookupColumns = `kind, code, name, is_active, created_at, created_by, last_updated_at, last_updated_by`

// PgxLookupRepository stores expense types and statuses in the lookup_values table.
type PgxLookupRepository struct {
	BaseRepository
}

func newPgxLookupRepository(pool *pgxpool.Pool) portsrepo.LookupRepositoryFacade {
	return &PgxLookupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LookupRepositoryFacade = (*PgxLookupRepository)(nil)

func scanLookupValue(row pgx.Row) (models.LookupValue, error) {
	var m models.LookupValue
	err := row.Scan(&m.Kind, &m.Code, &m.Name, &m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxLookupRepository) SaveLookupValue(ctx context.Context, value domain.LookupValue) error {
	m := mapping.ToModelLookupValue(value)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO lookup_values (`+lookupColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.Kind, m.Code, m.Name, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgErrUniqueViolation {
			return fmt.Errorf("%w: %s %s already exists", apperrors.ErrDuplicate, m.Kind, m.Code)
		}
		return apperrors.NewAppError(500, "failed to save lookup value", err)
	}
	return nil
}

func (r *PgxLookupRepository) UpdateLookupValue(ctx context.Context, value domain.LookupValue) error {
	m := mapping.ToModelLookupValue(value)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE lookup_values SET name = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE kind = $1 AND code = $2;`,
		m.Kind, m.Code, m.Name, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update lookup value", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", m.Kind, m.Code))
	}
	return nil
}

func (r *PgxLookupRepository) FindLookupValue(ctx context.Context, kind domain.LookupKind, code string) (*domain.LookupValue, error) {
	m, err := scanLookupValue(r.Pool.QueryRow(ctx,
		`SELECT `+lookupColumns+` FROM lookup_values WHERE kind = $1 AND code = $2;`, string(kind), code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", kind, code))
		}
		return nil, apperrors.NewAppError(500, "failed to find lookup value", err)
	}
	v := mapping.ToDomainLookupValue(m)
	return &v, nil
}

func (r *PgxLookupRepository) ListLookupValues(ctx context.Context, kind domain.LookupKind, activeOnly bool) ([]domain.LookupValue, error) {
	query := `SELECT ` + lookupColumns + ` FROM lookup_values WHERE kind = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list lookup values", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LookupValue, error) {
		return scanLookupValue(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan lookup values", err)
	}

	values := make([]domain.LookupValue, len(ms))
	for i, m := range ms {
		values[i] = mapping.ToDomainLookupValue(m)
	}
	return values, nil
}
