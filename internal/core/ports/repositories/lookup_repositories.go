package repositories

import (
	"context"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
)

// LookupReader defines read operations for lookup values
type LookupReader interface {
	// FindLookupValue retrieves one value of a kind by code.
	FindLookupValue(ctx context.Context, kind domain.LookupKind, code string) (*domain.LookupValue, error)

	// ListLookupValues retrieves the values of a kind ordered by code.
	ListLookupValues(ctx context.Context, kind domain.LookupKind, activeOnly bool) ([]domain.LookupValue, error)
}

// LookupWriter defines write operations for lookup values
type LookupWriter interface {
	// SaveLookupValue inserts a new value. Returns apperrors.ErrDuplicate if (kind, code) exists.
	SaveLookupValue(ctx context.Context, value domain.LookupValue) error

	// UpdateLookupValue updates the name and active flag of an existing value.
	UpdateLookupValue(ctx context.Context, value domain.LookupValue) error
}

// LookupRepositoryFacade combines all lookup repository interfaces
type LookupRepositoryFacade interface {
	LookupReader
	LookupWriter
}
