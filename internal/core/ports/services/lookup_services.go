package services

import (
	"context"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
)

// LookupSvcFacade manages expense types and statuses.
type LookupSvcFacade interface {
	ListLookupValues(ctx context.Context, kind domain.LookupKind, activeOnly bool) ([]domain.LookupValue, error)

	CreateLookupValue(ctx context.Context, kind domain.LookupKind, req dto.CreateLookupValueRequest, userID string) (*domain.LookupValue, error)

	UpdateLookupValue(ctx context.Context, kind domain.LookupKind, code string, req dto.UpdateLookupValueRequest, userID string) (*domain.LookupValue, error)

	// ValidateActiveLookup returns ErrValidation unless code is an active value of kind.
	ValidateActiveLookup(ctx context.Context, kind domain.LookupKind, code string) error
}
