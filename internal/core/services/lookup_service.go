package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
)

type lookupService struct {
	BaseService
	lookupRepo portsrepo.LookupRepositoryFacade
}

// NewLookupService creates a service for expense types and statuses.
func NewLookupService(lookupRepo portsrepo.LookupRepositoryFacade) portssvc.LookupSvcFacade {
	return &lookupService{lookupRepo: lookupRepo}
}

var _ portssvc.LookupSvcFacade = (*lookupService)(nil)

func lookupCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *lookupService) ListLookupValues(ctx context.Context, kind domain.LookupKind, activeOnly bool) ([]domain.LookupValue, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown lookup kind %q", apperrors.ErrValidation, kind)
	}
	values, err := s.lookupRepo.ListLookupValues(ctx, kind, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list lookup values", slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to list %s values: %w", kind, err)
	}
	if values == nil {
		return []domain.LookupValue{}, nil
	}
	return values, nil
}

func (s *lookupService) CreateLookupValue(ctx context.Context, kind domain.LookupKind, req dto.CreateLookupValueRequest, userID string) (*domain.LookupValue, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown lookup kind %q", apperrors.ErrValidation, kind)
	}
	code := lookupCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", apperrors.ErrValidation)
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now().UTC()
	value := domain.LookupValue{
		Kind:     kind,
		Code:     code,
		Name:     req.Name,
		IsActive: isActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.lookupRepo.SaveLookupValue(ctx, value); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save lookup value", slog.String("kind", string(kind)), slog.String("code", code))
		}
		return nil, fmt.Errorf("failed to create %s value: %w", kind, err)
	}
	s.LogInfo(ctx, "Lookup value created", slog.String("kind", string(kind)), slog.String("code", code))
	return &value, nil
}

func (s *lookupService) UpdateLookupValue(ctx context.Context, kind domain.LookupKind, code string, req dto.UpdateLookupValueRequest, userID string) (*domain.LookupValue, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown lookup kind %q", apperrors.ErrValidation, kind)
	}
	value, err := s.lookupRepo.FindLookupValue(ctx, kind, lookupCode(code))
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		value.Name = *req.Name
	}
	if req.IsActive != nil {
		value.IsActive = *req.IsActive
	}
	value.LastUpdatedAt = time.Now().UTC()
	value.LastUpdatedBy = userID

	if err := s.lookupRepo.UpdateLookupValue(ctx, *value); err != nil {
		s.LogError(ctx, err, "Failed to update lookup value", slog.String("kind", string(kind)), slog.String("code", value.Code))
		return nil, fmt.Errorf("failed to update %s value: %w", kind, err)
	}
	return value, nil
}

func (s *lookupService) ValidateActiveLookup(ctx context.Context, kind domain.LookupKind, code string) error {
	value, err := s.lookupRepo.FindLookupValue(ctx, kind, lookupCode(code))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown %s %q", apperrors.ErrValidation, strings.ToLower(string(kind)), code)
		}
		return err
	}
	if !value.IsActive {
		return fmt.Errorf("%w: %s %s is not active", apperrors.ErrValidation, strings.ToLower(string(kind)), value.Code)
	}
	return nil
}
