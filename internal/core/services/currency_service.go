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

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err == nil {
		return nil, fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		IsActive:     isActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", code))
	return &currency, nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRequest, userID string) (*domain.Currency, error) {
	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, err
	}

	if req.Symbol != nil {
		currency.Symbol = *req.Symbol
	}
	if req.Name != nil {
		currency.Name = *req.Name
	}
	if req.IsActive != nil {
		if !*req.IsActive && currency.IsDefault {
			return nil, fmt.Errorf("%w: the default currency %s cannot be deactivated", apperrors.ErrValidation, currency.CurrencyCode)
		}
		currency.IsActive = *req.IsActive
	}
	currency.LastUpdatedAt = time.Now().UTC()
	currency.LastUpdatedBy = userID

	if err := s.currencyRepo.SaveCurrency(ctx, *currency); err != nil {
		s.LogError(ctx, err, "Failed to update currency", slog.String("currency_code", currency.CurrencyCode))
		return nil, fmt.Errorf("failed to update currency: %w", err)
	}
	return currency, nil
}

func (s *currencyService) SetDefaultCurrency(ctx context.Context, currencyCode string, userID string) (*domain.Currency, error) {
	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, err
	}
	if !currency.IsActive {
		return nil, fmt.Errorf("%w: currency %s is not active", apperrors.ErrValidation, currency.CurrencyCode)
	}

	if err := s.currencyRepo.SetDefaultCurrency(ctx, currency.CurrencyCode, userID); err != nil {
		s.LogError(ctx, err, "Failed to set default currency", slog.String("currency_code", currency.CurrencyCode))
		return nil, fmt.Errorf("failed to set default currency: %w", err)
	}

	s.LogInfo(ctx, "Default currency changed", slog.String("currency_code", currency.CurrencyCode))
	currency.IsDefault = true
	return currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find currency", slog.String("currency_code", code))
		}
		return nil, err
	}
	return currency, nil
}

func (s *currencyService) GetDefaultCurrency(ctx context.Context) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindDefaultCurrency(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find default currency")
		}
		return nil, err
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) ValidateActiveCurrency(ctx context.Context, currencyCode string) error {
	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown currency code %q", apperrors.ErrValidation, currencyCode)
		}
		return err
	}
	if !currency.IsActive {
		return fmt.Errorf("%w: currency %s is not active", apperrors.ErrValidation, currency.CurrencyCode)
	}
	return nil
}
