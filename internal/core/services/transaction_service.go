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
	"github.com/SscSPs/biz_finance_tracker/internal/metrics"
	"github.com/SscSPs/biz_finance_tracker/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultTransactionPageSize = 20
	maxTransactionPageSize     = 100
)

type transactionService struct {
	BaseService
	txRepo      portsrepo.TransactionRepositoryFacade
	currencySvc portssvc.CurrencyReaderSvc
	lookupSvc   portssvc.LookupSvcFacade
	rates       portssvc.ExchangeRateReaderSvc
	reporting   []string
	metrics     *metrics.Metrics
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionMetrics records normalizations done on save.
func WithTransactionMetrics(m *metrics.Metrics) TransactionServiceOption {
	return func(s *transactionService) {
		s.metrics = m
	}
}

// NewTransactionService creates a transaction service. reporting is the full list of reporting
// currencies cached on each transaction, hub included.
func NewTransactionService(
	txRepo portsrepo.TransactionRepositoryFacade,
	currencySvc portssvc.CurrencyReaderSvc,
	lookupSvc portssvc.LookupSvcFacade,
	rates portssvc.ExchangeRateReaderSvc,
	reporting []string,
	options ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txRepo:      txRepo,
		currencySvc: currencySvc,
		lookupSvc:   lookupSvc,
		rates:       rates,
		reporting:   reporting,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	now := time.Now().UTC()
	tx := domain.Transaction{
		TransactionID:    uuid.NewString(),
		TransactionDate:  req.TransactionDate,
		TransactionType:  req.TransactionType,
		ExpenseType:      lookupCode(req.ExpenseType),
		Status:           lookupCode(req.Status),
		Category:         strings.TrimSpace(req.Category),
		Comments:         req.Comments,
		Amount:           req.Amount,
		CurrencyCode:     strings.ToUpper(strings.TrimSpace(req.CurrencyCode)),
		OriginalAmount:   req.Amount,
		OriginalCurrency: strings.ToUpper(strings.TrimSpace(req.CurrencyCode)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.OriginalAmount != nil {
		tx.OriginalAmount = *req.OriginalAmount
	}
	if req.OriginalCurrency != nil {
		tx.OriginalCurrency = strings.ToUpper(strings.TrimSpace(*req.OriginalCurrency))
	}

	if err := s.validate(ctx, tx, true); err != nil {
		return nil, err
	}
	if tx.OriginalCurrency != tx.CurrencyCode {
		if err := s.currencySvc.ValidateActiveCurrency(ctx, tx.OriginalCurrency); err != nil {
			return nil, fmt.Errorf("original currency: %w", err)
		}
	}
	if err := s.applyNormalization(ctx, &tx); err != nil {
		return nil, err
	}

	if err := s.txRepo.SaveTransaction(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", tx.TransactionID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", tx.TransactionID),
		slog.String("currency", tx.CurrencyCode),
		slog.Bool("hub_amount_known", tx.HubAmount.Valid))
	return &tx, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	existing, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	tx := *existing

	if req.TransactionDate != nil {
		tx.TransactionDate = *req.TransactionDate
	}
	if req.TransactionType != nil {
		tx.TransactionType = *req.TransactionType
	}
	if req.ExpenseType != nil {
		tx.ExpenseType = lookupCode(*req.ExpenseType)
	}
	if req.Status != nil {
		tx.Status = lookupCode(*req.Status)
	}
	if req.Category != nil {
		tx.Category = strings.TrimSpace(*req.Category)
	}
	if req.Comments != nil {
		tx.Comments = *req.Comments
	}
	if req.Amount != nil {
		tx.Amount = *req.Amount
	}
	if req.CurrencyCode != nil {
		tx.CurrencyCode = strings.ToUpper(strings.TrimSpace(*req.CurrencyCode))
	}

	currencyChanged := tx.CurrencyCode != existing.CurrencyCode
	amountChanged := !tx.Amount.Equal(existing.Amount)
	lookupsChanged := tx.Status != existing.Status || tx.ExpenseType != existing.ExpenseType || tx.TransactionType != existing.TransactionType

	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if currencyChanged || lookupsChanged {
		if err := s.validate(ctx, tx, currencyChanged); err != nil {
			return nil, err
		}
	}
	if currencyChanged || amountChanged {
		if err := s.applyNormalization(ctx, &tx); err != nil {
			return nil, err
		}
	}
	tx.LastUpdatedAt = time.Now().UTC()
	tx.LastUpdatedBy = userID

	if err := s.txRepo.UpdateTransaction(ctx, tx); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.Bool("renormalized", currencyChanged || amountChanged))
	return &tx, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	tx, err := s.txRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		return nil, nil, fmt.Errorf("%w: 'to' must not be before 'from'", apperrors.ErrValidation)
	}
	var to *time.Time
	if params.To != nil {
		end := endOfDay(*params.To)
		to = &end
	}
	repoParams := portsrepo.ListTransactionsParams{
		From:      params.From,
		To:        to,
		Limit:     pagination.ClampLimit(params.Limit, defaultTransactionPageSize, maxTransactionPageSize),
		NextToken: params.NextToken,
	}
	txs, nextToken, err := s.txRepo.ListTransactions(ctx, repoParams)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list transactions")
		}
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return txs, nextToken, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	if err := s.txRepo.DeleteTransaction(ctx, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID), slog.String("deleted_by", userID))
	return nil
}

// validate checks the transaction against the active currencies and lookup values.
func (s *transactionService) validate(ctx context.Context, tx domain.Transaction, checkCurrency bool) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if checkCurrency {
		if err := s.currencySvc.ValidateActiveCurrency(ctx, tx.CurrencyCode); err != nil {
			return err
		}
	}
	if err := s.lookupSvc.ValidateActiveLookup(ctx, domain.LookupStatus, tx.Status); err != nil {
		return err
	}
	if tx.ExpenseType != "" {
		if err := s.lookupSvc.ValidateActiveLookup(ctx, domain.LookupExpenseType, tx.ExpenseType); err != nil {
			return err
		}
	}
	return nil
}

// applyNormalization recomputes the cached hub and reporting amounts from Amount/CurrencyCode.
// A missing rate path leaves a null figure and does not fail the save.
func (s *transactionService) applyNormalization(ctx context.Context, tx *domain.Transaction) error {
	table, err := s.rates.LoadRateTable(ctx)
	if err != nil {
		return err
	}
	n, err := normalize(ctx, &s.BaseService, s.metrics, tx.Amount, tx.CurrencyCode, table, s.reporting)
	if err != nil {
		return err
	}
	tx.HubAmount = n.HubAmount
	tx.ReportingAmounts = n.ReportingAmounts
	return nil
}
