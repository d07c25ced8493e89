package fx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	"github.com/cenkalti/backoff/v4"
)

// RateSource supplies every stored exchange rate row, active or not.
type RateSource interface {
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// RateTableLoader reads a fresh RateTable snapshot from storage.
type RateTableLoader struct {
	source          RateSource
	hub             string
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          *slog.Logger
}

// LoaderOption customises a RateTableLoader.
type LoaderOption func(*RateTableLoader)

// WithMaxRetries sets how many times a failed read is retried before giving up.
func WithMaxRetries(n int) LoaderOption {
	return func(l *RateTableLoader) {
		if n >= 0 {
			l.maxRetries = uint64(n)
		}
	}
}

// WithBackoffIntervals sets the initial and maximum wait between retries.
func WithBackoffIntervals(initial, maxInterval time.Duration) LoaderOption {
	return func(l *RateTableLoader) {
		l.initialInterval = initial
		l.maxInterval = maxInterval
	}
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *RateTableLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewRateTableLoader creates a loader for the given hub currency.
func NewRateTableLoader(source RateSource, hub string, opts ...LoaderOption) *RateTableLoader {
	l := &RateTableLoader{
		source:          source,
		hub:             normalizeCode(hub),
		maxRetries:      2,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     500 * time.Millisecond,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Hub returns the hub currency the loader builds tables for.
func (l *RateTableLoader) Hub() string {
	return l.hub
}

// Load reads all rate rows and builds a snapshot.
// Storage failures are retried with exponential backoff and then returned wrapped in
// apperrors.ErrRateLookup. A partial or stale table is never returned.
func (l *RateTableLoader) Load(ctx context.Context) (*RateTable, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.initialInterval
	b.MaxInterval = l.maxInterval

	attempt := 0
	var rows []domain.ExchangeRate
	err := backoff.Retry(func() error {
		attempt++
		var err error
		rows, err = l.source.ListExchangeRates(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		l.logger.WarnContext(ctx, "failed to read exchange rates, retrying",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, l.maxRetries), ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: loading exchange rates after %d attempt(s): %v", apperrors.ErrRateLookup, attempt, err)
	}

	table, err := NewRateTable(l.hub, rows)
	if err != nil {
		return nil, fmt.Errorf("%w: stored exchange rates are invalid: %v", apperrors.ErrRateLookup, err)
	}
	return table, nil
}
