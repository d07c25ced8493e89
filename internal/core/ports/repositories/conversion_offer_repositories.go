package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
)

// ConversionOfferStore keeps pending conversion offers until they are answered or expire.
type ConversionOfferStore interface {
	// SaveOffer stores the offer for ttl.
	SaveOffer(ctx context.Context, offer domain.ConversionOffer, ttl time.Duration) error

	// TakeOffer atomically reads and removes an offer so it can be answered only once.
	// Returns apperrors.ErrNotFound when the offer is unknown or expired.
	TakeOffer(ctx context.Context, offerID string) (*domain.ConversionOffer, error)

	// GetOffer reads an offer without removing it.
	GetOffer(ctx context.Context, offerID string) (*domain.ConversionOffer, error)
}
