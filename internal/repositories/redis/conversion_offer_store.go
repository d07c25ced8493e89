// Package redis keeps short-lived conversion offers in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// ConversionOfferStore implements portsrepo.ConversionOfferStore using Redis string keys with a TTL.
type ConversionOfferStore struct {
	client *redis.Client
	prefix string
}

var _ portsrepo.ConversionOfferStore = (*ConversionOfferStore)(nil)

// NewConversionOfferStore creates a new ConversionOfferStore.
func NewConversionOfferStore(client *redis.Client) *ConversionOfferStore {
	return &ConversionOfferStore{
		client: client,
		prefix: "conversion_offer:",
	}
}

func (s *ConversionOfferStore) SaveOffer(ctx context.Context, offer domain.ConversionOffer, ttl time.Duration) error {
	payload, err := json.Marshal(offer)
	if err != nil {
		return fmt.Errorf("failed to encode conversion offer: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+offer.OfferID, payload, ttl).Err(); err != nil {
		return apperrors.NewAppError(503, "failed to store conversion offer", err)
	}
	return nil
}

func (s *ConversionOfferStore) TakeOffer(ctx context.Context, offerID string) (*domain.ConversionOffer, error) {
	payload, err := s.client.GetDel(ctx, s.prefix+offerID).Bytes()
	return s.decode(offerID, payload, err)
}

func (s *ConversionOfferStore) GetOffer(ctx context.Context, offerID string) (*domain.ConversionOffer, error) {
	payload, err := s.client.Get(ctx, s.prefix+offerID).Bytes()
	return s.decode(offerID, payload, err)
}

func (s *ConversionOfferStore) decode(offerID string, payload []byte, err error) (*domain.ConversionOffer, error) {
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NewNotFoundError("conversion offer " + offerID + " not found or expired")
	}
	if err != nil {
		return nil, apperrors.NewAppError(503, "failed to read conversion offer", err)
	}
	var offer domain.ConversionOffer
	if err := json.Unmarshal(payload, &offer); err != nil {
		return nil, fmt.Errorf("failed to decode conversion offer %s: %w", offerID, err)
	}
	return &offer, nil
}
