package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/wellandwilde/landing-be/internal/models"
)

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

// ValidEmail accepts any non-empty value containing "@". The check is
// intentionally permissive; it is not an RFC 5322 grammar.
func ValidEmail(email string) bool {
	return email != "" && strings.Contains(email, "@")
}

// Enqueuer hands notification work to a background queue.
type Enqueuer interface {
	Enqueue(email string) bool
}

// SubscriptionServiceProvider defines the interface for newsletter intake.
type SubscriptionServiceProvider interface {
	Subscribe(ctx context.Context, email string) (models.Subscriber, error)
	ListSubscribers(ctx context.Context) ([]models.Subscriber, error)
}

// SubscriptionService validates, deduplicates and stores subscribers, then
// schedules their notifications.
type SubscriptionService struct {
	store    models.SubscriberStore
	notifier Enqueuer
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(store models.SubscriberStore, notifier Enqueuer) *SubscriptionService {
	return &SubscriptionService{store: store, notifier: notifier}
}

// Subscribe runs the intake flow. It returns ErrInvalidEmail or
// ErrAlreadySubscribed for caller mistakes; any other error is unexpected.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string) (models.Subscriber, error) {
	if !ValidEmail(email) {
		return models.Subscriber{}, ErrInvalidEmail
	}

	_, err := s.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return models.Subscriber{}, ErrAlreadySubscribed
	case !errors.Is(err, models.ErrNotFound):
		return models.Subscriber{}, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	sub, err := s.store.Insert(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return models.Subscriber{}, ErrAlreadySubscribed
		}
		return models.Subscriber{}, fmt.Errorf("failed to create subscriber: %w", err)
	}

	log.Info().Int64("subscriber_id", sub.ID).Str("email", sub.Email).Msg("New subscriber")

	if s.notifier != nil {
		s.notifier.Enqueue(sub.Email)
	}
	return sub, nil
}

// ListSubscribers returns all subscribers ordered by ID.
func (s *SubscriptionService) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	subs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}
