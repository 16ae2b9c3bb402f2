package models

import (
	"context"
	"sort"
	"time"
)

// SubscriberStore owns all subscriber records.
type SubscriberStore interface {
	// FindByEmail returns ErrNotFound when no record has exactly this email.
	FindByEmail(ctx context.Context, email string) (Subscriber, error)
	// Insert stores a new subscriber, or returns ErrDuplicate if the email is taken.
	Insert(ctx context.Context, email string) (Subscriber, error)
	// ListAll returns every subscriber ordered by ID.
	ListAll(ctx context.Context) ([]Subscriber, error)
}

// Subscriber represents a recorded newsletter signup.
type Subscriber struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// SortByID orders subscribers by ascending ID in place.
func SortByID(subs []Subscriber) {
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })
}
