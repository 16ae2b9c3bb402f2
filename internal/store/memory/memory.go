// Package memory keeps subscribers and admin users in process memory.
// Records live as long as the Store value; nothing is persisted.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wellandwilde/landing-be/internal/models"
)

var (
	_ models.SubscriberStore = (*Store)(nil)
	_ models.UserStore       = (*Store)(nil)
)

// Store is a map-backed subscriber and user store keyed by sequential IDs.
type Store struct {
	mu          sync.RWMutex
	subscribers map[int64]models.Subscriber
	users       map[int64]models.User
	nextSubID   int64
	nextUserID  int64
	now         func() time.Time
}

// New creates an empty Store whose IDs start at 1.
func New() *Store {
	return &Store{
		subscribers: make(map[int64]models.Subscriber),
		users:       make(map[int64]models.User),
		nextSubID:   1,
		nextUserID:  1,
		now:         time.Now,
	}
}

// FindByEmail scans for an exact, case-sensitive email match.
func (s *Store) FindByEmail(_ context.Context, email string) (models.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sub, ok := s.findLocked(email); ok {
		return sub, nil
	}
	return models.Subscriber{}, models.ErrNotFound
}

// Insert checks for a duplicate and stores the new record under one lock.
func (s *Store) Insert(_ context.Context, email string) (models.Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findLocked(email); ok {
		return models.Subscriber{}, models.ErrDuplicate
	}

	sub := models.Subscriber{
		ID:           s.nextSubID,
		Email:        email,
		SubscribedAt: s.now().UTC(),
	}
	s.subscribers[sub.ID] = sub
	s.nextSubID++
	return sub, nil
}

// ListAll returns a copy of all subscribers sorted by ID.
func (s *Store) ListAll(_ context.Context) ([]models.Subscriber, error) {
	s.mu.RLock()
	subs := make([]models.Subscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.RUnlock()

	models.SortByID(subs)
	return subs, nil
}

func (s *Store) findLocked(email string) (models.Subscriber, bool) {
	for _, sub := range s.subscribers {
		if sub.Email == email {
			return sub, true
		}
	}
	return models.Subscriber{}, false
}

// GetByUsername returns the admin user with this username.
func (s *Store) GetByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

// Create stores a new admin user; usernames are unique.
func (s *Store) Create(_ context.Context, username, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return models.User{}, models.ErrDuplicate
		}
	}

	u := models.User{
		ID:           s.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}
	s.users[u.ID] = u
	s.nextUserID++
	return u, nil
}
