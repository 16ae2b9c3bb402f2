package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/wellandwilde/landing-be/internal/models"
)

var (
	_ models.SubscriberStore = (*Store)(nil)
	_ models.UserStore       = (*Store)(nil)
)

// Store persists subscribers and admin users in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New wraps an open, migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// FindByEmail retrieves a subscriber by exact email.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.Subscriber, error) {
	var sub models.Subscriber
	row := s.db.QueryRowContext(ctx, "SELECT id, email, subscribed_at FROM email_subscribers WHERE email = ?", email)
	err := row.Scan(&sub.ID, &sub.Email, &sub.SubscribedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Subscriber{}, models.ErrNotFound
		}
		return models.Subscriber{}, fmt.Errorf("failed to get subscriber by email: %w", err)
	}
	return sub, nil
}

// Insert adds a subscriber unless the email already exists. The conflict
// clause makes the check and the write a single statement.
func (s *Store) Insert(ctx context.Context, email string) (models.Subscriber, error) {
	sub := models.Subscriber{
		Email:        email,
		SubscribedAt: s.now().UTC(),
	}

	row := s.db.QueryRowContext(ctx,
		"INSERT INTO email_subscribers (email, subscribed_at) VALUES (?, ?) ON CONFLICT(email) DO NOTHING RETURNING id",
		sub.Email, sub.SubscribedAt)
	err := row.Scan(&sub.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return models.Subscriber{}, models.ErrDuplicate
		}
		return models.Subscriber{}, fmt.Errorf("failed to insert subscriber: %w", err)
	}
	return sub, nil
}

// ListAll retrieves every subscriber ordered by ID.
func (s *Store) ListAll(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, email, subscribed_at FROM email_subscribers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	subs := []models.Subscriber{}
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.SubscribedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// GetByUsername retrieves an admin user, including the password hash.
func (s *Store) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx, "SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// Create inserts an admin user.
func (s *Store) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}

	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, models.ErrDuplicate
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("failed to read user id: %w", err)
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
