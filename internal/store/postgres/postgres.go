package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellandwilde/landing-be/internal/models"
)

const uniqueViolation = "23505"

var (
	_ models.SubscriberStore = (*Store)(nil)
	_ models.UserStore       = (*Store)(nil)
)

// Store persists subscribers and admin users in Postgres.
type Store struct {
	db *pgxpool.Pool
}

// New wraps a connected pool whose schema is already migrated.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (models.Subscriber, error) {
	var sub models.Subscriber
	query := `SELECT id, email, subscribed_at FROM email_subscribers WHERE email = $1`

	err := s.db.QueryRow(ctx, query, email).Scan(&sub.ID, &sub.Email, &sub.SubscribedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Subscriber{}, models.ErrNotFound
		}
		return models.Subscriber{}, fmt.Errorf("failed to get subscriber by email: %w", err)
	}
	return sub, nil
}

func (s *Store) Insert(ctx context.Context, email string) (models.Subscriber, error) {
	query := `INSERT INTO email_subscribers (email, subscribed_at)
			  VALUES ($1, $2)
			  ON CONFLICT (email) DO NOTHING
			  RETURNING id, email, subscribed_at`

	var sub models.Subscriber
	err := s.db.QueryRow(ctx, query, email, time.Now().UTC()).Scan(&sub.ID, &sub.Email, &sub.SubscribedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err) {
			return models.Subscriber{}, models.ErrDuplicate
		}
		return models.Subscriber{}, fmt.Errorf("failed to insert subscriber: %w", err)
	}
	return sub, nil
}

func (s *Store) ListAll(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := s.db.Query(ctx, `SELECT id, email, subscribed_at FROM email_subscribers ORDER BY id`)
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

func (s *Store) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`

	err := s.db.QueryRow(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (s *Store) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	query := `INSERT INTO users (username, password_hash, created_at)
			  VALUES ($1, $2, $3)
			  RETURNING id, username, password_hash, created_at`

	var user models.User
	err := s.db.QueryRow(ctx, query, username, passwordHash, time.Now().UTC()).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, models.ErrDuplicate
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
