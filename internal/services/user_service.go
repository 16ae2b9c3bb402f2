package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/wellandwilde/landing-be/internal/models"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserServiceProvider defines the interface for admin account services.
type UserServiceProvider interface {
	CreateUser(ctx context.Context, username, password string) (models.User, error)
	EnsureUser(ctx context.Context, username, password string) (models.User, error)
	AuthenticateUser(ctx context.Context, username, password string) (models.User, error)
}

// UserService provides business logic for admin accounts.
type UserService struct {
	store models.UserStore
	cost  int
}

// NewUserService creates a new UserService.
func NewUserService(store models.UserStore) *UserService {
	return &UserService{store: store, cost: bcrypt.DefaultCost}
}

// CreateUser creates a new user, hashing their password.
func (s *UserService) CreateUser(ctx context.Context, username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, errors.New("username and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.Create(ctx, username, string(hashedPassword))
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// EnsureUser creates the user unless one with this username already exists.
// An existing user's password is left untouched.
func (s *UserService) EnsureUser(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err == nil {
		user.PasswordHash = ""
		return user, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	return s.CreateUser(ctx, username, password)
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("authentication failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
