package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/newsdesk/newsdesk/internal/auth"
	"github.com/newsdesk/newsdesk/internal/metrics"
	"github.com/newsdesk/newsdesk/internal/model"
	"github.com/newsdesk/newsdesk/internal/repository"
)

// Account service errors.
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrPasswordTooShort   = auth.ErrPasswordTooShort
	// ErrEmailTaken maps to 400, not 409 - existing clients depend on it.
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStore is the persistence surface the account flow needs.
// *repository.Repository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// SessionStore issues and revokes opaque session tokens.
// *cache.Cache satisfies it.
type SessionStore interface {
	SetSession(ctx context.Context, token string, identity *model.Identity, ttl time.Duration) error
	DeleteSession(ctx context.Context, token string) error
}

// AccountService handles signup, login, and logout.
type AccountService struct {
	users      UserStore
	sessions   SessionStore
	sessionTTL time.Duration
	metrics    metrics.Recorder
}

// NewAccountService creates a new AccountService.
func NewAccountService(users UserStore, sessions SessionStore, sessionTTL time.Duration, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		metrics:    recorder,
	}
}

// SignupInput defines input for creating an account.
type SignupInput struct {
	Name     string // optional; defaults to the local part of the email
	Email    string
	Password string
}

// Signup creates a new account with a bcrypt-hashed credential.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*model.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	name := input.Name
	if name == "" {
		name = model.DefaultName(input.Email)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncSignup()
	return user, nil
}

// Login verifies credentials and mints a session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLogin("failed")
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.metrics.IncLogin("failed")
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return "", nil, fmt.Errorf("mint session token: %w", err)
	}

	identity := &model.Identity{UserID: user.ID, Email: user.Email}
	if err := s.sessions.SetSession(ctx, token, identity, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	s.metrics.IncLogin("success")
	return token, user, nil
}

// Logout revokes a session token. Revoking an unknown token is a no-op.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
