package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"travelapi/internal/auth"
	"travelapi/internal/cache"
	"travelapi/internal/model"
	"travelapi/internal/repository"
)

const revokedKeyPrefix = "revoked:"

// Credentials is the sign-up and sign-in payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

// Session is returned after a successful sign-up or sign-in.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// AuthService manages accounts and bearer sessions.
type AuthService interface {
	SignUp(ctx context.Context, in Credentials) (*Session, error)
	SignIn(ctx context.Context, in Credentials) (*Session, error)
	// SignOut revokes the token until it would have expired anyway.
	SignOut(ctx context.Context, token string) error
	// Authenticate verifies a bearer token and returns the user ID it belongs to.
	Authenticate(ctx context.Context, token string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	users    repository.UserRepository
	tokens   *auth.TokenManager
	sessions cache.Cache
	clock    Clock
}

// NewAuthService constructs an AuthService. sessions holds revoked token IDs.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, sessions cache.Cache, clock Clock) AuthService {
	return &authService{users: users, tokens: tokens, sessions: sessions, clock: clock}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *authService) SignUp(ctx context.Context, in Credentials) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := auth.CheckPassword(in.Password); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Today().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("email already registered: %w", ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(user)
}

func (s *authService) SignIn(ctx context.Context, in Credentials) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !auth.ComparePassword(user.PasswordHash, in.Password) {
		return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	}
	return s.issue(user)
}

func (s *authService) issue(user *model.User) (*Session, error) {
	token, claims, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	ttl := claims.ExpiresAt.Sub(s.clock.Today())
	if ttl <= 0 {
		return nil
	}
	if err := s.sessions.Set(ctx, revokedKeyPrefix+claims.ID, true, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("missing token: %w", ErrUnauthorized)
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	var revoked bool
	found, err := s.sessions.Get(ctx, revokedKeyPrefix+claims.ID, &revoked)
	if err != nil {
		return "", fmt.Errorf("check revocation: %w", err)
	}
	if found && revoked {
		return "", fmt.Errorf("session revoked: %w", ErrUnauthorized)
	}
	return claims.UserID(), nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}
