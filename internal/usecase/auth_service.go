package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"cezatakip-service/internal/domain/entity"
	"cezatakip-service/internal/domain/repository"
	"cezatakip-service/pkg/logger"
	"cezatakip-service/pkg/ratelimit"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for unknown users, wrong passwords
	// and disabled accounts alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTooManyAttempts is returned when the caller exhausted the login
	// attempt window.
	ErrTooManyAttempts = errors.New("too many login attempts")
	// ErrUnauthorized is returned for missing, unknown or expired tokens.
	ErrUnauthorized = errors.New("unauthorized")
)

// AuthService issues and validates bearer-token sessions.
type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	limiter    *ratelimit.Limiter
	logger     logger.Logger
	sessionTTL time.Duration
}

// NewAuthService creates a new auth service. The limiter is injected and
// keyed by caller identity, one attempt window per username+address.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, limiter *ratelimit.Limiter, log logger.Logger, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		limiter:    limiter,
		logger:     log,
		sessionTTL: sessionTTL,
	}
}

// Login verifies credentials and creates a session. clientKey identifies
// the caller for rate limiting.
func (s *AuthService) Login(ctx context.Context, username, password, clientKey string) (*entity.Session, error) {
	if !s.limiter.Allow(clientKey) {
		s.logger.Warn("Login rate limited", "client", clientKey)
		return nil, ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil || user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(s.sessionTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.limiter.Reset(clientKey)
	s.logger.Info("User logged in", "username", user.Username, "role", user.Role)
	return session, nil
}

// Authenticate resolves a bearer token into its session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil || session == nil {
		return nil, ErrUnauthorized
	}
	if session.Expired() {
		s.sessions.DeleteByToken(ctx, token)
		return nil, ErrUnauthorized
	}
	return session, nil
}

// Logout removes the session for token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteByToken(ctx, token)
}

// PurgeExpired removes sessions past their expiry.
func (s *AuthService) PurgeExpired(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx, time.Now())
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
