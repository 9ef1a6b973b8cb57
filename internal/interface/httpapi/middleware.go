package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cezatakip-service/internal/domain/entity"
	"cezatakip-service/internal/domain/repository"
	"cezatakip-service/pkg/logger"
)

type contextKey string

const sessionKey contextKey = "session"

// Authenticator resolves a bearer token into a session. Implemented by
// usecase.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Session, error)
}

// Middleware carries the auth collaborator and the activity log.
type Middleware struct {
	auth     Authenticator
	activity repository.ActivityRepository
	logger   logger.Logger
}

// NewMiddleware creates the shared request middleware.
func NewMiddleware(auth Authenticator, activity repository.ActivityRepository, log logger.Logger) *Middleware {
	return &Middleware{auth: auth, activity: activity, logger: log}
}

// RequireRole authenticates the bearer token and enforces role membership.
// Missing or bad token is 401, wrong role is 403.
func (m *Middleware) RequireRole(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, err := m.auth.Authenticate(r.Context(), bearerToken(r))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			allowed := false
			for _, role := range roles {
				if session.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				writeError(w, http.StatusForbidden, "insufficient role")
				return
			}

			next(w, r.WithContext(context.WithValue(r.Context(), sessionKey, session)))
		}
	}
}

// RequireAuth authenticates without a role restriction.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := m.auth.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey, session)))
	}
}

// LogActivity appends a best-effort audit entry for the current user.
// Failures are logged and never fail the request.
func (m *Middleware) LogActivity(ctx context.Context, action, detail string) {
	session := sessionFrom(ctx)
	if session == nil {
		return
	}
	entry := &entity.ActivityEntry{
		Username: session.Username,
		Action:   action,
		Detail:   detail,
		At:       time.Now(),
	}
	if err := m.activity.Append(ctx, entry); err != nil {
		m.logger.Warn("Failed to append activity entry", "action", action, "error", err)
	}
}

func sessionFrom(ctx context.Context) *entity.Session {
	session, _ := ctx.Value(sessionKey).(*entity.Session)
	return session
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
