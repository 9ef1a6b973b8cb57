package httpapi

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"cezatakip-service/internal/usecase"
	"cezatakip-service/pkg/logger"
)

// AuthHandler serves login and logout.
type AuthHandler struct {
	auth   *usecase.AuthService
	logger logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *usecase.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: log}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}

	// One attempt window per username+address pair.
	clientKey := req.Username + "@" + remoteHost(r)
	session, err := h.auth.Login(r.Context(), req.Username, req.Password, clientKey)
	switch {
	case errors.Is(err, usecase.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, "too many login attempts, try again later")
		return
	case errors.Is(err, usecase.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	case err != nil:
		h.logger.Error("Login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":     session.Token,
		"username":  session.Username,
		"role":      session.Role,
		"expiresAt": session.ExpiresAt,
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), bearerToken(r)); err != nil {
		h.logger.Error("Logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
