// Package http provides the HTTP handlers for the authentication API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/MathNotes/internal/service"
	"go.uber.org/zap"
)

// AuthService defines the authentication operation required by the HTTP
// handlers.
type AuthService interface {
	// Authenticate verifies credentials and returns a signed session token.
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles login requests.
type AuthHandler struct {
	// AuthService performs the underlying credential check.
	AuthService AuthService
	// Logger records internal failures; auth failures are not logged with
	// credentials attached.
	Logger *zap.Logger
}

// LoginRequest represents the JSON payload for a login attempt.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the success body: the signed session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the failure body for authentication failures.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Login handles POST /users. A well-formed request with valid credentials
// gets 200 and {"token": "..."}; bad credentials get 401 with a single
// generic message regardless of whether the user exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	tok, err := h.AuthService.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Status:  "error",
			Message: "Authentication failed.",
		})
		return
	}
	if err != nil {
		h.Logger.Error("authenticate", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(LoginResponse{Token: tok})
}
