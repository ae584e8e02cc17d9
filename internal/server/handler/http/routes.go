// Package http provides HTTP routing and middleware configuration for the
// authentication API.
package http

import (
	"net/http"

	"github.com/atinyakov/MathNotes/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the authentication API.
//
// Routes:
//
//	POST /users → authHandler.Login
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON requests
//  2. WithRequestLogging(logger)           — logs incoming requests
func NewRouter(authHandler *AuthHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Post("/users", authHandler.Login)

	return r
}
