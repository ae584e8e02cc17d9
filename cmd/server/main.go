// Package main initializes and starts the MathNotes authentication server,
// setting up configuration, logging, the credential repository, handlers,
// and optional TLS.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/MathNotes/internal/config"
	"github.com/atinyakov/MathNotes/internal/db"
	"github.com/atinyakov/MathNotes/internal/logger"
	"github.com/atinyakov/MathNotes/internal/models"
	"github.com/atinyakov/MathNotes/internal/repository"
	"github.com/atinyakov/MathNotes/internal/server/handler/http"
	"github.com/atinyakov/MathNotes/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// The signing secret is mandatory runtime configuration.
	if options.JWTSecret == "" {
		zapLogger.Fatal("no token signing secret configured, set -secret or JWT_SECRET")
	}

	// Pick the credential source: PostgreSQL when a DSN is given, otherwise
	// the injected credentials file (reloaded periodically for rotation).
	var credRepo service.CredentialRepository
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		credRepo = repository.NewPostgresCredentialRepository(postgresDB)
		zapLogger.Info("serving credentials from PostgreSQL")
	} else {
		creds, err := loadCredentials(options.CredentialsFile)
		if err != nil {
			zapLogger.Fatal("cannot load credentials", zap.Error(err))
		}
		staticRepo := repository.NewStaticCredentialRepository(creds)
		if os.Getenv("CREDENTIALS") == "" {
			db.StartCredentialReloader(context.Background(), staticRepo,
				options.CredentialsFile,
				5*time.Minute,
				zapLogger,
			)
		}
		credRepo = staticRepo
		zapLogger.Info("serving credentials from file", zap.Int("count", len(creds)))
	}

	// Initialize the authentication service and login handler.
	authService := service.NewAuthService(credRepo, []byte(options.JWTSecret), options.TokenTTL)
	authHandler := &http.AuthHandler{AuthService: authService, Logger: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	// Serve TLS when a certificate pair is configured (tools/certgen can
	// provision a self-signed one), plain HTTP otherwise.
	if options.CertFile != "" && options.KeyFile != "" {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		zapLogger.Info("starting HTTPS server", zap.String("addr", options.Address))
		if err := server.ListenAndServeTLS(options.CertFile, options.KeyFile); err != nil {
			zapLogger.Fatal("failed to start HTTPS server", zap.Error(err))
		}
		return
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

// loadCredentials reads the credential list from the CREDENTIALS environment
// variable when set, otherwise from the configured credentials file.
func loadCredentials(path string) ([]models.Credential, error) {
	if inline := os.Getenv("CREDENTIALS"); inline != "" {
		return repository.ParseCredentials([]byte(inline))
	}
	return repository.LoadCredentialFile(path)
}
