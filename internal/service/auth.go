// Package service provides the authentication business logic: credential
// verification and session-token issuance.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/atinyakov/MathNotes/internal/models"
	"github.com/atinyakov/MathNotes/internal/repository"
	"github.com/atinyakov/MathNotes/internal/token"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords, so responses cannot be used to enumerate users.
var ErrInvalidCredentials = errors.New("invalid username or password")

// dummyHash is compared against when the username is unknown, so the
// lookup-miss path costs a bcrypt comparison like the password-miss path.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// CredentialRepository defines the persistence operations required by the
// authentication service.
type CredentialRepository interface {
	// FindByUsername returns the credential for an exact username match,
	// or repository.ErrNotFound when the user does not exist.
	FindByUsername(ctx context.Context, username string) (*models.Credential, error)
}

// Service implements authentication by delegating credential lookups to a
// CredentialRepository and token issuance to the token package.
type Service struct {
	repo   CredentialRepository
	secret []byte
	ttl    time.Duration
}

// NewAuthService constructs a Service that signs tokens with secret and
// issues them with the given validity window.
func NewAuthService(repo CredentialRepository, secret []byte, ttl time.Duration) *Service {
	return &Service{repo: repo, secret: secret, ttl: ttl}
}

// Authenticate verifies the (username, password) pair and, on success,
// returns a signed session token. Unknown users and wrong passwords both
// yield ErrInvalidCredentials; repository failures are returned unchanged.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	cred, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return token.Generate(username, s.secret, s.ttl)
}
