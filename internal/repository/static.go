// Package repository provides credential lookups for the authentication
// service, backed either by injected configuration or by PostgreSQL.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/atinyakov/MathNotes/internal/models"
)

// ErrNotFound is returned when no credential exists for a username.
var ErrNotFound = errors.New("credential not found")

// StaticCredentialRepository serves credentials from an in-memory mapping
// loaded at startup from a credentials file or environment variable. The
// mapping can be replaced wholesale at runtime (see db.StartCredentialReloader).
type StaticCredentialRepository struct {
	mu    sync.RWMutex
	creds map[string]models.Credential
}

// NewStaticCredentialRepository builds a repository over the given credential
// list. Duplicate usernames keep the first entry.
func NewStaticCredentialRepository(creds []models.Credential) *StaticCredentialRepository {
	r := &StaticCredentialRepository{creds: make(map[string]models.Credential, len(creds))}
	for _, c := range creds {
		if _, ok := r.creds[c.Username]; !ok {
			r.creds[c.Username] = c
		}
	}
	return r
}

// FindByUsername returns the credential for an exact, case-sensitive
// username match, or ErrNotFound.
func (r *StaticCredentialRepository) FindByUsername(ctx context.Context, username string) (*models.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.creds[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

// Replace swaps the whole credential mapping atomically.
func (r *StaticCredentialRepository) Replace(creds []models.Credential) {
	next := make(map[string]models.Credential, len(creds))
	for _, c := range creds {
		if _, ok := next[c.Username]; !ok {
			next[c.Username] = c
		}
	}
	r.mu.Lock()
	r.creds = next
	r.mu.Unlock()
}

// ParseCredentials decodes a JSON credential list of the form
// [{"username": "...", "password_hash": "..."}].
func ParseCredentials(data []byte) ([]models.Credential, error) {
	var creds []models.Credential
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	for _, c := range creds {
		if c.Username == "" || c.PasswordHash == "" {
			return nil, fmt.Errorf("parse credentials: entry with empty username or password_hash")
		}
	}
	return creds, nil
}

// LoadCredentialFile reads and parses a credentials file.
func LoadCredentialFile(path string) ([]models.Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return ParseCredentials(data)
}
