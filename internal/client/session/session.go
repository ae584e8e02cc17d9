// Package session implements the client side of the login flow: submitting
// credentials, persisting the issued token, and restoring prior sessions.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/atinyakov/MathNotes/internal/client/storage"
	"github.com/atinyakov/MathNotes/internal/models"
	"github.com/atinyakov/MathNotes/internal/token"
)

var (
	// ErrAuthFailed means the server rejected the credentials. The message
	// is intentionally generic.
	ErrAuthFailed = errors.New("username or password is invalid")
	// ErrTransport covers network failures, unexpected statuses and
	// malformed responses. Users see a generic message; the detail goes to
	// the log.
	ErrTransport = errors.New("authentication service unreachable")
)

// tokenKey is the fixed store key the session token is persisted under.
const tokenKey = "userToken"

// Client performs logins against the authentication API and keeps the
// resulting token in the encrypted local store.
type Client struct {
	// HTTP is the transport used for the login call. Its timeout bounds
	// the request together with the caller's context.
	HTTP *http.Client
	// BaseURL is the server base URL, e.g. "http://localhost:8080".
	BaseURL string
	// Store persists the session token between runs.
	Store *storage.Store
}

// Login submits the credentials and, on success, persists the issued token
// and returns the session. Nothing is persisted on any failure path. The
// returned session does not retain the password: the token authorizes
// everything after login.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Session, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/users", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrAuthFailed
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.Token == "" {
		return nil, fmt.Errorf("%w: malformed response", ErrTransport)
	}

	if err := c.Store.Set(tokenKey, result.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}

	return &models.Session{Username: username, Token: result.Token}, nil
}

// Restore rebuilds a session from a previously persisted token. It returns
// nil (and no error) when no usable token exists; expired or unreadable
// tokens are dropped from the store. The expiry is read from unverified
// claims — the client holds no signing secret, and the server remains the
// authority on token validity.
func (c *Client) Restore() (*models.Session, error) {
	value, ok, err := c.Store.Get(tokenKey)
	if err != nil {
		return nil, fmt.Errorf("read stored token: %w", err)
	}
	if !ok {
		return nil, nil
	}

	username, expiresAt, err := token.UnverifiedClaims(value)
	if err != nil || time.Now().After(expiresAt) {
		_ = c.Store.Delete(tokenKey)
		return nil, nil
	}

	return &models.Session{Username: username, Token: value}, nil
}

// Logout drops the persisted token.
func (c *Client) Logout() error {
	return c.Store.Delete(tokenKey)
}
