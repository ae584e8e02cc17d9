package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/atinyakov/MathNotes/internal/models"
)

// PostgresCredentialRepository implements credential lookups against a
// PostgreSQL users table.
type PostgresCredentialRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCredentialRepository creates a repository over the given database
// connection. db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresCredentialRepository(db *sql.DB) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{DB: db}
}

// FindByUsername returns the credential stored for username, or ErrNotFound
// when no row matches. Any other query error is returned as-is.
func (r *PostgresCredentialRepository) FindByUsername(ctx context.Context, username string) (*models.Credential, error) {
	var c models.Credential
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT username, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&c.Username, &c.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
