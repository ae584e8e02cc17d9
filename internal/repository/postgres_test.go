package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupCredentialMock(t *testing.T) (*PostgresCredentialRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresCredentialRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

const findQuery = `SELECT username, password_hash FROM users WHERE username = $1`

func TestPostgresFindByUsername_Found(t *testing.T) {
	repo, mock, cleanup := setupCredentialMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(findQuery)).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash"}).
			AddRow("bob", "$2a$10$somehash"))

	c, err := repo.FindByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Username != "bob" || c.PasswordHash != "$2a$10$somehash" {
		t.Errorf("unexpected credential: %+v", c)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresFindByUsername_NotFound(t *testing.T) {
	repo, mock, cleanup := setupCredentialMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(findQuery)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash"}))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresFindByUsername_QueryError(t *testing.T) {
	repo, mock, cleanup := setupCredentialMock(t)
	defer cleanup()

	wantErr := errors.New("connection lost")
	mock.ExpectQuery(regexp.QuoteMeta(findQuery)).
		WithArgs("bob").
		WillReturnError(wantErr)

	_, err := repo.FindByUsername(context.Background(), "bob")
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v; want %v", err, wantErr)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("query error must not be reported as ErrNotFound")
	}
}
