package session_test

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/atinyakov/MathNotes/internal/client/eval"
	"github.com/atinyakov/MathNotes/internal/client/notes"
	"github.com/atinyakov/MathNotes/internal/client/session"
	"github.com/atinyakov/MathNotes/internal/client/storage"
	"github.com/atinyakov/MathNotes/internal/models"
	"github.com/atinyakov/MathNotes/internal/repository"
	handlerhttp "github.com/atinyakov/MathNotes/internal/server/handler/http"
	"github.com/atinyakov/MathNotes/internal/service"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// startServer wires the real router, service and static repository, exactly
// as cmd/server does.
func startServer(t *testing.T, creds []models.Credential) *httptest.Server {
	t.Helper()
	repo := repository.NewStaticCredentialRepository(creds)
	svc := service.NewAuthService(repo, []byte("e2e-secret"), time.Hour)
	handler := &handlerhttp.AuthHandler{AuthService: svc, Logger: zap.NewNop()}
	srv := httptest.NewServer(handlerhttp.NewRouter(handler, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

// Full flow: bob logs in, adds a note, the collection is saved, and a fresh
// load returns the same single note, which still evaluates.
func TestEndToEnd_LoginAddSaveReload(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	srv := startServer(t, []models.Credential{
		{Username: "bob", PasswordHash: string(hash)},
	})

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}
	storePath := filepath.Join(t.TempDir(), "store.json")
	store, err := storage.Open(storePath, key)
	if err != nil {
		t.Fatal(err)
	}

	client := &session.Client{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: srv.URL,
		Store:   store,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sess, err := client.Login(ctx, "bob", "hunter2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Screen mount: load, add, save on unmount.
	collection := notes.Load(store, sess.Username)
	if len(collection) != 0 {
		t.Fatalf("fresh user has %d notes; want 0", len(collection))
	}
	collection, err = notes.Add(collection, "Pi", "3.14*2")
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	if err := notes.Save(store, sess.Username, collection); err != nil {
		t.Fatalf("save notes: %v", err)
	}

	// Remount with a reopened store, as after a process restart.
	store2, err := storage.Open(storePath, key)
	if err != nil {
		t.Fatal(err)
	}
	reloaded := notes.Load(store2, sess.Username)
	if len(reloaded) != 1 {
		t.Fatalf("reloaded %d notes; want 1", len(reloaded))
	}
	if reloaded[0].Title != "Pi" || reloaded[0].Text != "3.14*2" {
		t.Errorf("unexpected note: %+v", reloaded[0])
	}

	result, err := eval.Evaluate(reloaded[0].Text)
	if err != nil {
		t.Fatalf("evaluate reloaded note: %v", err)
	}
	if result != 6.28 {
		t.Errorf("result = %v; want 6.28", result)
	}

	// The session restores from the persisted token.
	restored, err := client.Restore()
	if err != nil || restored == nil {
		t.Fatalf("restore failed: sess=%v err=%v", restored, err)
	}
	if restored.Username != "bob" {
		t.Errorf("restored username = %q; want bob", restored.Username)
	}
}

// Wrong password and unknown user are indistinguishable through the whole
// stack.
func TestEndToEnd_BadCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	srv := startServer(t, []models.Credential{
		{Username: "bob", PasswordHash: string(hash)},
	})

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}
	store, err := storage.Open(filepath.Join(t.TempDir(), "store.json"), key)
	if err != nil {
		t.Fatal(err)
	}
	client := &session.Client{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: srv.URL,
		Store:   store,
	}

	_, errWrongPassword := client.Login(context.Background(), "bob", "wrong")
	_, errUnknownUser := client.Login(context.Background(), "ghost", "wrong")

	if !errors.Is(errWrongPassword, session.ErrAuthFailed) {
		t.Errorf("wrong password error = %v; want ErrAuthFailed", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, session.ErrAuthFailed) {
		t.Errorf("unknown user error = %v; want ErrAuthFailed", errUnknownUser)
	}
}
