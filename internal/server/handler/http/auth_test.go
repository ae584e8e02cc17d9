package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/MathNotes/internal/service"
	"go.uber.org/zap"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	token string
	err   error

	gotUsername string
	gotPassword string
}

func (f *fakeAuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	f.gotUsername = username
	f.gotPassword = password
	return f.token, f.err
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeAuthService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `not a json`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "bad credentials",
			body:         `{"username":"bob","password":"wrong"}`,
			service:      &fakeAuthService{err: service.ErrInvalidCredentials},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "unknown user gets the same failure",
			body:         `{"username":"ghost","password":"x"}`,
			service:      &fakeAuthService{err: service.ErrInvalidCredentials},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "service error",
			body:         `{"username":"bob","password":"pw"}`,
			service:      &fakeAuthService{err: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "success",
			body:         `{"username":"bob","password":"pw"}`,
			service:      &fakeAuthService{token: "signed-token"},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/users", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service, Logger: zap.NewNop()}
			h.Login(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			switch tt.expectedCode {
			case http.StatusOK:
				var body LoginResponse
				if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if body.Token != "signed-token" {
					t.Errorf("token = %q; want %q", body.Token, "signed-token")
				}
			case http.StatusUnauthorized:
				var body ErrorResponse
				if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if body.Status != "error" || body.Message != "Authentication failed." {
					t.Errorf("unexpected failure body: %+v", body)
				}
			}
		})
	}
}

func TestAuthHandler_Login_PassesCredentialsThrough(t *testing.T) {
	svc := &fakeAuthService{token: "tok"}
	h := &AuthHandler{AuthService: svc, Logger: zap.NewNop()}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users",
		bytes.NewBufferString(`{"username":"joe","password":"s3cret"}`))
	h.Login(rec, req)

	if svc.gotUsername != "joe" || svc.gotPassword != "s3cret" {
		t.Errorf("service received (%q, %q); want (joe, s3cret)", svc.gotUsername, svc.gotPassword)
	}
}

func TestNewRouter_ContentTypeEnforced(t *testing.T) {
	h := &AuthHandler{AuthService: &fakeAuthService{token: "tok"}, Logger: zap.NewNop()}
	router := NewRouter(h, zap.NewNop())

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/users", "text/plain",
		bytes.NewBufferString(`{"username":"bob","password":"pw"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d; want %d", resp.StatusCode, http.StatusUnsupportedMediaType)
	}

	resp2, err := http.Post(srv.URL+"/users", "application/json",
		bytes.NewBufferString(`{"username":"bob","password":"pw"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Errorf("status = %d; want %d", resp2.StatusCode, http.StatusOK)
	}
}
