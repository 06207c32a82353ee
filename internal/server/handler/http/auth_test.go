package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/shopina/internal/models"
	"github.com/atinyakov/shopina/internal/service"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	token string
	user  *models.User
	err   error
}

func (f *fakeAuthService) Register(ctx context.Context, in service.RegisterInput) (string, *models.User, error) {
	return f.token, f.user, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	return f.token, f.user, f.err
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedDetail string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedDetail: "invalid request body",
		},
		{
			name:           "missing name",
			body:           `{"email":"a@b.com","password":"secret1"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedDetail: "invalid registration data",
		},
		{
			name:           "bad email",
			body:           `{"name":"Alice","email":"not-an-email","password":"secret1"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedDetail: "invalid registration data",
		},
		{
			name:           "email taken",
			body:           `{"name":"Alice","email":"a@b.com","password":"secret1"}`,
			service:        &fakeAuthService{err: service.ErrEmailTaken},
			expectedCode:   http.StatusBadRequest,
			expectedDetail: "Email already registered",
		},
		{
			name:         "success",
			body:         `{"name":"Alice","email":"a@b.com","password":"secret1"}`,
			service:      &fakeAuthService{token: "tok", user: &models.User{ID: "u1", Name: "Alice", Email: "a@b.com", Role: "customer"}},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service}
			h.Register(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			if tt.expectedDetail != "" {
				var body detailResponse
				if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body.Detail != tt.expectedDetail {
					t.Errorf("expected detail %q, got %q", tt.expectedDetail, body.Detail)
				}
				return
			}

			var payload tokenResponse
			if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if payload.AccessToken != "tok" || payload.TokenType != "bearer" {
				t.Errorf("unexpected token payload: %+v", payload)
			}
			if payload.User.Name != "Alice" {
				t.Errorf("unexpected user payload: %+v", payload.User)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedDetail string
	}{
		{
			name:           "wrong password",
			body:           `{"email":"a@b.com","password":"bad"}`,
			service:        &fakeAuthService{err: service.ErrInvalidCredentials},
			expectedCode:   http.StatusUnauthorized,
			expectedDetail: "Invalid credentials",
		},
		{
			name:           "missing password",
			body:           `{"email":"a@b.com"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedDetail: "invalid login data",
		},
		{
			name:         "success",
			body:         `{"email":"a@b.com","password":"secret1"}`,
			service:      &fakeAuthService{token: "tok", user: &models.User{ID: "u1", Name: "Alice", Email: "a@b.com"}},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service}
			h.Login(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
			if tt.expectedDetail != "" {
				var body detailResponse
				if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body.Detail != tt.expectedDetail {
					t.Errorf("expected detail %q, got %q", tt.expectedDetail, body.Detail)
				}
			}
		})
	}
}
