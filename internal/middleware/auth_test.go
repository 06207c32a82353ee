package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeVerifier implements TokenVerifier.
type fakeVerifier struct {
	userID string
	err    error
}

func (f *fakeVerifier) VerifyToken(string) (string, error) {
	return f.userID, f.err
}

func TestBearerAuth(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		verifier     *fakeVerifier
		expectedCode int
		expectedUser string
	}{
		{
			name:         "missing header",
			header:       "",
			verifier:     &fakeVerifier{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "not bearer",
			header:       "Basic abc",
			verifier:     &fakeVerifier{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "invalid token",
			header:       "Bearer bad",
			verifier:     &fakeVerifier{err: errors.New("expired")},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "valid token",
			header:       "Bearer good",
			verifier:     &fakeVerifier{userID: "u1"},
			expectedCode: http.StatusOK,
			expectedUser: "u1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = GetUserIDFromContext(r.Context())
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			BearerAuth(tt.verifier)(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if tt.expectedUser != "" && gotUser != tt.expectedUser {
				t.Errorf("expected user %q in context, got %q", tt.expectedUser, gotUser)
			}
		})
	}
}
