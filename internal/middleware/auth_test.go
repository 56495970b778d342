package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/users"
)

type stubAuthenticator struct {
	user *users.User
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, token string) (*users.User, error) {
	if s.user != nil && token == "good-token" {
		return s.user, nil
	}
	return nil, errors.New("invalid token")
}

func TestJWTAuth(t *testing.T) {
	user := &users.User{ID: "u-1", Name: "Ada", Email: "ada@example.com"}
	var seen *users.User
	handler := JWTAuth(&stubAuthenticator{user: user})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "good-token", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer good-token", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/analysis/history", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, user.ID, seen.ID)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestGetUserFromContextMissing(t *testing.T) {
	assert.Nil(t, GetUserFromContext(context.Background()))
}
