package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/users"
)

type contextKey string

const UserKey contextKey = "user"

// Authenticator resolves a bearer token into the account it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*users.User, error)
}

// JWTAuth validates the Authorization header and stores the account in
// the request context.
func JWTAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" || token == header {
				http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			u, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts the authenticated account from context.
func GetUserFromContext(ctx context.Context) *users.User {
	if u, ok := ctx.Value(UserKey).(*users.User); ok {
		return u
	}
	return nil
}
