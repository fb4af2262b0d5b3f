package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/AjayLohith/admin-access/internal/auth"
)

type contextKey string

const authContextKey contextKey = "authContext"

// AuthMiddleware validates the bearer token and attaches the resolved
// identity to the request context. Every failure mode after extraction
// (bad signature, expired, malformed) produces the same response so the
// endpoint cannot be used as a token oracle. No database lookup happens
// here: the role inside the token is trusted until it expires.
func AuthMiddleware(tokenGenerator *auth.TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}

			if token == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}

			userID, role, err := tokenGenerator.Resolve(token)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"invalid or expired token"}`))
				return
			}

			ctx := context.WithValue(r.Context(), authContextKey, auth.Context{UserID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAuthContext retrieves the resolved identity from the request context
func GetAuthContext(ctx context.Context) (auth.Context, bool) {
	authCtx, ok := ctx.Value(authContextKey).(auth.Context)
	return authCtx, ok
}
