package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/botforge/botforge/internal/domain/user"
)

type actingUserCtxKey struct{}

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	ValidateAccessToken(token string) (*user.TokenClaims, error)
}

// publicPaths are exempt from authentication.
var publicPaths = map[string]bool{
	"/health":            true,
	"/api/v1/auth/login": true,
}

// Auth returns middleware that resolves the acting user from a
// "Authorization: Bearer <token>" header. Requests without a valid identity
// are rejected with 401 before any handler runs.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, "authorization required")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				writeUnauthorized(w, "invalid authorization header")
				return
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), actingUserCtxKey{}, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActingUserID returns the authenticated user id from the request context,
// or an empty string when no identity was resolved.
func ActingUserID(ctx context.Context) string {
	id, _ := ctx.Value(actingUserCtxKey{}).(string)
	return id
}

// WithActingUserID injects an acting user id into ctx. Exported for tests
// that drive handlers without the full middleware chain.
func WithActingUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, actingUserCtxKey{}, id)
}

// writeUnauthorized emits the standard error envelope with a 401 status.
// Written inline to keep this package free of the http adapter.
func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"data":null,"error":{"code":"UNAUTHORIZED","message":"` + msg + `"}}`))
}
