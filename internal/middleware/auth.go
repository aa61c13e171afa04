package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gfermin360/user-verification-api/internal/auth"
)

type contextKey struct{}

var sessionClaimsKey = contextKey{}

// JWTAuth returns middleware that validates a Bearer session token from the
// Authorization header and stores its claims in the request context.
func JWTAuth(jwtAuth auth.JWTAuthenticator, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || tokenString == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims := &auth.SessionClaims{}
			if _, err := jwtAuth.ValidateTokenWithClaims(tokenString, secret, claims); err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), sessionClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionClaimsFromContext extracts the authenticated session claims from the
// request context.
func SessionClaimsFromContext(ctx context.Context) (*auth.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionClaimsKey).(*auth.SessionClaims)
	return claims, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
