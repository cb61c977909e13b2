package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"app/internal/util"
)

// Injected key type to avoid context collisions
type contextKey string

// UserContextKey holds the authenticated email in the request context.
// Only AuthMiddleware writes it; everything downstream may rely on it
// being present once the chain passed.
const UserContextKey = contextKey("user")

// Error bodies required by the API contract.
const (
	MsgUnauthorized = "unauthorized access"
	MsgForbidden    = "forbidden message"
)

// WriteError sends the structured auth error envelope.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
	})
}

// AuthenticatedEmail extracts the identity placed by AuthMiddleware.
func AuthenticatedEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(UserContextKey).(string)
	return email, ok && email != ""
}

// AuthMiddleware verifies the bearer token and embeds the email claim into
// the request context for downstream stages.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, http.StatusUnauthorized, MsgUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				WriteError(w, http.StatusUnauthorized, MsgUnauthorized)
				return
			}
			claims, err := util.ValidateJWT(parts[1], jwtSecret)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, MsgUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
