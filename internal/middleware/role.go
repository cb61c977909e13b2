package middleware

import (
	"context"
	"net/http"
)

// RoleChecker looks up whether an account holds a role. Satisfied by the
// user service.
type RoleChecker interface {
	HasRole(ctx context.Context, email, role string) (bool, error)
}

// RequireRole gates a route on the caller's stored role. It must be
// composed after AuthMiddleware; a request that reaches it without an
// authenticated email is rejected, never dereferenced.
func RequireRole(checker RoleChecker, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := AuthenticatedEmail(r)
			if !ok {
				WriteError(w, http.StatusUnauthorized, MsgUnauthorized)
				return
			}
			has, err := checker.HasRole(r.Context(), email, role)
			if err != nil {
				http.Error(w, "failed to verify role", http.StatusInternalServerError)
				return
			}
			if !has {
				WriteError(w, http.StatusForbidden, MsgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
