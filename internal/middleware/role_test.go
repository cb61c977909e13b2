package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoleChecker struct {
	roles map[string]string
}

func (f *fakeRoleChecker) HasRole(_ context.Context, email, role string) (bool, error) {
	return f.roles[email] == role, nil
}

func authedRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	token, err := util.GenerateJWT("x@x.com", testSecret)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestRequireRoleForbiddenForWrongRole(t *testing.T) {
	checker := &fakeRoleChecker{roles: map[string]string{"x@x.com": "student"}}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})
	chain := AuthMiddleware(testSecret)(RequireRole(checker, "admin")(next))

	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, authedRequest(t, "/users"))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	isErr, msg := authEnvelope(t, rr.Body.Bytes())
	assert.True(t, isErr)
	assert.Equal(t, "forbidden message", msg)
}

func TestRequireRoleForbiddenForUnknownUser(t *testing.T) {
	checker := &fakeRoleChecker{roles: map[string]string{}}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})
	chain := AuthMiddleware(testSecret)(RequireRole(checker, "admin")(next))

	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, authedRequest(t, "/users"))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRolePassesMatchingRole(t *testing.T) {
	checker := &fakeRoleChecker{roles: map[string]string{"x@x.com": "admin"}}
	ran := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	})
	chain := AuthMiddleware(testSecret)(RequireRole(checker, "admin")(next))

	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, authedRequest(t, "/users"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, ran)
}

// RequireRole placed without the auth stage in front must reject, not
// dereference a missing identity.
func TestRequireRoleWithoutAuthStage(t *testing.T) {
	checker := &fakeRoleChecker{roles: map[string]string{"x@x.com": "admin"}}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	RequireRole(checker, "admin")(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
