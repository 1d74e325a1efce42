package middlewares

import (
	"budget_tracker/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(t *testing.T, userID int) *http.Request {
	t.Helper()
	tokenString, err := utils.SignToken(userID, "user@example.com")
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/budgets", nil)
	r.AddCookie(&http.Cookie{Name: "Bearer", Value: tokenString})
	return r
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var gotUserID int
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		id, ok := utils.UserIDFromRequest(r)
		require.True(t, ok)
		gotUserID = id
	})

	w := httptest.NewRecorder()
	JWTMiddleware(next).ServeHTTP(w, authedRequest(t, 42))

	assert.True(t, called)
	assert.Equal(t, 42, gotUserID)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTMiddleware_MissingCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	w := httptest.NewRecorder()
	JWTMiddleware(next).ServeHTTP(w, httptest.NewRequest("GET", "/budgets", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddleware_BadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	r := httptest.NewRequest("GET", "/budgets", nil)
	r.AddCookie(&http.Cookie{Name: "Bearer", Value: "not-a-jwt"})

	w := httptest.NewRecorder()
	JWTMiddleware(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "signing-secret")
	r := authedRequest(t, 1)

	t.Setenv("JWT_SECRET", "different-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	w := httptest.NewRecorder()
	JWTMiddleware(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewaresExcludePaths(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var reached []string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = append(reached, r.URL.Path)
	})

	gate := MiddlewaresExcludePaths(JWTMiddleware, "/auth/register", "/auth/login")(next)

	// Excluded path passes without a token.
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, httptest.NewRequest("POST", "/auth/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Everything else still requires one.
	w = httptest.NewRecorder()
	gate.ServeHTTP(w, httptest.NewRequest("GET", "/budgets", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, []string{"/auth/login"}, reached)
}

func TestSecurityHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	SecurityHeaders(next).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
