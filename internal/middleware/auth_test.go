package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastetrack/internal/auth"
	"wastetrack/internal/middleware"
)

func protectedHandler(t *testing.T, sawUser *int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserFromContext(r.Context())
		require.True(t, ok, "protected handler must see the user")
		*sawUser = userID
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareAllowsPublicPaths(t *testing.T) {
	sessions := auth.NewSessionStore()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	for _, path := range []string{"/login", "/signup", "/auth/login", "/static/style.css"} {
		called = false
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		middleware.Auth(sessions, next).ServeHTTP(rec, req)
		assert.True(t, called, "path %s must bypass auth", path)
	}
}

func TestAuthMiddlewareRejectsAPIWithoutSession(t *testing.T) {
	sessions := auth.NewSessionStore()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached without a session")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/detections", nil)
	rec := httptest.NewRecorder()
	middleware.Auth(sessions, next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRedirectsBrowsersToLogin(t *testing.T) {
	sessions := auth.NewSessionStore()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached without a session")
	})

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	rec := httptest.NewRecorder()
	middleware.Auth(sessions, next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	sessions := auth.NewSessionStore()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached with a forged token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/detections", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "forged"})
	rec := httptest.NewRecorder()
	middleware.Auth(sessions, next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewarePassesValidSession(t *testing.T) {
	sessions := auth.NewSessionStore()
	token := sessions.Create(42)

	var sawUser int64
	req := httptest.NewRequest(http.MethodGet, "/api/detections", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()
	middleware.Auth(sessions, protectedHandler(t, &sawUser)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), sawUser)
}
