package middleware

import (
	"net/http"
	"strings"

	"wastetrack/internal/auth"
)

// Auth checks for a valid session cookie before letting a request
// through. Login, signup and static resources stay reachable without a
// session.
func Auth(sessions *auth.SessionStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if r.URL.Path == "/login" ||
			r.URL.Path == "/signup" ||
			strings.HasPrefix(r.URL.Path, "/auth/") ||
			strings.HasPrefix(r.URL.Path, "/static/") ||
			strings.HasPrefix(r.URL.Path, "/css/") ||
			strings.HasPrefix(r.URL.Path, "/js/") {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(auth.CookieName)
		if err != nil {
			unauthorized(w, r)
			return
		}
		userID, ok := sessions.UserID(cookie.Value)
		if !ok {
			unauthorized(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), userID)))
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	// AJAX/API requests get a 401, browsers get sent to the login page.
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") ||
		strings.HasPrefix(r.URL.Path, "/api/") {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
