package handlers

import (
	"net/http"
	"strings"

	"wastetrack/internal/auth"
	"wastetrack/internal/logger"
	"wastetrack/internal/model"
	"wastetrack/internal/repository"
)

// SignupHandler registers a new account and logs it in immediately.
func SignupHandler(users repository.UserRepository, sessions *auth.SessionStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")

		if username == "" || email == "" || password == "" {
			writeError(w, http.StatusBadRequest, "Username, email and password are required")
			return
		}

		if existing, err := users.GetByUsername(username); err != nil {
			log.Error("Signup username lookup failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Signup failed")
			return
		} else if existing != nil {
			writeError(w, http.StatusConflict, "Username already taken")
			return
		}
		if existing, err := users.GetByEmail(email); err != nil {
			log.Error("Signup email lookup failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Signup failed")
			return
		} else if existing != nil {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			log.Error("Password hashing failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Signup failed")
			return
		}

		userID, err := users.Insert(&model.User{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
		})
		if err != nil {
			log.Error("User insert failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Signup failed")
			return
		}

		setSessionCookie(w, sessions.Create(userID))
		log.Info("New user registered: %s", username)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// LoginHandler verifies credentials and starts a session.
func LoginHandler(users repository.UserRepository, sessions *auth.SessionStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")

		user, err := users.GetByUsername(username)
		if err != nil {
			log.Error("Login lookup failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Login failed")
			return
		}
		if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}

		setSessionCookie(w, sessions.Create(user.ID))
		log.Info("User logged in: %s", username)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// LogoutHandler destroys the session and clears the cookie.
func LogoutHandler(sessions *auth.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(auth.CookieName); err == nil {
			sessions.Destroy(cookie.Value)
		}

		http.SetCookie(w, &http.Cookie{
			Name:   auth.CookieName,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}
