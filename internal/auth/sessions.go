package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// CookieName is the session cookie set on login.
const CookieName = "session_token"

type contextKey string

const userContextKey contextKey = "user_id"

// SessionStore keeps session tokens in memory. Sessions do not survive
// a restart, which forces a fresh login.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]int64
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]int64),
	}
}

// Create issues a new session token for the user.
func (s *SessionStore) Create(userID int64) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()
	return token
}

// UserID resolves a token to the logged-in user.
func (s *SessionStore) UserID(token string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[token]
	return userID, ok
}

// Destroy invalidates a session token.
func (s *SessionStore) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// WithUser stores the authenticated user ID on the request context.
func WithUser(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

// UserFromContext returns the authenticated user ID, if any.
func UserFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userContextKey).(int64)
	return userID, ok
}
