package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionManager holds server-side sessions: opaque token -> user id,
// with a fixed time-to-live. Sessions are process-local; restarting the
// service logs everyone out.
type SessionManager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]session
}

type session struct {
	userID    string
	expiresAt time.Time
}

// NewSessionManager creates a SessionManager with the given TTL.
func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		ttl:      ttl,
		sessions: make(map[string]session),
	}
}

// Create opens a session for userID and returns its opaque token.
func (m *SessionManager) Create(userID string) string {
	token := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = session{userID: userID, expiresAt: time.Now().Add(m.ttl)}
	return token
}

// Resolve returns the user id behind a token, if the session is still live.
// Expired sessions are dropped on first sight.
func (m *SessionManager) Resolve(token string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[token]
	if !ok {
		return "", false
	}
	if time.Now().After(sess.expiresAt) {
		delete(m.sessions, token)
		return "", false
	}
	return sess.userID, true
}

// Destroy removes a session. Unknown tokens are a no-op.
func (m *SessionManager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
