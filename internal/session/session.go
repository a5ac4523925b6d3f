// Package session holds per-user login and pagination state.
//
// State lives in process memory for the life of one user interaction
// sequence; nothing here is persisted. The share-link path never touches a
// session; external recipients are served statelessly.
package session

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrAuthMismatch is returned for a wrong shared secret. No lockout or
// backoff is applied.
var ErrAuthMismatch = errors.New("authentication failed")

// Session is a small state machine: LoggedOut -> LoggedIn -> LoggedOut (on
// logout or expiry), with pagination state meaningful only while logged in.
type Session struct {
	mu            sync.Mutex
	authenticated bool
	authExpiresAt time.Time // zero when sessions never expire
	lastQuery     string
	revealed      int
}

// Manager issues and tracks sessions keyed by opaque cookie tokens.
type Manager struct {
	secret        string
	timeout       time.Duration // 0 = sessions never expire
	pageSize      int
	pageIncrement int
	now           func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a manager. A timeout of 0 disables automatic expiry.
func NewManager(secret string, timeout time.Duration, pageSize, pageIncrement int) *Manager {
	return &Manager{
		secret:        secret,
		timeout:       timeout,
		pageSize:      pageSize,
		pageIncrement: pageIncrement,
		now:           time.Now,
		sessions:      make(map[string]*Session),
	}
}

// Get returns the session for token, creating one (logged out, base page
// size) when the token is unknown or blank. The returned token identifies
// the session and should be echoed back to the client.
func (m *Manager) Get(token string) (*Session, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token != "" {
		if s, ok := m.sessions[token]; ok {
			return s, token
		}
	}
	token = uuid.NewString()
	s := &Session{revealed: m.pageSize}
	m.sessions[token] = s
	return s, token
}

// Drop discards a session entirely.
func (m *Manager) Drop(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Login transitions LoggedOut -> LoggedIn iff pw matches the shared secret.
func (m *Manager) Login(s *Session, pw string) error {
	if subtle.ConstantTimeCompare([]byte(pw), []byte(m.secret)) != 1 {
		return ErrAuthMismatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = true
	if m.timeout > 0 {
		s.authExpiresAt = m.now().Add(m.timeout)
	}
	return nil
}

// Logout forces the session back to LoggedOut.
func (m *Manager) Logout(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.authExpiresAt = time.Time{}
}

// Authenticated reports login state, expiring the session first when its
// deadline has passed.
func (m *Manager) Authenticated(s *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authenticated && !s.authExpiresAt.IsZero() && m.now().After(s.authExpiresAt) {
		s.authenticated = false
		s.authExpiresAt = time.Time{}
	}
	return s.authenticated
}

// SetQuery records the active search. A changed query resets pagination to
// the base page size so previously truncated results are not silently
// revealed under a new filter.
func (m *Manager) SetQuery(s *Session, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if query != s.lastQuery {
		s.lastQuery = query
		s.revealed = m.pageSize
	}
}

// ExpandPage reveals one more page. The caller clamps to the result total
// when rendering.
func (m *Manager) ExpandPage(s *Session) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revealed += m.pageIncrement
	return s.revealed
}

// Revealed returns how many results the session may currently see.
func (s *Session) Revealed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealed
}

// LastQuery returns the query pagination is tracking.
func (s *Session) LastQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}
