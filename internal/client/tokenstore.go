package client

import "sync"

// TokenStore is the single shared holder of the session token plus the
// credentials needed to obtain one. Writes are serialized; readers never
// block other readers. The lock is never held across network I/O: callers
// copy what they need, release, then talk to the API, and re-acquire only
// to commit a result.
type TokenStore struct {
	mu       sync.RWMutex
	token    string
	username string
	password string
}

// NewTokenStore creates a store, optionally pre-seeded with a persisted
// token.
func NewTokenStore(username, password, token string) *TokenStore {
	return &TokenStore{
		username: username,
		password: password,
		token:    token,
	}
}

// Token returns the current session token, if any.
func (s *TokenStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken replaces the current token. Readers observe either the old or
// the new value, never a partial write.
func (s *TokenStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear drops the stored token. Only explicit external action clears the
// store; the request pipeline itself never does.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Credentials returns the stored username and password. ok is false when
// either is missing.
func (s *TokenStore) Credentials() (username, password string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username, s.password, s.username != "" && s.password != ""
}
