// Package tokenstore holds the access token and remembered username for the
// lifetime of the client process. It is the Go counterpart of the web
// client's tab-scoped session storage: never shared across processes, never
// persisted, cleared when the process ends.
package tokenstore

import (
	"sync"

	"github.com/sharestay/sharestay-client/internal/core/ports"
)

// Memory is the in-process ports.TokenStore implementation.
type Memory struct {
	mu       sync.RWMutex
	token    string
	hasToken bool
	username string
	hasUser  bool
}

var _ ports.TokenStore = (*Memory)(nil)

// New returns an empty store.
func New() *Memory {
	return &Memory{}
}

// AccessToken returns the stored token and whether one is present.
func (m *Memory) AccessToken() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.hasToken
}

// SetAccessToken stores a token. An empty value clears the entry entirely,
// it does not store an empty string.
func (m *Memory) SetAccessToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token == "" {
		m.token, m.hasToken = "", false
		return
	}
	m.token, m.hasToken = token, true
}

// StoredUsername returns the remembered login identifier.
func (m *Memory) StoredUsername() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.username, m.hasUser
}

// SetStoredUsername remembers a login identifier; empty clears it.
func (m *Memory) SetStoredUsername(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if username == "" {
		m.username, m.hasUser = "", false
		return
	}
	m.username, m.hasUser = username, true
}

// ClearAll removes both entries.
func (m *Memory) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.hasToken = "", false
	m.username, m.hasUser = "", false
}
