package store

import (
	"context"
	"sync"

	"newsline/internal/session"
)

// MemoryCredentials is an in-memory session.CredentialStore, used by
// tests.
type MemoryCredentials struct {
	mu    sync.Mutex
	creds session.Credentials
	set   bool
}

// NewMemoryCredentials creates an empty in-memory credential store.
func NewMemoryCredentials() *MemoryCredentials {
	return &MemoryCredentials{}
}

func (m *MemoryCredentials) Save(_ context.Context, creds session.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.creds = creds
	m.set = true

	return nil
}

func (m *MemoryCredentials) Load(_ context.Context) (session.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set {
		return session.Credentials{}, session.ErrNoCredentials
	}

	return m.creds, nil
}

func (m *MemoryCredentials) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.creds = session.Credentials{}
	m.set = false

	return nil
}
