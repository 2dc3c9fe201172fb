package session

import (
	"context"
	"errors"
)

// ErrNoCredentials reports that no credentials are stored.
var ErrNoCredentials = errors.New("no stored credentials")

// Credentials is the persisted session identity: the opaque token the
// remote service issued and the username it was issued for.
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// CredentialStore persists credentials between runs so a session can
// be restored without asking for the password again. Implementations
// live in internal/store.
type CredentialStore interface {
	Save(ctx context.Context, creds Credentials) error
	// Load returns the stored credentials, or ErrNoCredentials when
	// nothing is stored.
	Load(ctx context.Context) (Credentials, error)
	Clear(ctx context.Context) error
}
