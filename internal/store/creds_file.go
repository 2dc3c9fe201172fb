package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"newsline/internal/session"
)

// FileCredentials persists credentials as a JSON file, for CLI use
// where the session must survive between invocations.
type FileCredentials struct {
	path string
}

// NewFileCredentials creates a credential store backed by the file at
// path. The file is created on first Save.
func NewFileCredentials(path string) *FileCredentials {
	return &FileCredentials{path: path}
}

func (f *FileCredentials) Save(_ context.Context, creds session.Credentials) error {
	payload, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	// the token is a live credential, keep the file private
	if err := os.WriteFile(f.path, payload, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}

	return nil
}

func (f *FileCredentials) Load(_ context.Context) (session.Credentials, error) {
	payload, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return session.Credentials{}, session.ErrNoCredentials
		}

		return session.Credentials{}, fmt.Errorf("read credentials: %w", err)
	}

	var creds session.Credentials
	if err := json.Unmarshal(payload, &creds); err != nil {
		return session.Credentials{}, fmt.Errorf("decode credentials: %w", err)
	}

	if creds.Token == "" || creds.Username == "" {
		return session.Credentials{}, session.ErrNoCredentials
	}

	return creds, nil
}

func (f *FileCredentials) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}

	return nil
}
