// Package auth manages the bearer token the client attaches to backend
// requests.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoToken indicates that no token is configured.
var ErrNoToken = errors.New("not logged in")

// Store holds the current bearer token. It is read by the api client on
// every request and refreshed when the token file changes.
type Store struct {
	mu       sync.RWMutex
	path     string
	override string
	token    string
}

// NewStore creates a Store backed by the token file at path. A non-empty
// override (e.g. from GABELGURU_TOKEN) takes precedence over the file.
func NewStore(path, override string) *Store {
	return &Store{path: path, override: strings.TrimSpace(override)}
}

// Path returns the token file location.
func (s *Store) Path() string { return s.path }

// Load reads the token from the override or the token file. A missing file
// yields ErrNoToken.
func (s *Store) Load() (string, error) {
	if s.override != "" {
		s.set(s.override)
		return s.override, nil
	}
	if s.path == "" {
		return "", ErrNoToken
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.set("")
			return "", ErrNoToken
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	tok := strings.TrimSpace(string(data))
	s.set(tok)
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// Save persists token to the token file with owner-only permissions.
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrNoToken
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	s.set(token)
	return nil
}

// Clear removes the token file.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token file: %w", err)
	}
	s.set("")
	return nil
}

// Token returns the current token without touching the filesystem.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) set(tok string) {
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
}
