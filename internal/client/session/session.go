// Package session persists the client's durable identity: the anonymous
// session id that ties a cart to this installation, and the bearer token of
// the logged-in user.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Storage keys.
const (
	keySessionID = "sessionId"
	keyToken     = "token"
)

// Store is a file-backed key/value store. When the backing file cannot be
// read or written the store degrades to memory only: values stay stable for
// the life of the process but do not survive a restart.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// DefaultPath returns the state file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "shopina", "state.json"), nil
}

// Open loads the store at path. A missing or unreadable file yields an
// empty store; Open never fails.
func Open(path string) *Store {
	s := &Store{path: path, values: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	// Corrupt state is discarded rather than fatal.
	_ = json.Unmarshal(data, &s.values)
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return s
}

// save writes the values to disk. Failures are swallowed: the in-memory
// copy remains authoritative for this process.
func (s *Store) save() {
	data, err := json.Marshal(s.values)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o600)
}

// SessionID returns the durable session identifier, creating and persisting
// one on first use. Subsequent calls return the same value.
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id := s.values[keySessionID]; id != "" {
		return id
	}
	id := uuid.NewString()
	s.values[keySessionID] = id
	s.save()
	return id
}

// Token returns the persisted bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[keyToken]
}

// SetToken persists the bearer token.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[keyToken] = token
	s.save()
}

// ClearToken removes the persisted bearer token. The session id is never
// cleared; it outlives logins.
func (s *Store) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, keyToken)
	s.save()
}
