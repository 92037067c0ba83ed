// Package storage provides the durable key-value store backing session and
// profile state. It holds a handful of scalar keys in a single JSON document
// that is atomically replaced on every write, so concurrent writers resolve
// by last-write-wins and readers never observe a torn file.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Well-known keys. These form a stable contract shared with any other
// process pointed at the same state directory.
const (
	KeyUser          = "user"
	KeyAuthenticated = "isAuthenticated"
	KeyToken         = "token"
	KeyProfileImage  = "profileImage"
)

// StateFile is the name of the document inside the state directory.
const StateFile = "state.json"

// Store is a durable string-to-string map. All operations are synchronous;
// reads of absent or malformed state yield zero values, never errors.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// New creates a store rooted at dir. The directory is created lazily on
// first write.
func New(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		path:   filepath.Join(dir, StateFile),
		logger: logger,
	}
}

// Path returns the location of the backing document.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value for key, or "" when the key is absent or the
// backing document is missing or malformed.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()[key]
}

// Set persists key=value. The write is durable before Set returns.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.read()
	state[key] = value
	return s.write(state)
}

// Delete removes the given keys. Deleting an absent key is a no-op.
func (s *Store) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.read()
	for _, k := range keys {
		delete(state, k)
	}
	return s.write(state)
}

// read loads the document, treating any failure as an empty store.
func (s *Store) read() map[string]string {
	state := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("state file unreadable, treating as empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return state
	}
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("state file malformed, treating as empty",
			zap.String("path", s.path), zap.Error(err))
		return make(map[string]string)
	}
	return state
}

// write replaces the document atomically via a temp file rename so external
// watchers never see a partial write.
func (s *Store) write(state map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
