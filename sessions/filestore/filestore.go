package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jrsteele09/college-portal/sessions"
	"github.com/jrsteele09/college-portal/users"
)

// FileStore implements sessions.Store using a JSON file readable only by the owner
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

var _ sessions.Store = (*FileStore)(nil)

// New creates the parent directory of path and returns a store writing to it
func New(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("session file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &FileStore{path: path, now: time.Now}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Save(_ context.Context, token string, role users.RoleType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sessions.Stored{Token: token, Role: role, SavedAt: s.now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Write then rename so a crash never leaves a truncated file behind
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (sessions.Stored, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return sessions.Stored{}, sessions.ErrNotFound
		}
		return sessions.Stored{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var stored sessions.Stored
	if err := json.Unmarshal(data, &stored); err != nil {
		return sessions.Stored{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if stored.Token == "" {
		return sessions.Stored{}, sessions.ErrNotFound
	}
	stored.Role = users.ParseRole(string(stored.Role))
	return stored, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}
