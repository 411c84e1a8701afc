package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileStore persists keys as a single JSON document so state survives
// process restarts the way browser localStorage survives reloads.
type fileStore struct {
	path string
	m    sync.Mutex
	data map[string]string
}

func newFileStore(dir string) (*fileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}

	s := &fileStore{
		path: filepath.Join(dir, "state.json"),
		data: map[string]string{},
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}
	if err := json.Unmarshal(b, &s.data); err != nil {
		// corrupt state file, start over rather than fail the boot
		s.data = map[string]string{}
	}
	return s, nil
}

func (s *fileStore) Get(_ context.Context, key string) (string, error) {
	s.m.Lock()
	defer s.m.Unlock()

	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *fileStore) Set(_ context.Context, key string, value string) error {
	s.m.Lock()
	defer s.m.Unlock()

	s.data[key] = value
	return s.flush()
}

func (s *fileStore) Remove(_ context.Context, key string) error {
	s.m.Lock()
	defer s.m.Unlock()

	delete(s.data, key)
	return s.flush()
}

func (s *fileStore) flush() error {
	b, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
