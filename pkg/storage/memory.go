package storage

import (
	"context"
	"sync"
)

// NewMemory returns a Store that forgets everything on restart. Used by tests
// and available as a stand-in when durability is not wanted.
func NewMemory() Store {
	return &memStore{data: map[string]string{}}
}

type memStore struct {
	m    sync.RWMutex
	data map[string]string
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	s.m.RLock()
	defer s.m.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *memStore) Set(_ context.Context, key string, value string) error {
	s.m.Lock()
	defer s.m.Unlock()

	s.data[key] = value
	return nil
}

func (s *memStore) Remove(_ context.Context, key string) error {
	s.m.Lock()
	defer s.m.Unlock()

	delete(s.data, key)
	return nil
}
