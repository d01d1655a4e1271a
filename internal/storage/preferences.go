package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory key-value store partitioned by scope.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[int64]map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[int64]map[string]string),
	}
}

// Get returns the value stored under key for scope.
func (s *MemoryStore) Get(_ context.Context, scope int64, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[scope][key]
	return v, ok, nil
}

// Set stores value under key for scope.
func (s *MemoryStore) Set(_ context.Context, scope int64, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set(scope, key, value)
	return nil
}

// Update replaces the value under key with the result of fn while holding the lock.
func (s *MemoryStore) Update(_ context.Context, scope int64, key string, fn func(old string, ok bool) (string, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.values[scope][key]
	if next, write := fn(old, ok); write {
		s.set(scope, key, next)
	}
	return nil
}

func (s *MemoryStore) set(scope int64, key, value string) {
	m, ok := s.values[scope]
	if !ok {
		m = make(map[string]string)
		s.values[scope] = m
	}
	m[key] = value
}
