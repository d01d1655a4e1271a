package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore is a key-value store persisted to a YAML file.
// Every write rewrites the whole file.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[int64]map[string]string
}

// NewFileStore opens the store at path. A missing file is an empty store.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: make(map[int64]map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read preferences file: %w", err)
	}

	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parse preferences file: %w", err)
	}
	if s.values == nil {
		s.values = make(map[int64]map[string]string)
	}

	return s, nil
}

// Get returns the value stored under key for scope.
func (s *FileStore) Get(_ context.Context, scope int64, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[scope][key]
	return v, ok, nil
}

// Set stores value under key for scope and flushes the file.
func (s *FileStore) Set(_ context.Context, scope int64, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(scope, key, value)
}

// Update replaces the value under key with the result of fn and flushes the file.
func (s *FileStore) Update(_ context.Context, scope int64, key string, fn func(old string, ok bool) (string, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.values[scope][key]
	next, write := fn(old, ok)
	if !write {
		return nil
	}
	return s.write(scope, key, next)
}

func (s *FileStore) write(scope int64, key, value string) error {
	m, ok := s.values[scope]
	if !ok {
		m = make(map[string]string)
		s.values[scope] = m
	}
	prev, had := m[key]
	m[key] = value

	if err := s.flush(); err != nil {
		if had {
			m[key] = prev
		} else {
			delete(m, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) flush() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preferences dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace preferences file: %w", err)
	}
	return nil
}
