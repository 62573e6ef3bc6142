package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
)

// FileName is the document FileStore keeps inside its data directory.
const FileName = "mealcraft-store.json"

// Compile-time interface check.
var _ domain.KVStore = (*FileStore)(nil)

// FileStore persists all keys in one JSON document. Every write replaces the
// file atomically, so a crash leaves either the old or the new document.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]json.RawMessage
	log    *logger.Logger
}

// OpenFileStore loads the store from dir, creating dir if needed. A missing
// document is an empty store.
func OpenFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	s := &FileStore{
		path:   filepath.Join(dir, FileName),
		values: make(map[string]json.RawMessage),
		log:    log,
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Debug("no store at %s, starting empty", s.path)
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("reading store: %w", err)
	}

	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, fmt.Errorf("parsing store %s: %w", s.path, err)
		}
	}
	log.Debug("loaded store %s (%d keys)", s.path, len(s.values))
	return s, nil
}

// Path returns the location of the backing document.
func (s *FileStore) Path() string { return s.path }

// Set stores value under key and flushes the document.
func (s *FileStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = data
	if err := s.flush(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	s.log.Debug("set %s (%d bytes)", key, len(data))
	return nil
}

// Get decodes the value stored under key into dst.
func (s *FileStore) Get(ctx context.Context, key string, dst any) error {
	s.mu.RLock()
	data, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return domain.ErrNotFound
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

// Delete removes a key and flushes the document.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.values[key]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.values, key)
	if err := s.flush(); err != nil {
		s.values[key] = prev
		return err
	}
	s.log.Debug("deleted %s", key)
	return nil
}

// Keys lists the stored keys in sorted order.
func (s *FileStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedKeys(s.values), nil
}

// flush writes the document. Caller holds the write lock.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	return nil
}
