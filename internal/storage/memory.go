// Package storage provides the local key/value store that keeps favorites,
// shopping lists, meal plans and the user profile between runs.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
)

// Keys used by the client. They match the names the web client stored in
// browser local storage so exported data stays recognizable.
const (
	KeySavedRecipes        = "saved-recipes"
	KeySavedShoppingList   = "saved-shopping-list"
	KeyCurrentShoppingList = "current-shopping-list"
	KeyWeeklyMealPlans     = "weekly-meal-plans"
	KeyCurrentMealPlanID   = "current-meal-plan-id"
	KeyUserEmail           = "user-email"
	KeyProfile             = "mealcraft-profile"
)

// DefaultUserEmail is used until onboarding stores a real address.
const DefaultUserEmail = "guest@mealcraft.com"

// Compile-time interface check.
var _ domain.KVStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory key/value store. Values are kept encoded so
// callers never share memory with the store. Safe for concurrent access.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]json.RawMessage
	log    *logger.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		values: make(map[string]json.RawMessage),
		log:    log,
	}
}

// Set stores value under key. Overwrites if it already exists.
func (s *MemoryStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("set %s (%d bytes)", key, len(data))
	s.values[key] = data
	return nil
}

// Get decodes the value stored under key into dst.
func (s *MemoryStore) Get(ctx context.Context, key string, dst any) error {
	s.mu.RLock()
	data, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		s.log.Debug("key not found: %s", key)
		return domain.ErrNotFound
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.values, key)
	s.log.Debug("deleted %s", key)
	return nil
}

// Keys lists the stored keys in sorted order.
func (s *MemoryStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedKeys(s.values), nil
}

func sortedKeys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
