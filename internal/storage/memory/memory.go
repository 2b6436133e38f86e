// Package memory provides a map-backed KV adapter for tests and ephemeral
// runs.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type Store struct {
	mu    sync.Mutex
	items map[string]json.RawMessage
}

func New() *Store {
	return &Store{items: map[string]json.RawMessage{}}
}

func (s *Store) Load(_ context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.items[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) Save(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	s.items[key] = raw
	s.mu.Unlock()
	return nil
}

// SeedRaw stores a raw payload verbatim, bypassing marshalling. Used by tests
// to simulate corrupt persisted data.
func (s *Store) SeedRaw(key string, raw []byte) {
	s.mu.Lock()
	s.items[key] = json.RawMessage(raw)
	s.mu.Unlock()
}
