package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Store is a plain named-key snapshot store. Values are JSON documents;
// writes are last-write-wins with no transaction semantics.
type Store interface {
	// GetJSON unmarshals the value under key into dst, reporting whether the
	// key existed.
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	// SetJSON serialises v as JSON and stores it under key.
	SetJSON(ctx context.Context, key string, v any) error
	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

// Memory is an in-process Store used as the default backend and in tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// GetJSON implements Store.
func (m *Memory) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON implements Store.
func (m *Memory) SetJSON(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}
