package progress

import (
	"context"
	"maps"
	"sync"
)

// Backend persists the encoded progress state. Save replaces everything
// previously stored; keys absent from values must not survive.
type Backend interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, values map[string]string) error
}

// MemoryBackend is a Backend that keeps values in process memory.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
	saves  int
}

// NewMemoryBackend returns a MemoryBackend seeded with values.
func NewMemoryBackend(values map[string]string) *MemoryBackend {
	return &MemoryBackend{values: maps.Clone(values)}
}

// Load returns a copy of the stored values.
func (m *MemoryBackend) Load(_ context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.values), nil
}

// Save replaces the stored values.
func (m *MemoryBackend) Save(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = maps.Clone(values)
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryBackend) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
