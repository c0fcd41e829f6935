package settings

import (
	"context"
	"sync"

	"github.com/radyosim/backend/internal/domain/providers"
)

// MemoryAdapter is an in-process SettingsStore used when no Redis is
// configured. Values last for the lifetime of the process.
type MemoryAdapter struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryAdapter creates a new in-memory settings adapter
func NewMemoryAdapter() providers.SettingsStore {
	return &MemoryAdapter{
		values: make(map[string]string),
	}
}

// Get retrieves a preference value; ok is false when the key is absent
func (a *MemoryAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	value, ok := a.values[key]
	return value, ok, nil
}

// Set stores a preference value
func (a *MemoryAdapter) Set(ctx context.Context, key, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values[key] = value
	return nil
}

// Delete removes a preference
func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.values, key)
	return nil
}
