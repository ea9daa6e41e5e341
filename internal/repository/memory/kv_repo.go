package memory

import (
	"context"
	"sync"

	"github.com/asv-bible-study-api/internal/repository"
)

// Ensure KeyValueRepository implements repository.KeyValueStore
var _ repository.KeyValueStore = (*KeyValueRepository)(nil)

// KeyValueRepository keeps records in process memory
type KeyValueRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKeyValueRepository creates an empty in-memory store
func NewKeyValueRepository() *KeyValueRepository {
	return &KeyValueRepository{values: make(map[string]string)}
}

// Get returns the value stored under key
func (r *KeyValueRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

// Set stores value under key
func (r *KeyValueRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = value
	return nil
}
