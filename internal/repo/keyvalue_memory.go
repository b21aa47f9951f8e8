package repo

import (
	"context"
	"sync"
)

// InMemoryKeyValueRepository is an in-memory implementation of KeyValueRepository.
type InMemoryKeyValueRepository struct {
	mu       sync.RWMutex
	data     map[string][]byte
	watchers watchers
}

// NewInMemoryKeyValueRepository creates a new instance of InMemoryKeyValueRepository.
func NewInMemoryKeyValueRepository() *InMemoryKeyValueRepository {
	return &InMemoryKeyValueRepository{data: map[string][]byte{}}
}

func (r *InMemoryKeyValueRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *InMemoryKeyValueRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	r.data[key] = append([]byte(nil), value...)
	r.mu.Unlock()
	r.watchers.notify(key)
	return nil
}

func (r *InMemoryKeyValueRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.data, key)
	r.mu.Unlock()
	r.watchers.notify(key)
	return nil
}

func (r *InMemoryKeyValueRepository) Watch(_ context.Context, key string, fn func()) (func(), error) {
	return r.watchers.add(key, fn), nil
}

func (r *InMemoryKeyValueRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = map[string][]byte{}
}
