package utils

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a thread-safe name to value table. Keys are case-sensitive
// and may only be registered once.
type Registry[V any] struct {
	mu    sync.RWMutex
	kind  string
	items map[string]V
}

// NewRegistry creates an empty registry. kind names the registered values
// in error messages.
func NewRegistry[V any](kind string) *Registry[V] {
	return &Registry[V]{
		kind:  kind,
		items: make(map[string]V),
	}
}

// Register adds value under key
func (r *Registry[V]) Register(key string, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%s %q is already registered", r.kind, key)
	}
	r.items[key] = value
	return nil
}

// MustRegister is Register for package initialization
func (r *Registry[V]) MustRegister(key string, value V) {
	if err := r.Register(key, value); err != nil {
		panic(err)
	}
}

// Get retrieves the value registered under key
func (r *Registry[V]) Get(key string) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// Has reports whether key is registered
func (r *Registry[V]) Has(key string) bool {
	_, exists := r.Get(key)
	return exists
}

// Keys returns the registered keys in sorted order
func (r *Registry[V]) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.items))
	for key := range r.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Size returns the number of registered values
func (r *Registry[V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
