package utils

import (
	"os"
	"sync"
	"time"
)

// cacheEntry holds a cached value plus the file metadata it was derived from
type cacheEntry[V any] struct {
	value   V
	modTime time.Time
	size    int64
}

// FileCache caches values derived from files. An entry is only served while
// the file's modification time and size are unchanged.
type FileCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry[V]
}

// NewFileCache creates an empty cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{
		entries: make(map[string]*cacheEntry[V]),
	}
}

// Get returns the value cached for path if the file has not changed since it
// was stored. Stale entries are evicted.
func (c *FileCache[V]) Get(path string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}

	if stat, err := os.Stat(path); err == nil {
		if stat.ModTime().Equal(entry.modTime) && stat.Size() == entry.size {
			return entry.value, true
		}
	}

	c.Delete(path)
	return zero, false
}

// Put stores value for path, stamping it with the file's current metadata
func (c *FileCache[V]) Put(path string, value V) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = &cacheEntry[V]{
		value:   value,
		modTime: stat.ModTime(),
		size:    stat.Size(),
	}
	return nil
}

// Delete evicts path
func (c *FileCache[V]) Delete(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Clear evicts everything
func (c *FileCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry[V])
}

// Len returns the number of cached entries
func (c *FileCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
