package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry[int]("engine")

	require.NoError(t, registry.Register("gin", 1))
	require.NoError(t, registry.Register("echo", 2))
	err := registry.Register("gin", 3)
	assert.EqualError(t, err, `engine "gin" is already registered`)

	value, ok := registry.Get("gin")
	assert.True(t, ok)
	assert.Equal(t, 1, value)
	assert.False(t, registry.Has("Gin"))
	assert.Equal(t, []string{"echo", "gin"}, registry.Keys())
	assert.Equal(t, 2, registry.Size())

	assert.Panics(t, func() { registry.MustRegister("echo", 4) })
}

func TestRegistry_Concurrent(t *testing.T) {
	registry := NewRegistry[string]("item")
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_ = registry.Register(key, key)
			registry.Has(key)
		}(key)
	}
	wg.Wait()
	assert.Equal(t, keys, registry.Keys())
}
