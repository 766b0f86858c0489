package storage

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fit-agent/internal/config"
)

// TestNewCounterStore testa a seleção de backend do counter store
func TestNewCounterStore(t *testing.T) {
	t.Run("Should create memory store by default", func(t *testing.T) {
		cfg := &config.Config{StorageBackend: "memory"}

		store, err := NewCounterStore(cfg, nil)
		require.NoError(t, err)
		defer store.Close()

		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("Should create redis store when configured", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		cfg := &config.Config{
			StorageBackend: "redis",
			RedisHost:      mr.Host(),
			RedisPort:      mr.Port(),
		}

		store, err := NewCounterStore(cfg, nil)
		require.NoError(t, err)
		defer store.Close()

		assert.IsType(t, &RedisStore{}, store)
	})

	t.Run("Should reject unknown backends", func(t *testing.T) {
		cfg := &config.Config{StorageBackend: "etcd"}

		store, err := NewCounterStore(cfg, nil)
		assert.Error(t, err)
		assert.Nil(t, store)
		assert.Contains(t, err.Error(), "unknown counter store backend")
	})
}
