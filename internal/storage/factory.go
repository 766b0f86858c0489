package storage

import (
	"fmt"

	"fit-agent/internal/config"
	"fit-agent/internal/domain"
)

// NewCounterStore cria o counter store configurado.
// "memory" é o padrão para instância única; "redis" habilita contadores
// compartilhados entre processos.
func NewCounterStore(cfg *config.Config, logger domain.Logger) (domain.CounterStore, error) {
	switch cfg.StorageBackend {
	case "memory":
		return NewMemoryStore(logger), nil

	case "redis":
		store, err := NewRedisStore(cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis counter store: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown counter store backend %q", cfg.StorageBackend)
	}
}
