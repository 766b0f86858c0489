package storage

import (
	"context"
	"sync"
	"time"

	"fit-agent/internal/domain"
)

// memoryCounter é o contador de janela fixa de uma única chave.
// Cada contador carrega o próprio mutex: o incremento-e-comparação de uma
// chave nunca serializa requisições de chaves não relacionadas.
type memoryCounter struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
	window      time.Duration
}

// MemoryStore implementa domain.CounterStore em memória local.
// Contadores não sobrevivem a restart e não são compartilhados entre
// processos; para múltiplas instâncias use o RedisStore.
type MemoryStore struct {
	mu       sync.RWMutex
	counters map[string]*memoryCounter
	logger   domain.Logger
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore cria uma nova instância do MemoryStore
func NewMemoryStore(logger domain.Logger) *MemoryStore {
	store := &MemoryStore{
		counters: make(map[string]*memoryCounter),
		logger:   logger,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	go store.janitor()

	if logger != nil {
		logger.Info("Memory counter store initialized", nil)
	}

	return store
}

// Increment incrementa o contador da chave, reiniciando a janela de forma
// lazy quando ela já expirou, e retorna a contagem e o instante de reset
func (m *MemoryStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	counter := m.getOrCreate(key, window)

	counter.mu.Lock()
	defer counter.mu.Unlock()

	now := m.now()
	if now.Sub(counter.windowStart) >= counter.window {
		counter.count = 0
		counter.windowStart = now
	}

	counter.count++
	return counter.count, counter.windowStart.Add(counter.window), nil
}

// Get retorna o estado atual de um contador, ou nil se não existir
func (m *MemoryStore) Get(ctx context.Context, key string) (*domain.CounterStatus, error) {
	m.mu.RLock()
	counter, exists := m.counters[key]
	m.mu.RUnlock()

	if !exists {
		return nil, nil
	}

	counter.mu.Lock()
	defer counter.mu.Unlock()

	// Janela expirada equivale a contador inexistente
	if m.now().Sub(counter.windowStart) >= counter.window {
		return nil, nil
	}

	return &domain.CounterStatus{
		Key:         key,
		Count:       counter.count,
		WindowStart: counter.windowStart,
		Window:      counter.window,
	}, nil
}

// Reset limpa o contador de uma chave
func (m *MemoryStore) Reset(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.counters, key)
	m.mu.Unlock()
	return nil
}

// Health verifica se o store está saudável
func (m *MemoryStore) Health(ctx context.Context) error {
	m.mu.RLock()
	size := len(m.counters)
	m.mu.RUnlock()

	if m.logger != nil {
		m.logger.Debug("Memory counter store health check", map[string]interface{}{
			"entries": size,
		})
	}
	return nil
}

// Close encerra o janitor e descarta os contadores
func (m *MemoryStore) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	m.counters = make(map[string]*memoryCounter)
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Info("Memory counter store closed", nil)
	}
	return nil
}

// getOrCreate busca o contador da chave, criando sob o lock do mapa quando
// ainda não existe. O lock do mapa protege apenas o lookup; a mutação do
// contador fica sob o mutex da própria entrada.
func (m *MemoryStore) getOrCreate(key string, window time.Duration) *memoryCounter {
	m.mu.RLock()
	counter, exists := m.counters[key]
	m.mu.RUnlock()

	if exists {
		return counter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Outra goroutine pode ter criado entre os locks
	if counter, exists = m.counters[key]; exists {
		return counter
	}

	counter = &memoryCounter{
		windowStart: m.now(),
		window:      window,
	}
	m.counters[key] = counter
	return counter
}

// janitor remove contadores expirados periodicamente. A correção não
// depende dele (o reset é lazy); serve apenas para conter o crescimento
// do mapa.
func (m *MemoryStore) janitor() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.removeExpired()
		case <-m.stop:
			return
		}
	}
}

// removeExpired descarta contadores cuja janela expirou há mais de um ciclo
func (m *MemoryStore) removeExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0

	for key, counter := range m.counters {
		counter.mu.Lock()
		expired := now.Sub(counter.windowStart) >= 2*counter.window
		counter.mu.Unlock()

		if expired {
			delete(m.counters, key)
			removed++
		}
	}

	if removed > 0 && m.logger != nil {
		m.logger.Debug("Memory counter store cleanup completed", map[string]interface{}{
			"removed": removed,
		})
	}
}
