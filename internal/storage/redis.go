package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fit-agent/internal/domain"
)

// RedisStore implementa domain.CounterStore sobre Redis. É o backend para
// implantações com múltiplas instâncias: INCR é atômico no servidor, então
// duas instâncias nunca admitem uma requisição acima do limite.
type RedisStore struct {
	client redis.Cmdable
	closer func() error
	logger domain.Logger
	now    func() time.Time
}

// NewRedisStore cria uma nova instância do RedisStore
func NewRedisStore(addr, password string, db int, logger domain.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		PoolSize:     20,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if logger != nil {
		logger.Info("Redis connection established", map[string]interface{}{
			"addr": addr,
			"db":   db,
		})
	}

	return &RedisStore{
		client: rdb,
		closer: rdb.Close,
		logger: logger,
		now:    time.Now,
	}, nil
}

// NewRedisStoreWithClient cria um RedisStore sobre um cliente existente.
// Usado nos testes com miniredis.
func NewRedisStoreWithClient(client redis.Cmdable, logger domain.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		closer: func() error { return nil },
		logger: logger,
		now:    time.Now,
	}
}

// Increment incrementa o contador da chave via INCR atômico. A expiração é
// definida apenas quando a chave nasce (primeira requisição da janela),
// então o TTL restante determina o instante de reset.
func (r *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	pipe := r.client.TxPipeline()
	incrCmd := pipe.Incr(ctx, key)
	expireCmd := pipe.ExpireNX(ctx, key, window)
	ttlCmd := pipe.PTTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to increment key %s: %w", key, err)
	}

	count := int(incrCmd.Val())
	_ = expireCmd.Val()

	ttl := ttlCmd.Val()
	if ttl < 0 {
		// Sem TTL não há janela conhecida; assume a janela cheia
		ttl = window
	}

	return count, r.now().Add(ttl), nil
}

// Get retorna o estado atual de um contador, ou nil se não existir
func (r *RedisStore) Get(ctx context.Context, key string) (*domain.CounterStatus, error) {
	pipe := r.client.TxPipeline()
	getCmd := pipe.Get(ctx, key)
	ttlCmd := pipe.PTTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	count, err := getCmd.Int()
	if err != nil {
		return nil, fmt.Errorf("failed to parse counter for key %s: %w", key, err)
	}

	ttl := ttlCmd.Val()
	status := &domain.CounterStatus{
		Key:   key,
		Count: count,
	}
	if ttl > 0 {
		status.Window = ttl
		status.WindowStart = r.now()
	}

	return status, nil
}

// Reset limpa o contador de uma chave
func (r *RedisStore) Reset(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to reset key %s: %w", key, err)
	}
	return nil
}

// Health verifica a conectividade com o Redis
func (r *RedisStore) Health(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Close fecha a conexão com o Redis
func (r *RedisStore) Close() error {
	if r.logger != nil {
		r.logger.Info("Redis counter store closed", nil)
	}
	return r.closer()
}
