package domain

import (
	"context"
	"time"
)

// CounterStore define a capacidade de contagem por janela usada pelo rate
// limiter. A implementação padrão é memória local com lock por chave,
// substituível por um contador distribuído sem mudar os call sites.
type CounterStore interface {
	// Increment incrementa o contador da chave dentro da janela e retorna
	// a contagem resultante e o instante de reset da janela corrente.
	// A janela é reiniciada de forma lazy quando já expirou.
	Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error)

	// Get retorna o estado atual de um contador, ou nil se não existir
	Get(ctx context.Context, key string) (*CounterStatus, error)

	// Reset limpa o contador de uma chave
	Reset(ctx context.Context, key string) error

	// Health verifica se o store está saudável
	Health(ctx context.Context) error

	// Close libera os recursos do store
	Close() error
}

// RateLimiter define o ponto de decisão de rate limiting consultado pelo
// middleware de enforcement
type RateLimiter interface {
	// Check resolve identificador, isenção e regra de cota para a
	// requisição e decide se ela pode prosseguir. Exaustão de cota é um
	// resultado normal (Allowed=false), nunca um erro.
	Check(ctx context.Context, req RateLimitRequest) (*RateLimitResult, error)

	// Rule retorna a regra de cota aplicável a uma classe de endpoint
	Rule(class EndpointClass) QuotaRule

	// Reset limpa o estado de rate limit de uma chave (uso em testes e
	// operação manual)
	Reset(ctx context.Context, class EndpointClass, key string) error
}

// Logger define a interface para logging estruturado
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
	WithContext(ctx context.Context) Logger
}
