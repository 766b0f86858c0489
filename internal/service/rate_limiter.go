package service

import (
	"context"
	"fmt"

	"fit-agent/internal/domain"
)

// HealthPath é a rota de liveness, sempre isenta de rate limiting
const HealthPath = "/health"

// RateLimiterService implementa a decisão de rate limiting: resolução de
// identificador, política de isenção, tabela de cotas e consulta ao
// counter store. Separado do middleware de enforcement.
type RateLimiterService struct {
	store      domain.CounterStore
	table      domain.QuotaTable
	exemptions *domain.ExemptionList
	logger     domain.Logger
}

// NewRateLimiterService cria uma nova instância do serviço
func NewRateLimiterService(
	store domain.CounterStore,
	table domain.QuotaTable,
	exemptIPs []string,
	logger domain.Logger,
) *RateLimiterService {
	return &RateLimiterService{
		store:      store,
		table:      table,
		exemptions: domain.NewExemptionList(exemptIPs),
		logger:     logger,
	}
}

// Check decide se a requisição pode prosseguir. Requisições isentas nunca
// tocam o contador; nas demais o incremento acontece antes da comparação,
// então a tentativa rejeitada também conta.
func (s *RateLimiterService) Check(ctx context.Context, req domain.RateLimitRequest) (*domain.RateLimitResult, error) {
	rule := s.table.Rule(req.Class)

	if s.isExempt(req) {
		s.logger.WithContext(ctx).Debug("Request exempt from rate limiting", map[string]interface{}{
			"path": req.Path,
			"ip":   req.ClientIP,
		})
		return &domain.RateLimitResult{
			Allowed: true,
			Exempt:  true,
			Class:   rule.Class,
			Limit:   rule.Rate.Count,
		}, nil
	}

	key := resolveIdentifier(rule.Scope, req)
	storageKey := buildStorageKey(rule.Class, key)

	count, resetTime, err := s.store.Increment(ctx, storageKey, rule.Rate.Window)
	if err != nil {
		s.logger.WithContext(ctx).Error("Failed to increment counter", err, map[string]interface{}{
			"storage_key": storageKey,
			"class":       string(rule.Class),
		})
		return nil, fmt.Errorf("failed to increment counter: %w", err)
	}

	remaining := rule.Rate.Count - count
	if remaining < 0 {
		remaining = 0
	}

	result := &domain.RateLimitResult{
		Allowed:   count <= rule.Rate.Count,
		Key:       key,
		Class:     rule.Class,
		Limit:     rule.Rate.Count,
		Remaining: remaining,
		ResetTime: resetTime,
	}

	if result.Allowed {
		s.logger.WithContext(ctx).Debug("Request allowed by rate limiter", map[string]interface{}{
			"key":       key,
			"class":     string(rule.Class),
			"count":     count,
			"limit":     rule.Rate.Count,
			"remaining": remaining,
		})
	}

	return result, nil
}

// Rule retorna a regra de cota aplicável a uma classe de endpoint
func (s *RateLimiterService) Rule(class domain.EndpointClass) domain.QuotaRule {
	return s.table.Rule(class)
}

// Reset limpa o estado de rate limit de uma chave
func (s *RateLimiterService) Reset(ctx context.Context, class domain.EndpointClass, key string) error {
	storageKey := buildStorageKey(s.table.Rule(class).Class, key)
	if err := s.store.Reset(ctx, storageKey); err != nil {
		return fmt.Errorf("failed to reset key: %w", err)
	}

	s.logger.WithContext(ctx).Info("Rate limit reset", map[string]interface{}{
		"class": string(class),
		"key":   key,
	})
	return nil
}

// isExempt aplica a política de isenção: liveness probe e IPs da lista
// estática passam sem tocar em nenhum contador
func (s *RateLimiterService) isExempt(req domain.RateLimitRequest) bool {
	if req.Path == HealthPath {
		return true
	}
	return s.exemptions.Contains(req.ClientIP)
}

// resolveIdentifier deriva a chave de rate limit da requisição.
// Escopo user: "user:<id>" quando autenticado, senão o IP de origem.
// Escopo ip: sempre o IP, para que endpoints de auth não tenham a força do
// limite reduzida por identidade.
func resolveIdentifier(scope domain.LimiterScope, req domain.RateLimitRequest) string {
	if scope == domain.ScopeUser && req.UserID != "" {
		return "user:" + req.UserID
	}
	return req.ClientIP
}

// buildStorageKey constrói a chave de storage no formato padrão
func buildStorageKey(class domain.EndpointClass, key string) string {
	return fmt.Sprintf("rate_limit:%s:%s", class, key)
}
