package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fit-agent/internal/domain"
)

// TestLoadConfig_Defaults testa os valores padrão de configuração
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "fit_agent.db", cfg.DatabaseURL)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, 168, cfg.TokenTTLHours)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.True(t, cfg.Debug)

	// Cotas padrão carregadas
	assert.Equal(t, 5, cfg.Quotas.Rule(domain.ClassAIWorkoutPlan).Rate.Count)
	assert.Equal(t, 1000, cfg.Quotas.Default.Rate.Count)

	// Loopback isento por padrão
	assert.Contains(t, cfg.ExemptIPs, "127.0.0.1")
	assert.Contains(t, cfg.ExemptIPs, "::1")
}

// TestLoadConfig_CustomValues testa overrides via variáveis de ambiente
func TestLoadConfig_CustomValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_STORAGE", "redis")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("TOKEN_TTL_HOURS", "24")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis", cfg.StorageBackend)
	assert.Equal(t, "redis.internal:6380", cfg.RedisAddr())
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 24, cfg.TokenTTLHours)
}

// TestLoadConfig_QuotaOverrides testa a sobrescrita de cotas por classe
func TestLoadConfig_QuotaOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_AI_WORKOUT_PLAN", "10/day")
	t.Setenv("RATE_LIMIT_AUTH_LOGIN", "20/minute")
	t.Setenv("RATE_LIMIT_DEFAULT", "500/hour")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	aiRule := cfg.Quotas.Rule(domain.ClassAIWorkoutPlan)
	assert.Equal(t, 10, aiRule.Rate.Count)
	assert.Equal(t, 24*time.Hour, aiRule.Rate.Window)
	// Escopo e classe da regra base são preservados
	assert.Equal(t, domain.ScopeUser, aiRule.Scope)
	assert.Equal(t, domain.ClassAIWorkoutPlan, aiRule.Class)

	loginRule := cfg.Quotas.Rule(domain.ClassAuthLogin)
	assert.Equal(t, 20, loginRule.Rate.Count)
	assert.Equal(t, time.Minute, loginRule.Rate.Window)
	assert.Equal(t, domain.ScopeIP, loginRule.Scope)

	assert.Equal(t, 500, cfg.Quotas.Default.Rate.Count)

	// Classes sem override mantêm o padrão
	assert.Equal(t, 5, cfg.Quotas.Rule(domain.ClassAuthRegister).Rate.Count)
}

// TestLoadConfig_InvalidQuotaOverride testa a rejeição de expressões inválidas
func TestLoadConfig_InvalidQuotaOverride(t *testing.T) {
	t.Setenv("RATE_LIMIT_AI_WORKOUT_PLAN", "many/day")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_AI_WORKOUT_PLAN")
}

// TestLoadConfig_ExemptIPs testa a extensão da lista de IPs isentos
func TestLoadConfig_ExemptIPs(t *testing.T) {
	t.Setenv("RATE_LIMIT_EXEMPT_IPS", "10.0.0.5, 10.0.0.6 ,,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Contains(t, cfg.ExemptIPs, "127.0.0.1")
	assert.Contains(t, cfg.ExemptIPs, "10.0.0.5")
	assert.Contains(t, cfg.ExemptIPs, "10.0.0.6")
	assert.NotContains(t, cfg.ExemptIPs, "")
}

// TestLoadConfig_Validation testa a validação de valores inutilizáveis
func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Should reject non-numeric port", "SERVER_PORT", "not-a-port"},
		{"Should reject non-numeric redis db", "REDIS_DB", "abc"},
		{"Should reject out-of-range redis db", "REDIS_DB", "42"},
		{"Should reject zero token ttl", "TOKEN_TTL_HOURS", "0"},
		{"Should reject unknown storage backend", "RATE_LIMIT_STORAGE", "etcd"},
		{"Should reject invalid debug flag", "DEBUG", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
