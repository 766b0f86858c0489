package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"fit-agent/internal/domain"
)

// Config representa todas as configurações da aplicação
type Config struct {
	// Server Configuration
	ServerPort string
	GinMode    string

	// Logging Configuration
	LogLevel  string
	LogFormat string

	// Database Configuration
	// DSN postgres:// para produção; qualquer outro valor é tratado como
	// caminho de arquivo sqlite (padrão de desenvolvimento)
	DatabaseURL string

	// Redis Configuration (contador distribuído opcional)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Counter store: "memory" (padrão) ou "redis"
	StorageBackend string

	// Security
	SecretKey     string
	TokenTTLHours int

	// AI Provider
	OpenAIAPIKey string
	OpenAIModel  string

	// Rate Limiting
	Quotas    domain.QuotaTable
	ExemptIPs []string

	// App Settings
	Environment string
	Debug       bool
}

// envOverrides mapeia classes de endpoint para as variáveis de ambiente que
// permitem sobrescrever as cotas padrão
var envOverrides = map[domain.EndpointClass]string{
	domain.ClassDefault:           "RATE_LIMIT_DEFAULT",
	domain.ClassAuthRegister:      "RATE_LIMIT_AUTH_REGISTER",
	domain.ClassAuthLogin:         "RATE_LIMIT_AUTH_LOGIN",
	domain.ClassAuthResetPassword: "RATE_LIMIT_AUTH_RESET_PASSWORD",
	domain.ClassAIWorkoutPlan:     "RATE_LIMIT_AI_WORKOUT_PLAN",
	domain.ClassAINutritionPlan:   "RATE_LIMIT_AI_NUTRITION_PLAN",
	domain.ClassDataPost:          "RATE_LIMIT_DATA_POST",
	domain.ClassDataGet:           "RATE_LIMIT_DATA_GET",
}

// LoadConfig carrega as configurações do .env e das variáveis de ambiente
func LoadConfig() (*Config, error) {
	// Carrega o arquivo .env se existir
	if err := godotenv.Load(); err != nil {
		// Sem .env, segue com variáveis do sistema
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	config := &Config{
		ServerPort: getEnvWithDefault("SERVER_PORT", "8080"),
		GinMode:    getEnvWithDefault("GIN_MODE", "debug"),

		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "json"),

		DatabaseURL: getEnvWithDefault("DATABASE_URL", "fit_agent.db"),

		RedisHost:     getEnvWithDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvWithDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvWithDefault("REDIS_PASSWORD", ""),

		StorageBackend: getEnvWithDefault("RATE_LIMIT_STORAGE", "memory"),

		SecretKey: getEnvWithDefault("SECRET_KEY", "insecure-secret-key-change-in-production"),

		OpenAIAPIKey: getEnvWithDefault("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnvWithDefault("OPENAI_MODEL", "gpt-4o"),

		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	redisDB, err := strconv.Atoi(getEnvWithDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}
	config.RedisDB = redisDB

	tokenTTL, err := strconv.Atoi(getEnvWithDefault("TOKEN_TTL_HOURS", "168"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS value: %w", err)
	}
	config.TokenTTLHours = tokenTTL

	debug, err := strconv.ParseBool(getEnvWithDefault("DEBUG", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEBUG value: %w", err)
	}
	config.Debug = debug

	quotas, err := loadQuotaTable()
	if err != nil {
		return nil, fmt.Errorf("failed to load quota table: %w", err)
	}
	config.Quotas = quotas

	config.ExemptIPs = loadExemptIPs()

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// loadQuotaTable parte da tabela padrão e aplica overrides do ambiente
func loadQuotaTable() (domain.QuotaTable, error) {
	table := domain.DefaultQuotaTable()

	for class, envKey := range envOverrides {
		expr := os.Getenv(envKey)
		if expr == "" {
			continue
		}

		rate, err := domain.ParseRate(expr)
		if err != nil {
			return domain.QuotaTable{}, fmt.Errorf("invalid %s: %w", envKey, err)
		}

		if class == domain.ClassDefault {
			table.Default.Rate = rate
			continue
		}

		rule := table.Rules[class]
		rule.Rate = rate
		table.Rules[class] = rule
	}

	return table, nil
}

// loadExemptIPs carrega a lista de IPs isentos de rate limiting.
// Loopback é isento por padrão; IPs adicionais (load balancer, rede
// interna) entram via RATE_LIMIT_EXEMPT_IPS separados por vírgula.
func loadExemptIPs() []string {
	ips := []string{"127.0.0.1", "::1"}

	extra := os.Getenv("RATE_LIMIT_EXEMPT_IPS")
	if extra == "" {
		return ips
	}

	for _, ip := range strings.Split(extra, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

// validateConfig valida se as configurações são utilizáveis
func validateConfig(config *Config) error {
	if config.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT must not be empty")
	}

	if _, err := strconv.Atoi(config.ServerPort); err != nil {
		return fmt.Errorf("SERVER_PORT must be numeric: %w", err)
	}

	if config.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY must not be empty")
	}

	if config.TokenTTLHours <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be greater than 0")
	}

	if config.RedisDB < 0 || config.RedisDB > 15 {
		return fmt.Errorf("REDIS_DB must be between 0 and 15")
	}

	switch config.StorageBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("RATE_LIMIT_STORAGE must be memory or redis, got %q", config.StorageBackend)
	}

	return nil
}

// RedisAddr retorna o endereço host:port do Redis
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// getEnvWithDefault retorna o valor da variável de ambiente ou um valor padrão
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
