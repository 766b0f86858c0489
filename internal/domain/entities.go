package domain

import "time"

// LimiterScope define contra qual identificador uma cota é contabilizada
type LimiterScope string

const (
	// ScopeUser usa "user:<id>" quando há principal autenticado, senão o IP
	ScopeUser LimiterScope = "user"
	// ScopeIP ignora autenticação e usa sempre o IP de origem
	ScopeIP LimiterScope = "ip"
)

// EndpointClass define as classes lógicas de endpoints sujeitas a rate limiting
type EndpointClass string

const (
	ClassAuthRegister      EndpointClass = "auth_register"
	ClassAuthLogin         EndpointClass = "auth_login"
	ClassAuthResetPassword EndpointClass = "auth_reset_password"
	ClassAIWorkoutPlan     EndpointClass = "ai_workout_plan"
	ClassAINutritionPlan   EndpointClass = "ai_nutrition_plan"
	ClassDataPost          EndpointClass = "data_post"
	ClassDataGet           EndpointClass = "data_get"
	ClassDefault           EndpointClass = "default"
)

// QuotaRule define a regra de cota aplicável a uma classe de endpoint
type QuotaRule struct {
	Class       EndpointClass `json:"class"`
	Scope       LimiterScope  `json:"scope"`
	Rate        Rate          `json:"rate"`
	Description string        `json:"description"`
}

// QuotaTable mapeia classes de endpoint para regras de cota.
// Imutável após o startup; classes sem entrada usam a regra Default.
type QuotaTable struct {
	Default QuotaRule
	Rules   map[EndpointClass]QuotaRule
}

// Rule retorna a regra aplicável a uma classe, com fallback para a regra padrão
func (t QuotaTable) Rule(class EndpointClass) QuotaRule {
	if rule, ok := t.Rules[class]; ok {
		return rule
	}
	return t.Default
}

// DefaultQuotaTable retorna a tabela de cotas padrão do sistema.
// Endpoints de AI são os mais restritos porque cada chamada tem custo real
// junto ao provedor; endpoints de auth são limitados por IP contra
// credential stuffing; endpoints de dados são generosos para uso normal.
func DefaultQuotaTable() QuotaTable {
	return QuotaTable{
		Default: QuotaRule{
			Class:       ClassDefault,
			Scope:       ScopeUser,
			Rate:        MustParseRate("1000/hour"),
			Description: "Global fallback limit",
		},
		Rules: map[EndpointClass]QuotaRule{
			ClassAuthRegister: {
				Class:       ClassAuthRegister,
				Scope:       ScopeIP,
				Rate:        MustParseRate("5/hour"),
				Description: "Account registration",
			},
			ClassAuthLogin: {
				Class:       ClassAuthLogin,
				Scope:       ScopeIP,
				Rate:        MustParseRate("10/hour"),
				Description: "Login attempts",
			},
			ClassAuthResetPassword: {
				Class:       ClassAuthResetPassword,
				Scope:       ScopeIP,
				Rate:        MustParseRate("3/hour"),
				Description: "Password reset requests",
			},
			ClassAIWorkoutPlan: {
				Class:       ClassAIWorkoutPlan,
				Scope:       ScopeUser,
				Rate:        MustParseRate("5/day"),
				Description: "AI workout plan generation",
			},
			ClassAINutritionPlan: {
				Class:       ClassAINutritionPlan,
				Scope:       ScopeUser,
				Rate:        MustParseRate("5/day"),
				Description: "AI nutrition plan generation",
			},
			ClassDataPost: {
				Class:       ClassDataPost,
				Scope:       ScopeUser,
				Rate:        MustParseRate("100/hour"),
				Description: "Data writes",
			},
			ClassDataGet: {
				Class:       ClassDataGet,
				Scope:       ScopeUser,
				Rate:        MustParseRate("200/hour"),
				Description: "Data reads",
			},
		},
	}
}

// RateLimitRequest agrega o que o serviço precisa para decidir uma requisição
type RateLimitRequest struct {
	Class    EndpointClass
	UserID   string // vazio quando não autenticado
	ClientIP string
	Path     string
}

// RateLimitResult representa o resultado de uma verificação de rate limit
type RateLimitResult struct {
	Allowed   bool          `json:"allowed"`
	Exempt    bool          `json:"exempt"`
	Key       string        `json:"key"`
	Class     EndpointClass `json:"class"`
	Limit     int           `json:"limit"`
	Remaining int           `json:"remaining"`
	ResetTime time.Time     `json:"resetTime"`
}

// CounterStatus representa o estado atual de um contador de janela fixa
type CounterStatus struct {
	Key         string        `json:"key"`
	Count       int           `json:"count"`
	WindowStart time.Time     `json:"windowStart"`
	Window      time.Duration `json:"window"`
}

// ExemptionList é a lista estática de IPs isentos de rate limiting
type ExemptionList struct {
	ips map[string]struct{}
}

// NewExemptionList cria uma lista de isenção a partir dos IPs configurados
func NewExemptionList(ips []string) *ExemptionList {
	set := make(map[string]struct{}, len(ips))
	for _, ip := range ips {
		set[ip] = struct{}{}
	}
	return &ExemptionList{ips: set}
}

// Contains verifica se um IP está na lista de isenção
func (e *ExemptionList) Contains(ip string) bool {
	if e == nil {
		return false
	}
	_, ok := e.ips[ip]
	return ok
}
