package middleware

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fit-agent/internal/domain"
	"fit-agent/internal/logger"
)

// RateLimiter é o ponto de enforcement de rate limiting. Cada rota recebe
// o middleware da sua classe na própria registração, então a cobertura é
// estrutural e auditável no wiring de rotas.
type RateLimiter struct {
	service domain.RateLimiter
	logger  domain.Logger
}

// NewRateLimiter cria o middleware de enforcement sobre o serviço de decisão
func NewRateLimiter(service domain.RateLimiter, log domain.Logger) *RateLimiter {
	return &RateLimiter{
		service: service,
		logger:  log,
	}
}

// ForClass retorna o handler de enforcement para uma classe de endpoint
func (rl *RateLimiter) ForClass(class domain.EndpointClass) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := GetClientIP(c)

		var userID string
		if user, ok := CurrentUser(c); ok {
			userID = user.ID.String()
		}

		result, err := rl.service.Check(c.Request.Context(), domain.RateLimitRequest{
			Class:    class,
			UserID:   userID,
			ClientIP: clientIP,
			Path:     c.Request.URL.Path,
		})
		if err != nil {
			// Falha interna do limiter não é exaustão: propaga como erro
			// não classificado para a fronteira de dispatch
			abortWithError(c, fmt.Errorf("rate limiter check failed: %w", err))
			return
		}

		// Requisições isentas não recebem headers de cota: nenhum contador
		// foi consultado
		if !result.Exempt {
			setRateLimitHeaders(c, result)
		}

		if !result.Allowed {
			rule := rl.service.Rule(class)
			logger.LogRateLimitViolation(c.Request.Context(), rl.logger, result.Key, c.Request.URL.Path, rule, c.Request.Header)

			abortWithError(c, domain.NewRateLimitError(
				fmt.Sprintf("quota %s exhausted for %s on class %s", rule.Rate, result.Key, class),
			).WithDetails(map[string]interface{}{
				"limit":      result.Limit,
				"remaining":  result.Remaining,
				"reset_time": result.ResetTime.Unix(),
			}))
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders publica os headers consultivos de cota em toda
// resposta, sucesso ou rejeição, para backoff do lado do cliente
func setRateLimitHeaders(c *gin.Context, result *domain.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime.Unix(), 10))
}

// GetClientIP extrai o IP do cliente considerando proxies e load balancers.
// Prioridade: X-Forwarded-For > X-Real-IP > RemoteAddr.
func GetClientIP(c *gin.Context) string {
	// X-Forwarded-For pode conter múltiplos IPs; o primeiro é o cliente
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			clientIP := strings.TrimSpace(ips[0])
			if clientIP != "" {
				return clientIP
			}
		}
	}

	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}

	return c.Request.RemoteAddr
}
