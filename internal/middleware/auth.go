package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"fit-agent/internal/domain"
	"fit-agent/internal/logger"
)

// CurrentUserKey é a chave do principal autenticado no contexto do gin
const CurrentUserKey = "current_user"

// TokenValidator valida um token bearer e devolve o principal associado
type TokenValidator interface {
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// RequireAuth valida o header Authorization e anexa o principal ao
// contexto antes do resolver de identificadores do rate limiter rodar.
// Sem credencial válida a requisição falha com Authentication (401).
func RequireAuth(validator TokenValidator, log domain.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			abortWithError(c, domain.NewAuthenticationError(
				"missing bearer token",
				"Missing or invalid credentials.",
			))
			return
		}

		user, err := validator.CurrentUser(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Request = c.Request.WithContext(
			logger.ContextWithUserID(c.Request.Context(), user.ID.String()))
		c.Next()
	}
}

// CurrentUser retorna o principal autenticado da requisição, se houver
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}

// extractBearerToken extrai o token do header Authorization
func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// abortWithError registra o erro para a fronteira de dispatch e interrompe
// a cadeia de handlers
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
