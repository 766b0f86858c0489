package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fit-agent/internal/domain"
)

// ErrorResponse é o corpo de resposta de qualquer falha de domínio
type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// NewErrorHandler cria a fronteira única de dispatch de erros: todo erro de
// domínio, venha do handler, do limiter ou da camada de auth, é
// interceptado exatamente uma vez aqui, logado com o detalhe técnico
// completo e renderizado apenas com a mensagem amigável e o status.
// Panics degradam para um 500 genérico pela mesma fronteira.
func NewErrorHandler(log domain.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error("Panic recovered in request handler", nil, map[string]interface{}{
					"panic":      recovered,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"request_id": GetRequestID(c),
				})

				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, ErrorResponse{
						Error:     string(domain.KindUnclassified),
						Message:   "An unexpected error occurred. Please try again later.",
						RequestID: GetRequestID(c),
					})
				}
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := domain.AsAppError(c.Errors.Last().Err)

		log.Error("Request failed", appErr, map[string]interface{}{
			"kind":       string(appErr.Kind),
			"status":     appErr.StatusCode(),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": GetRequestID(c),
			"details":    appErr.Details,
		})

		if c.Writer.Written() {
			return
		}

		response := ErrorResponse{
			Error:     string(appErr.Kind),
			Message:   appErr.UserMessage,
			RequestID: GetRequestID(c),
		}

		// Apenas erros de validação expõem detalhes (mensagens por campo);
		// campos estruturados internos nunca cruzam a fronteira
		if appErr.Kind == domain.KindValidation && len(appErr.Details) > 0 {
			response.Details = appErr.Details
		}

		c.JSON(appErr.StatusCode(), response)
	}
}
