package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fit-agent/internal/logger"
)

// RequestIDKey é a chave do request id no contexto do gin
const RequestIDKey = "request_id"

// RequestID propaga o X-Request-ID recebido ou gera um novo UUID,
// disponibilizando-o para logs e respostas de erro. O id, o IP e a rota
// também entram no contexto da requisição, de onde Logger.WithContext os
// extrai em qualquer camada abaixo do middleware.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		ctx := logger.ContextWithRequestInfo(
			c.Request.Context(), requestID, GetClientIP(c), "", c.Request.URL.Path)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID retorna o request id da requisição corrente, buscando no
// contexto da requisição quando o gin não o tem
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return logger.GetRequestID(c.Request.Context())
}
