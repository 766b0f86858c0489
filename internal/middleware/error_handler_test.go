package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fit-agent/internal/domain"
)

func newErrorRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.Use(NewErrorHandler(nopLogger{}))
	router.GET("/test", handler)
	return router
}

func doRequest(router *gin.Engine) (*httptest.ResponseRecorder, ErrorResponse) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	var body ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

// TestErrorHandler_TypedError testa o dispatch de um erro de domínio
func TestErrorHandler_TypedError(t *testing.T) {
	router := newErrorRouter(func(c *gin.Context) {
		_ = c.Error(domain.NewConflictError(
			"user with email ana@example.com already exists",
			"An account with this email already exists.",
		))
		c.Abort()
	})

	w, body := doRequest(router)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(domain.KindConflict), body.Error)
	assert.Equal(t, "An account with this email already exists.", body.Message)
	assert.NotEmpty(t, body.RequestID)

	// A mensagem técnica não cruza a fronteira
	assert.NotContains(t, w.Body.String(), "ana@example.com")
}

// TestErrorHandler_UntypedError testa o embrulho de erros não classificados
func TestErrorHandler_UntypedError(t *testing.T) {
	router := newErrorRouter(func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection reset by peer"))
		c.Abort()
	})

	w, body := doRequest(router)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, string(domain.KindUnclassified), body.Error)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

// TestErrorHandler_ValidationDetails testa que apenas erros de validação
// expõem detalhes por campo
func TestErrorHandler_ValidationDetails(t *testing.T) {
	t.Run("Validation errors carry field details", func(t *testing.T) {
		router := newErrorRouter(func(c *gin.Context) {
			_ = c.Error(domain.NewValidationError("request validation failed", "Invalid data provided.").
				WithDetails(map[string]interface{}{
					"email": "Must be a valid email address",
				}))
			c.Abort()
		})

		w, body := doRequest(router)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		details, ok := body.Details.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Must be a valid email address", details["email"])
	})

	t.Run("Other kinds never expose details", func(t *testing.T) {
		router := newErrorRouter(func(c *gin.Context) {
			_ = c.Error(domain.NewRateLimitError("quota exhausted for user:42").
				WithDetails(map[string]interface{}{
					"limit": 5,
				}))
			c.Abort()
		})

		w, body := doRequest(router)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Nil(t, body.Details)
		assert.NotContains(t, w.Body.String(), "user:42")
	})
}

// TestErrorHandler_PanicRecovery testa a degradação de panics para 500
func TestErrorHandler_PanicRecovery(t *testing.T) {
	router := newErrorRouter(func(c *gin.Context) {
		panic("nil map write in handler")
	})

	w, body := doRequest(router)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, string(domain.KindUnclassified), body.Error)
	assert.NotContains(t, w.Body.String(), "nil map write")
}

// TestErrorHandler_NoError testa que respostas de sucesso passam intactas
func TestErrorHandler_NoError(t *testing.T) {
	router := newErrorRouter(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())
}

// TestRequestID testa a propagação e geração do request id
func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("Should propagate an incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "incoming-id")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "incoming-id", w.Body.String())
		assert.Equal(t, "incoming-id", w.Header().Get("X-Request-ID"))
	})

	t.Run("Should generate an id when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))
	})
}
