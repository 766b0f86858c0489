package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAppError_StatusCode testa o mapeamento de tipo de erro para status HTTP
func TestAppError_StatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected int
	}{
		{
			name:     "Validation maps to 400",
			err:      NewValidationError("bad field", "Invalid data provided."),
			expected: http.StatusBadRequest,
		},
		{
			name:     "Authentication maps to 401",
			err:      NewAuthenticationError("bad token", "Missing or invalid credentials."),
			expected: http.StatusUnauthorized,
		},
		{
			name:     "Authorization maps to 403",
			err:      NewAuthorizationError("not owner", "You do not have access to this resource."),
			expected: http.StatusForbidden,
		},
		{
			name:     "NotFound maps to 404",
			err:      NewNotFoundError("no such plan", "The requested resource was not found."),
			expected: http.StatusNotFound,
		},
		{
			name:     "Conflict maps to 409",
			err:      NewConflictError("duplicate email", "An account with this email already exists."),
			expected: http.StatusConflict,
		},
		{
			name:     "BusinessLogic maps to 422",
			err:      NewBusinessLogicError("plan overlaps", "This plan conflicts with an existing one."),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "RateLimit maps to 429",
			err:      NewRateLimitError("quota exhausted"),
			expected: http.StatusTooManyRequests,
		},
		{
			name:     "AIServiceFailure maps to 503",
			err:      NewAIServiceError("provider timeout", errors.New("context deadline exceeded")),
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "ExternalServiceFailure maps to 503",
			err:      NewExternalServiceError("db unavailable", errors.New("connection refused")),
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "Unclassified maps to 500",
			err:      NewUnclassifiedError(errors.New("boom")),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Unknown kind falls back to 500",
			err:      &AppError{Kind: ErrorKind("made_up")},
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.StatusCode())
		})
	}
}

// TestAppError_Messages testa a separação entre mensagem técnica e amigável
func TestAppError_Messages(t *testing.T) {
	err := NewRateLimitError("quota 5/day exhausted for user:42 on class ai_workout_plan")

	assert.Equal(t, "quota 5/day exhausted for user:42 on class ai_workout_plan", err.Message)
	assert.Equal(t,
		"You have reached the maximum number of requests allowed. Please try again later.",
		err.UserMessage)
	assert.NotContains(t, err.UserMessage, "user:42")
}

// TestAppError_UserMessageFallback testa o fallback quando não há mensagem amigável
func TestAppError_UserMessageFallback(t *testing.T) {
	err := NewValidationError("missing field email", "")
	assert.Equal(t, "missing field email", err.UserMessage)
}

// TestAppError_Unwrap testa o encadeamento de causas
func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewExternalServiceError("redis unavailable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "redis unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}

// TestAppError_WithDetails testa o anexo de contexto estruturado
func TestAppError_WithDetails(t *testing.T) {
	err := NewValidationError("request validation failed", "Invalid data provided.").
		WithDetails(map[string]interface{}{
			"email": "Must be a valid email address",
		})

	assert.Equal(t, "Must be a valid email address", err.Details["email"])
}

// TestAsAppError testa a extração de erros tipados de cadeias
func TestAsAppError(t *testing.T) {
	t.Run("Should return the typed error untouched", func(t *testing.T) {
		original := NewConflictError("duplicate", "Already exists.")
		got := AsAppError(original)
		assert.Same(t, original, got)
	})

	t.Run("Should find the typed error inside a wrapped chain", func(t *testing.T) {
		original := NewNotFoundError("no plan", "Not found.")
		wrapped := fmt.Errorf("handler failed: %w", original)
		got := AsAppError(wrapped)
		assert.Same(t, original, got)
	})

	t.Run("Should wrap untyped errors as Unclassified", func(t *testing.T) {
		plain := errors.New("something broke")
		got := AsAppError(plain)
		assert.Equal(t, KindUnclassified, got.Kind)
		assert.ErrorIs(t, got, plain)
		assert.Equal(t, "An unexpected error occurred. Please try again later.", got.UserMessage)
	})
}
