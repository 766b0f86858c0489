package domain

import (
	"errors"
	"net/http"
)

// ErrorKind enumera o conjunto fechado de tipos de erro de domínio
type ErrorKind string

const (
	KindValidation             ErrorKind = "validation_error"
	KindAuthentication         ErrorKind = "authentication_error"
	KindAuthorization          ErrorKind = "authorization_error"
	KindNotFound               ErrorKind = "not_found"
	KindConflict               ErrorKind = "conflict"
	KindBusinessLogic          ErrorKind = "business_logic_error"
	KindRateLimit              ErrorKind = "rate_limit_exceeded"
	KindAIServiceFailure       ErrorKind = "ai_service_error"
	KindExternalServiceFailure ErrorKind = "external_service_error"
	KindUnclassified           ErrorKind = "internal_error"
)

// AppError é o erro de domínio com mensagem técnica (para operadores) e
// mensagem amigável (para clientes). A mensagem técnica e os Details nunca
// cruzam a fronteira de dispatch em direção à resposta HTTP.
type AppError struct {
	Kind        ErrorKind
	Message     string // mensagem técnica, somente logs
	UserMessage string // mensagem exibida ao cliente
	Details     map[string]interface{}
	Err         error // causa encadeada, quando houver
}

// Error retorna a mensagem técnica
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap expõe a causa encadeada para errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode mapeia o tipo de erro para o status HTTP correspondente.
// O switch é exaustivo sobre ErrorKind: adicionar um tipo novo exige
// decidir o status aqui.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBusinessLogic:
		return http.StatusUnprocessableEntity
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindAIServiceFailure, KindExternalServiceFailure:
		return http.StatusServiceUnavailable
	case KindUnclassified:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func newAppError(kind ErrorKind, message, userMessage string) *AppError {
	if userMessage == "" {
		userMessage = message
	}
	return &AppError{Kind: kind, Message: message, UserMessage: userMessage}
}

// WithDetails anexa contexto estruturado ao erro
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause encadeia a causa original do erro
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// NewValidationError cria um erro de dados inválidos (400)
func NewValidationError(message, userMessage string) *AppError {
	return newAppError(KindValidation, message, userMessage)
}

// NewAuthenticationError cria um erro de autenticação (401)
func NewAuthenticationError(message, userMessage string) *AppError {
	return newAppError(KindAuthentication, message, userMessage)
}

// NewAuthorizationError cria um erro de autorização (403)
func NewAuthorizationError(message, userMessage string) *AppError {
	return newAppError(KindAuthorization, message, userMessage)
}

// NewNotFoundError cria um erro de recurso ausente (404)
func NewNotFoundError(message, userMessage string) *AppError {
	return newAppError(KindNotFound, message, userMessage)
}

// NewConflictError cria um erro de estado conflitante (409)
func NewConflictError(message, userMessage string) *AppError {
	return newAppError(KindConflict, message, userMessage)
}

// NewBusinessLogicError cria um erro de regra de negócio (422)
func NewBusinessLogicError(message, userMessage string) *AppError {
	return newAppError(KindBusinessLogic, message, userMessage)
}

// NewRateLimitError cria um erro de cota excedida (429)
func NewRateLimitError(message string) *AppError {
	return newAppError(KindRateLimit, message,
		"You have reached the maximum number of requests allowed. Please try again later.")
}

// NewAIServiceError cria um erro de falha no provedor de AI (503).
// O detalhe do provedor nunca chega ao cliente, apenas aos logs.
func NewAIServiceError(message string, cause error) *AppError {
	return newAppError(KindAIServiceFailure, message,
		"The AI service is temporarily unavailable. Please try again later.").WithCause(cause)
}

// NewExternalServiceError cria um erro de dependência indisponível (503)
func NewExternalServiceError(message string, cause error) *AppError {
	return newAppError(KindExternalServiceFailure, message,
		"A required service is temporarily unavailable. Please try again later.").WithCause(cause)
}

// NewUnclassifiedError embrulha qualquer falha não mapeada (500).
// A mensagem exibida é sempre genérica.
func NewUnclassifiedError(err error) *AppError {
	return newAppError(KindUnclassified, "unexpected internal error",
		"An unexpected error occurred. Please try again later.").WithCause(err)
}

// AsAppError extrai um *AppError de uma cadeia de erros, embrulhando como
// Unclassified quando o erro não é tipado
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewUnclassifiedError(err)
}
