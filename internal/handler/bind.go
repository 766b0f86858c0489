package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"fit-agent/internal/domain"
)

// bindJSON faz o bind do corpo JSON e converte falhas de validação em
// erros de domínio com mensagens por campo. Nenhuma escrita acontece
// antes desta etapa.
func bindJSON(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]interface{}, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details[toSnakeCase(fieldErr.Field())] = validationMessage(fieldErr)
		}
		return domain.NewValidationError("request validation failed", "Invalid data provided.").
			WithDetails(details)
	}

	return domain.NewValidationError(
		fmt.Sprintf("malformed request body: %v", err),
		"Invalid request body.",
	)
}

// validationMessage traduz a tag de validação para uma mensagem amigável
func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters long", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fieldErr.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	default:
		return fmt.Sprintf("Failed validation rule %q", fieldErr.Tag())
	}
}

// toSnakeCase converte o nome do campo Go para o formato do JSON.
// Sequências de maiúsculas (RPE, URL) viram um único segmento.
func toSnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			boundary := i > 0 &&
				(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if boundary {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
