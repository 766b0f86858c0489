package logger

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"fit-agent/internal/domain"
)

// StructuredLogger implementa a interface domain.Logger
type StructuredLogger struct {
	logger *logrus.Logger
	fields logrus.Fields
}

// contextKey define chaves para contexto
type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	IPKey        contextKey = "ip"
	UserIDKey    contextKey = "user_id"
	PathKey      contextKey = "path"
)

// sensitiveHeaders lista os headers que nunca aparecem em claro nos logs
var sensitiveHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
	"x-api-key":     {},
}

// NewLogger cria uma nova instância do logger estruturado
func NewLogger(level, format string) domain.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	logger.SetOutput(os.Stdout)

	return &StructuredLogger{
		logger: logger,
		fields: make(logrus.Fields),
	}
}

// Debug registra uma mensagem de debug
func (l *StructuredLogger) Debug(msg string, fields map[string]interface{}) {
	l.logWithFields(logrus.DebugLevel, msg, fields)
}

// Info registra uma mensagem informativa
func (l *StructuredLogger) Info(msg string, fields map[string]interface{}) {
	l.logWithFields(logrus.InfoLevel, msg, fields)
}

// Warn registra uma mensagem de warning
func (l *StructuredLogger) Warn(msg string, fields map[string]interface{}) {
	l.logWithFields(logrus.WarnLevel, msg, fields)
}

// Error registra uma mensagem de erro
func (l *StructuredLogger) Error(msg string, err error, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	l.logWithFields(logrus.ErrorLevel, msg, fields)
}

// WithContext cria um novo logger com os campos da requisição corrente
func (l *StructuredLogger) WithContext(ctx context.Context) domain.Logger {
	contextFields := extractContextFields(ctx)

	mergedFields := make(logrus.Fields, len(l.fields)+len(contextFields))
	for k, v := range l.fields {
		mergedFields[k] = v
	}
	for k, v := range contextFields {
		mergedFields[k] = v
	}

	return &StructuredLogger{
		logger: l.logger,
		fields: mergedFields,
	}
}

// logWithFields registra uma mensagem mesclando os campos do logger
func (l *StructuredLogger) logWithFields(level logrus.Level, msg string, fields map[string]interface{}) {
	allFields := make(logrus.Fields, len(l.fields)+len(fields)+1)

	for k, v := range l.fields {
		allFields[k] = v
	}
	for k, v := range fields {
		allFields[k] = v
	}

	allFields["component"] = "fit_agent"

	l.logger.WithFields(allFields).Log(level, msg)
}

// extractContextFields extrai campos relevantes do contexto
func extractContextFields(ctx context.Context) logrus.Fields {
	fields := make(logrus.Fields)

	if ctx == nil {
		return fields
	}

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		fields["request_id"] = requestID
	}
	if ip := ctx.Value(IPKey); ip != nil {
		fields["ip"] = ip
	}
	if userID := ctx.Value(UserIDKey); userID != nil {
		fields["user_id"] = userID
	}
	if path := ctx.Value(PathKey); path != nil {
		fields["path"] = path
	}

	return fields
}

// LogRateLimitViolation emite o registro estruturado de uma rejeição por
// rate limit: identificador, rota, regra aplicada e headers redigidos. Os
// campos da requisição corrente (request_id, ip) vêm do contexto.
// Side-effect apenas; nunca influencia a decisão de allow/reject.
func LogRateLimitViolation(ctx context.Context, log domain.Logger, identifier, path string, rule domain.QuotaRule, headers http.Header) {
	log.WithContext(ctx).Warn("Rate limit exceeded", map[string]interface{}{
		"identifier": identifier,
		"path":       path,
		"class":      string(rule.Class),
		"scope":      string(rule.Scope),
		"limit":      rule.Rate.String(),
		"headers":    RedactHeaders(headers),
	})
}

// RedactHeaders devolve uma visão dos headers com credenciais mascaradas
func RedactHeaders(headers http.Header) map[string]string {
	redacted := make(map[string]string, len(headers))
	for name, values := range headers {
		value := strings.Join(values, ", ")
		if _, sensitive := sensitiveHeaders[strings.ToLower(name)]; sensitive {
			value = MaskSecret(value)
		}
		redacted[name] = value
	}
	return redacted
}

// MaskSecret mascara um valor sensível preservando um prefixo curto
func MaskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return value[:1] + "***"
	}
	return value[:8] + "***"
}

// ContextWithRequestInfo adiciona informações da requisição ao contexto
func ContextWithRequestInfo(ctx context.Context, requestID, ip, userID, path string) context.Context {
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	ctx = context.WithValue(ctx, IPKey, ip)
	if userID != "" {
		ctx = context.WithValue(ctx, UserIDKey, userID)
	}
	ctx = context.WithValue(ctx, PathKey, path)
	return ctx
}

// ContextWithUserID adiciona o principal autenticado ao contexto da
// requisição depois do middleware de auth resolver o token
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetRequestID extrai o request ID do contexto
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
