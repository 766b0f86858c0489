package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fit-agent/internal/domain"
	"fit-agent/internal/logger"
	"fit-agent/internal/repository"
)

const (
	scopeAccess = "access"
	scopeReset  = "reset"

	resetTokenTTL = 1 * time.Hour
)

// tokenClaims são as claims dos tokens emitidos pela aplicação
type tokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// AuthService implementa registro, login e reset de senha sobre tokens
// bearer HS256
type AuthService struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   domain.Logger
}

// NewAuthService cria uma nova instância do serviço de autenticação
func NewAuthService(users repository.UserRepository, secret string, tokenTTL time.Duration, log domain.Logger) *AuthService {
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   log,
	}
}

// Register cria um novo usuário com a senha em hash bcrypt.
// Email duplicado resulta em Conflict.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewExternalServiceError("failed to check existing user", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError(
			fmt.Sprintf("user with email %s already exists", email),
			"An account with this email already exists.",
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewUnclassifiedError(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: string(hash),
		IsActive:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Registrações concorrentes do mesmo email passam pela checagem de
		// existência; o índice único decide, e a perdedora vira Conflict
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domain.NewConflictError(
				fmt.Sprintf("user with email %s already exists", email),
				"An account with this email already exists.",
			)
		}
		return nil, domain.NewExternalServiceError("failed to persist user", err)
	}

	s.logger.WithContext(ctx).Info("User registered", map[string]interface{}{
		"user_id": user.ID.String(),
	})

	return user, nil
}

// Login valida as credenciais e emite um token de acesso
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.NewExternalServiceError("failed to look up user", err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return "", nil, domain.NewAuthenticationError(
			fmt.Sprintf("invalid credentials for %s", email),
			"Invalid email or password.",
		)
	}

	if !user.IsActive {
		return "", nil, domain.NewAuthenticationError(
			fmt.Sprintf("login attempt for inactive user %s", user.ID),
			"This account is inactive.",
		)
	}

	token, err := s.issueToken(user.ID, scopeAccess, s.tokenTTL)
	if err != nil {
		return "", nil, domain.NewUnclassifiedError(fmt.Errorf("failed to sign token: %w", err))
	}

	return token, user, nil
}

// CurrentUser valida um token de acesso e carrega o principal
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, domain.NewAuthenticationError(
			fmt.Sprintf("invalid access token: %v", err),
			"Missing or invalid credentials.",
		)
	}

	if claims.Scope != scopeAccess {
		return nil, domain.NewAuthenticationError(
			fmt.Sprintf("token scope %q is not valid for access", claims.Scope),
			"Missing or invalid credentials.",
		)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.NewAuthenticationError(
			fmt.Sprintf("invalid token subject %q", claims.Subject),
			"Missing or invalid credentials.",
		)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.NewExternalServiceError("failed to load user", err)
	}
	if user == nil || !user.IsActive {
		return nil, domain.NewAuthenticationError(
			fmt.Sprintf("no active user for token subject %s", userID),
			"Missing or invalid credentials.",
		)
	}

	return user, nil
}

// ForgotPassword emite um token curto de reset quando o email existe.
// O retorno é sempre silencioso quanto à existência da conta; o token sai
// apenas nos logs, como no fluxo original de recuperação.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.NewExternalServiceError("failed to look up user", err)
	}
	if user == nil {
		s.logger.WithContext(ctx).Debug("Password reset requested for unknown email", nil)
		return nil
	}

	token, err := s.issueToken(user.ID, scopeReset, resetTokenTTL)
	if err != nil {
		return domain.NewUnclassifiedError(fmt.Errorf("failed to sign reset token: %w", err))
	}

	s.logger.WithContext(ctx).Info("Password reset token issued", map[string]interface{}{
		"user_id": user.ID.String(),
		"token":   logger.MaskSecret(token),
	})

	return nil
}

// ResetPassword valida um token de reset e troca a senha do usuário
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.parseToken(token)
	if err != nil || claims.Scope != scopeReset {
		return domain.NewAuthenticationError(
			"invalid or expired reset token",
			"This password reset link is invalid or has expired.",
		)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.NewAuthenticationError(
			fmt.Sprintf("invalid reset token subject %q", claims.Subject),
			"This password reset link is invalid or has expired.",
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.NewUnclassifiedError(fmt.Errorf("failed to hash password: %w", err))
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return domain.NewExternalServiceError("failed to update password", err)
	}

	s.logger.WithContext(ctx).Info("Password reset completed", map[string]interface{}{
		"user_id": userID.String(),
	})

	return nil
}

// issueToken assina um JWT HS256 com o escopo e TTL informados
func (s *AuthService) issueToken(userID uuid.UUID, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// parseToken valida assinatura e expiração de um token emitido aqui
func (s *AuthService) parseToken(token string) (*tokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
