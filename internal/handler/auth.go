package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fit-agent/internal/domain"
	"fit-agent/internal/middleware"
)

// RegisterRequest é o corpo de criação de conta
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest é o corpo de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest solicita um token de reset de senha
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest troca a senha mediante um token de reset
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// userRead é a projeção pública de um usuário
type userRead struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	IsActive   bool   `json:"is_active"`
	IsVerified bool   `json:"is_verified"`
	CreatedAt  string `json:"created_at"`
}

func newUserRead(user *domain.User) userRead {
	return userRead{
		ID:         user.ID.String(),
		Email:      user.Email,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Register cria uma nova conta
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserRead(user))
}

// Login valida credenciais e devolve um token bearer
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}

	token, _, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// ForgotPassword emite um token de reset. A resposta é a mesma exista a
// conta ou não.
func (h *Handlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "If the account exists, a password reset link has been sent.",
	})
}

// ResetPassword troca a senha mediante um token de reset válido
func (h *Handlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated successfully.",
	})
}

// Me devolve o principal autenticado
func (h *Handlers) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		abort(c, domain.NewAuthenticationError("no principal on context", "Missing or invalid credentials."))
		return
	}

	c.JSON(http.StatusOK, newUserRead(user))
}

// abort registra o erro para a fronteira de dispatch e encerra a cadeia
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
