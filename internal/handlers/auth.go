package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lojinha-dev/lojinha/internal/apperror"
	"github.com/lojinha-dev/lojinha/internal/services"
	"github.com/lojinha-dev/lojinha/internal/store"
	"github.com/lojinha-dev/lojinha/internal/types"
	"github.com/lojinha-dev/lojinha/internal/validation"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	req := validation.Get[types.RegisterRequest](ctx)

	user, err := h.auth.Register(ctx.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})

	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			fail(ctx, apperror.Conflict("Email já cadastrado"))
			return
		}
		fail(ctx, apperror.Internal("Erro ao registrar usuário", err))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user": types.NewUserResponse(*user)})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	req := validation.Get[types.LoginRequest](ctx)

	token, err := h.auth.Login(ctx.Request.Context(), req.Email, req.Password)

	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			fail(ctx, apperror.Unauthorized("Credenciais inválidas"))
			return
		}
		fail(ctx, apperror.Internal("Erro ao fazer login", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}
