package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lojinha-dev/lojinha/internal/apperror"
	"github.com/lojinha-dev/lojinha/internal/auth"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/types"
	"github.com/lojinha-dev/lojinha/internal/utils"
)

// Authenticate verifies the bearer token and stores its claims as the request principal.
func Authenticate(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			abort(ctx, apperror.Unauthorized("Token não fornecido"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abort(ctx, apperror.Unauthorized("Token não fornecido"))
			return
		}

		claims, err := tokens.Verify(parts[1])

		if err != nil {
			abort(ctx, apperror.Unauthorized("Token inválido"))
			return
		}

		ctx.Set(types.ContextPrincipalKey, claims)
		ctx.Next()
	}
}

// Authorize lets the request through only when the principal holds one of roles.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, err := utils.GetPrincipal(ctx)

		if err != nil {
			abort(ctx, apperror.Unauthorized("Usuário não autenticado"))
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				ctx.Next()
				return
			}
		}

		abort(ctx, apperror.Forbidden("Você não tem permissão para acessar esta rota"))
	}
}

func abort(ctx *gin.Context, err *apperror.AppError) {
	_ = ctx.Error(err)
	ctx.Abort()
}
