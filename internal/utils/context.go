package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/auth"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/types"
)

func GetPrincipal(ctx *gin.Context) (*auth.Claims, error) {
	value, exists := ctx.Get(types.ContextPrincipalKey)

	if !exists {
		return nil, fmt.Errorf("user not authenticated")
	}

	claims, ok := value.(*auth.Claims)

	if !ok {
		return nil, fmt.Errorf("invalid principal type in context")
	}

	return claims, nil
}

func GetPrincipalID(ctx *gin.Context) (uuid.UUID, error) {
	claims, err := GetPrincipal(ctx)

	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(claims.UserID)
}

// IsAdmin reports whether the caller holds the ADMIN role.
func IsAdmin(ctx *gin.Context) bool {
	claims, err := GetPrincipal(ctx)
	return err == nil && claims.Role == models.RoleAdmin
}
