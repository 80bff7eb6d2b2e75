package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/apperror"
	"github.com/lojinha-dev/lojinha/internal/store"
	"github.com/lojinha-dev/lojinha/internal/types"
	"github.com/lojinha-dev/lojinha/internal/validation"
)

// fail hands err to the error middleware and stops the chain.
func fail(ctx *gin.Context, err *apperror.AppError) {
	_ = ctx.Error(err)
	ctx.Abort()
}

// failLookup maps a missing record to 404 and anything else to a 500 with message.
func failLookup(ctx *gin.Context, err error, notFound, message string) {
	if errors.Is(err, store.ErrNotFound) {
		fail(ctx, apperror.NotFound(notFound))
		return
	}

	fail(ctx, apperror.Internal(message, err))
}

// pathID is safe to call once validation.URI[types.IDParam] has run.
func pathID(ctx *gin.Context) uuid.UUID {
	return uuid.MustParse(validation.Get[types.IDParam](ctx).ID)
}
