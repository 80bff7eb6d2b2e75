package validation

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/lojinha-dev/lojinha/internal/apperror"
)

func key[T any]() string {
	var zero T
	return fmt.Sprintf("validated:%T", zero)
}

func bind[T any](bindFn func(*gin.Context, *T) error) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var payload T

		if err := bindFn(ctx, &payload); err != nil {
			_ = ctx.Error(apperror.Validation(Message(err)))
			ctx.Abort()
			return
		}

		ctx.Set(key[T](), &payload)
		ctx.Next()
	}
}

// JSON validates the request body as T.
func JSON[T any]() gin.HandlerFunc {
	return bind(func(ctx *gin.Context, v *T) error { return ctx.ShouldBindJSON(v) })
}

// Query validates the query string as T.
func Query[T any]() gin.HandlerFunc {
	return bind(func(ctx *gin.Context, v *T) error { return ctx.ShouldBindQuery(v) })
}

// URI validates the path parameters as T.
func URI[T any]() gin.HandlerFunc {
	return bind(func(ctx *gin.Context, v *T) error { return ctx.ShouldBindUri(v) })
}

// Get returns the payload stored by JSON, Query or URI. It panics when the
// route was registered without the matching middleware.
func Get[T any](ctx *gin.Context) *T {
	return ctx.MustGet(key[T]()).(*T)
}
