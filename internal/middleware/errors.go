package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lojinha-dev/lojinha/internal/apperror"
	"github.com/lojinha-dev/lojinha/internal/types"
	log "github.com/sirupsen/logrus"
)

// ErrorHandler renders the last error pushed with ctx.Error as {status, message}.
func ErrorHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if len(ctx.Errors) == 0 {
			return
		}

		appErr := apperror.From(ctx.Errors.Last().Err)

		if appErr.Status >= 500 {
			log.WithError(appErr.Err).WithField("path", ctx.Request.URL.Path).Error(appErr.Message)
		}

		if ctx.Writer.Written() {
			return
		}

		ctx.JSON(appErr.Status, types.ErrorResponse{Status: appErr.Kind(), Message: appErr.Message})
	}
}
