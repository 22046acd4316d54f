package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/pkg/logger"
)

// ErrorHandler renders errors attached via c.Error as JSON. Business
// errors keep their code and details; anything else becomes an opaque
// 500 so internals never leak.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := apperror.AsAppError(err)
		if !ok {
			appErr = apperror.NewInternal(err)
		}

		if appErr.HTTPStatus >= 500 {
			logger.Error(c.Request.Context(), "request failed",
				"code", appErr.Code,
				"error", err,
			)
		}

		c.JSON(appErr.HTTPStatus, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
				"details": appErr.Details,
			},
		})
	}
}
