package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nicole276/Api-Stockbar/pkg/logger"
)

// RequestLogger logs one line per request with latency and status.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		ctx := c.Request.Context()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.Last().Error())
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error(ctx, "request", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn(ctx, "request", fields...)
		default:
			logger.Info(ctx, "request", fields...)
		}
	}
}
