// Package middleware provides gin middleware for the HTTP API.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appctx "github.com/nicole276/Api-Stockbar/internal/core/context"
)

const requestIDHeader = "X-Request-ID"

// Trace attaches trace and request IDs to every request. An incoming
// X-Request-ID is honored so callers can correlate retries.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		trace := appctx.NewTraceContext(requestID)
		c.Request = c.Request.WithContext(appctx.WithTrace(c.Request.Context(), trace))
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}
