package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	appctx "github.com/nicole276/Api-Stockbar/internal/core/context"
	"github.com/nicole276/Api-Stockbar/internal/domain/auth"
)

// TokenParser verifies an access token and returns its claims.
type TokenParser interface {
	ParseToken(token string) (*auth.Claims, error)
}

// Auth requires a valid Bearer token and puts the authenticated user
// into the request context.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			abortUnauthorized(c, "authorization header must be a bearer token")
			return
		}

		claims, err := parser.ParseToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		user := &appctx.UserContext{
			UserID:   claims.UserID,
			Email:    claims.Email,
			FullName: claims.FullName,
			RoleID:   claims.RoleID,
		}
		c.Request = c.Request.WithContext(appctx.WithUser(c.Request.Context(), user))

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	appErr := apperror.NewUnauthorized(message)
	c.AbortWithStatusJSON(appErr.HTTPStatus, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
