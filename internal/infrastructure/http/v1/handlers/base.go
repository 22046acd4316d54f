// Package handlers implements the HTTP endpoints of the v1 API.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
)

// fail attaches the error for the ErrorHandler middleware to render.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidation("id must be a positive integer")
	}
	return id, nil
}

// bindJSON binds the request body and normalizes binding failures.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperror.NewValidation(err.Error())
	}
	return nil
}

// bindQuery binds query parameters and normalizes binding failures.
func bindQuery(c *gin.Context, obj any) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		return apperror.NewValidation(err.Error())
	}
	return nil
}
