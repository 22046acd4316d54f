package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInsufficientStock(t *testing.T) {
	err := NewInsufficientStock(7, 5, 3)

	assert.Equal(t, CodeInsufficientStock, err.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPStatus)
	assert.EqualValues(t, 7, err.Details["product_id"])
	assert.EqualValues(t, 5, err.Details["requested"])
	assert.EqualValues(t, 3, err.Details["available"])
	assert.True(t, IsInsufficientStock(err))
}

func TestAsAppError_Wrapped(t *testing.T) {
	inner := NewNotFound("product", 42)
	wrapped := fmt.Errorf("loading document: %w", inner)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.True(t, IsNotFound(wrapped))
}

func TestAsAppError_Plain(t *testing.T) {
	_, ok := AsAppError(errors.New("boom"))
	assert.False(t, ok)
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(NewValidation("bad")))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(NewNotFound("sale", 1)))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabase(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "DATABASE_ERROR")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWithDetail(t *testing.T) {
	err := NewValidation("bad field").WithDetail("field", "name")
	assert.Equal(t, "name", err.Details["field"])
}
