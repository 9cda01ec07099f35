package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("validation failed", ValidationDetail{
		Field:   "customerName",
		Message: "customerName is required",
	})

	assert.Equal(t, "validation failed", err.Error())
	assert.Len(t, err.Details, 1)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "customerName", ve.Details[0].Field)

	_, ok = IsValidationError(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("order with id 42 not found")

	assert.Equal(t, "order with id 42 not found", err.Error())

	_, ok := IsNotFoundError(err)
	assert.True(t, ok)

	_, ok = IsNotFoundError(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestItemUnavailableError(t *testing.T) {
	err := NewItemUnavailableError("some menu items are not available", []uint{1, 2, 3}, []uint{1})

	ie, ok := IsItemUnavailableError(err)
	assert.True(t, ok)
	assert.Equal(t, []uint{1, 2, 3}, ie.RequestedIDs)
	assert.Equal(t, []uint{1}, ie.AvailableIDs)
	assert.Equal(t, "some menu items are not available", ie.Error())
}

func TestInvalidTransitionError(t *testing.T) {
	err := NewInvalidTransitionError("cannot change status of cancelled order")

	_, ok := IsInvalidTransitionError(err)
	assert.True(t, ok)
	assert.Equal(t, "cannot change status of cancelled order", err.Error())
}

func TestInternalError(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewInternalError("placing order", cause)

	assert.Equal(t, "placing order: connection refused", err.Error())
	assert.Equal(t, cause, stderrors.Unwrap(err))

	ie, ok := IsInternalError(err)
	assert.True(t, ok)
	assert.Equal(t, cause, ie.Cause)
}

func TestInternalError_NoCause(t *testing.T) {
	err := NewInternalError("something broke", nil)
	assert.Equal(t, "something broke", err.Error())
	assert.Nil(t, stderrors.Unwrap(err))
}
