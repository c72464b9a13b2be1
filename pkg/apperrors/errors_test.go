package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundMatchesSentinel(t *testing.T) {
	cause := errors.New("record not found")
	err := fmt.Errorf("load profile: %w", NewNotFound("user", "leo", cause))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.ErrorIs(t, err, cause)

	var nf *NotFoundError
	if assert.ErrorAs(t, err, &nf) {
		assert.Equal(t, "user", nf.Resource)
		assert.Equal(t, "leo", nf.Key)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidation(map[string]string{"text": "is required", "group_id": "unknown group"})

	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "[validation] invalid group_id, text", err.Error())
}

func TestInternalMatchesNeither(t *testing.T) {
	err := NewInternal("count posts", errors.New("connection reset"))

	assert.False(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Contains(t, err.Error(), "connection reset")
}
