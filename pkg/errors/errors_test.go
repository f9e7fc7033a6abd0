package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessError_UnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("record payment: %w", WrapContractNotFound("c-1"))

	assert.True(t, errors.Is(err, ErrContractNotFound))
	assert.Equal(t, ErrCodeContractNotFound, CodeOf(err))
	assert.Contains(t, err.Error(), "Contract with ID c-1 not found")
}

func TestWrapConcurrencyConflict(t *testing.T) {
	tests := []struct {
		name  string
		cause error
	}{
		{name: "no cause", cause: nil},
		{name: "sentinel cause", cause: ErrConcurrencyConflict},
		{name: "driver cause", cause: errors.New("pq: could not serialize access")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapConcurrencyConflict("c-1", tt.cause)
			assert.True(t, errors.Is(err, ErrConcurrencyConflict))
			assert.Equal(t, ErrCodeConcurrencyConflict, err.Code)
		})
	}
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, "", CodeOf(errors.New("boom")))
	assert.Equal(t, "", CodeOf(nil))
}
