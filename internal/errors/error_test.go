package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransportError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "given nil error should return false",
			err:      nil,
			expected: false,
		},
		{
			name:     "given domain error should return false",
			err:      ErrProductNotFound,
			expected: false,
		},
		{
			name:     "given html error page should return true",
			err:      errors.New("<html><body>Bad Gateway</body></html>"),
			expected: true,
		},
		{
			name:     "given doctype error page should return true",
			err:      errors.New("<!DOCTYPE html><title>502</title>"),
			expected: true,
		},
		{
			name:     "given 503 status text should return true",
			err:      errors.New("unexpected status 503 Service Unavailable"),
			expected: true,
		},
		{
			name:     "given connection refused should return true",
			err:      errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			expected: true,
		},
		{
			name:     "given context deadline exceeded should return true",
			err:      errors.New("context deadline exceeded"),
			expected: true,
		},
		{
			name:     "given wrapped transport error should return true",
			err:      fmt.Errorf("failed finding cart with error=%w", errors.New("gateway timeout")),
			expected: true,
		},
		{
			name:     "given validation error should return false",
			err:      errors.New("quantity must be greater than zero"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransportError(tt.err))
		})
	}
}

func TestCartMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "given nil error should return empty message",
			err:      nil,
			expected: "",
		},
		{
			name:     "given transport error should return generic message",
			err:      errors.New("<html>502 Bad Gateway</html>"),
			expected: MsgCartUnavailable,
		},
		{
			name:     "given domain error should return its message",
			err:      ErrOutOfStock,
			expected: ErrOutOfStock.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CartMessage(tt.err))
		})
	}
}
