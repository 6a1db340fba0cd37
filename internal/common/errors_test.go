package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	cause := fmt.Errorf("activity %w", ErrNotFound)
	err := NewUserError("nothing to delete", cause)

	assert.Equal(t, "nothing to delete: activity not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)

	var userErr *UserError
	assert.True(t, errors.As(err, &userErr))
	assert.Equal(t, "nothing to delete", userErr.UserMessage)

	assert.Equal(t, "plain", NewUserError("plain", nil).Error())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "busy", err: fmt.Errorf("insert: %w", ErrBusy), want: true},
		{name: "marked retryable", err: &RetryableError{Err: errors.New("flaky"), Retryable: true}, want: true},
		{name: "marked permanent", err: &RetryableError{Err: ErrBusy, Retryable: false}, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "deadline", err: fmt.Errorf("wrapped: %w", context.DeadlineExceeded), want: false},
		{name: "not found", err: ErrNotFound, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
