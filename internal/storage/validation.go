// Package storage provides the data persistence layer for the activity catalog.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/whattodo/internal/model"
	"github.com/Veraticus/whattodo/internal/validation"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidID       = errors.New("invalid activity id")
	ErrInvalidActivity = errors.New("invalid activity")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}

// validateActivity checks the activity's struct rules. The returned error wraps both
// ErrInvalidActivity and the *validation.Error describing each field.
func validateActivity(a *model.Activity) error {
	if a == nil {
		return fmt.Errorf("%w: activity", ErrNilParameter)
	}
	if err := validation.Struct(a); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidActivity, err)
	}
	return nil
}
