package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is the one classification failure surfaced to callers.
	ErrEmptyInput = errors.New("empty input")

	// Model-layer failure kinds. Each one means "model classification
	// unavailable" to the coordinator; none of them escapes to the caller.
	ErrServiceUnavailable = errors.New("model service unavailable")
	ErrMalformedResponse  = errors.New("malformed model response")
	ErrInvalidShape       = errors.New("invalid model response shape")
	ErrUnknownCategory    = errors.New("unknown category in model response")

	ErrRecordNotFound = errors.New("record not found")
	ErrTemporary      = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// IsModelRejection reports whether err is one of the recoverable model-layer
// failures that trigger the rule fallback.
func IsModelRejection(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrMalformedResponse) ||
		errors.Is(err, ErrInvalidShape) ||
		errors.Is(err, ErrUnknownCategory)
}
