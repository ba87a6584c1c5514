package ollama

import (
	"context"
	"errors"

	"github.com/kirillkom/document-triage/internal/core/domain"
	"github.com/kirillkom/document-triage/internal/infrastructure/resilience"
)

// wrapTransportError maps every transport-layer failure (timeout, connection
// refused, HTTP error status, open breaker, decode failure) to the single
// service-unavailable kind the coordinator reacts to. Caller cancellation
// passes through untouched.
func wrapTransportError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return domain.WrapError(domain.ErrServiceUnavailable, operation, err)
}

// RecordBreakerFailure reports whether err should count against the model
// breaker. Cancellation is the caller's doing; a malformed model answer
// reached the service fine.
func RecordBreakerFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if resilience.IsCircuitOpen(err) {
		return false
	}
	return true
}
