// Package errors defines the SDK error taxonomy. Every failure surfaced by
// the engine is one of these kinds; nothing is retried internally and retry
// policy belongs to the caller.
package errors

import (
	"pushkit/internal/errors"
)

// Kind classifies an SDK error for callers that branch on failure class
// rather than on individual values.
type Kind string

const (
	// KindSetup marks fatal configuration problems. Not retryable.
	KindSetup Kind = "setup"
	// KindPermission marks expected permission outcomes (denied, undecided).
	KindPermission Kind = "permission"
	// KindState marks operations invoked in a state or context that cannot
	// perform them.
	KindState Kind = "state"
	// KindPlatform marks platform-side subscription failures.
	KindPlatform Kind = "platform"
	// KindUnimplemented marks explicitly signaled extension points, so a stub
	// can never be mistaken for success.
	KindUnimplemented Kind = "unimplemented"
)

// SDKError is the interface implemented by all engine errors.
type SDKError interface {
	error
	Kind() Kind        // Failure class
	ErrorCode() string // Stable business error code
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the SDKError interface.
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(kind Kind, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// Kind returns the failure class.
func (e *BaseError) Kind() Kind {
	return e.kind
}

// ErrorCode returns the stable business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// Is matches by error code, so copies created by WithDetails still compare
// equal to their predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// WithDetails returns a copy carrying detailed error information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error values.
var (
	// ErrPermissionBlocked is returned when notification permission has been
	// denied. Prompting again is the UI layer's call, never the engine's.
	ErrPermissionBlocked = NewBaseError(
		KindPermission,
		"PERMISSION_BLOCKED",
		"notification permission has been denied",
		"",
	)

	// ErrPermissionDefault is returned when permission has not been decided
	// yet and the current context cannot prompt, e.g. inside the worker.
	ErrPermissionDefault = NewBaseError(
		KindPermission,
		"PERMISSION_DEFAULT",
		"notification permission has not been granted yet",
		"",
	)

	// ErrWorkerNotActivated is returned when an operation requires one of our
	// worker slots to be active and controlling.
	ErrWorkerNotActivated = NewBaseError(
		KindState,
		"WORKER_NOT_ACTIVATED",
		"push worker is not activated",
		"",
	)

	// ErrMissingSafariWebID is returned before prompting when the Safari path
	// is taken without a configured web push identifier.
	ErrMissingSafariWebID = NewBaseError(
		KindSetup,
		"MISSING_SAFARI_WEB_ID",
		"safari web push identifier is not configured",
		"",
	)

	// ErrInvalidSafariSetup is returned when the Safari prompt yields no
	// device token, commonly a misconfigured push certificate, a missing
	// icon, or private browsing.
	ErrInvalidSafariSetup = NewBaseError(
		KindPlatform,
		"INVALID_SAFARI_SETUP",
		"safari prompt returned no device token",
		"",
	)

	// ErrUnsupportedEnvironment is returned when the current context
	// structurally cannot perform the operation.
	ErrUnsupportedEnvironment = NewBaseError(
		KindState,
		"UNSUPPORTED_ENVIRONMENT",
		"operation is not supported in this execution context",
		"",
	)

	// ErrMissingArgument is returned for programmer errors such as a worker
	// unicast without a target client.
	ErrMissingArgument = NewBaseError(
		KindState,
		"MISSING_ARGUMENT",
		"required argument is missing",
		"",
	)

	// ErrNotImplemented marks extension points that are designed but not yet
	// built. It fails loudly so callers cannot mistake a stub for success.
	ErrNotImplemented = NewBaseError(
		KindUnimplemented,
		"NOT_IMPLEMENTED",
		"operation is not implemented",
		"",
	)
)
