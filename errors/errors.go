package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"strings"
)

// AppError is the unified routekit error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried by the caller.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// Is matches another *AppError by code, so errors.Is(err, errors.New(code, ""))
// tests for a code anywhere in the chain.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// WithDetails merges details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	maps.Copy(e.Details, details)
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Configuration ---

// Configuration creates an AppError for an unusable route definition,
// validator or client configuration.
func Configuration(message string) *AppError {
	return &AppError{Code: ErrCodeConfiguration, Message: message}
}

// RouteNotFound creates an AppError for a dotted route path missing from a client tree.
func RouteNotFound(path string) *AppError {
	return &AppError{
		Code: ErrCodeRouteNotFound, Message: fmt.Sprintf("no route registered at %q", path),
		Details: map[string]any{"route": path},
	}
}

// --- Validation ---

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// ValidationFailed creates an AppError for a schema that reported issues.
// The issue messages are joined into the error message.
func ValidationFailed(messages ...string) *AppError {
	msg := "validation failed"
	if len(messages) > 0 {
		msg = strings.Join(messages, "; ")
	}
	return &AppError{Code: ErrCodeValidationFailed, Message: msg}
}

// Encoding creates an AppError for a value that could not be serialized.
func Encoding(what string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeEncoding, Message: fmt.Sprintf("unable to encode %s", what),
		Details: map[string]any{"target": what}, Cause: cause,
	}
}

// Decoding creates an AppError for a response body that could not be decoded.
func Decoding(cause error) *AppError {
	return &AppError{Code: ErrCodeDecoding, Message: "unable to decode response body", Cause: cause}
}

// --- Transport ---

// ConnectionFailed creates a new AppError for a failed connection to a host.
func ConnectionFailed(host string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to connect to %s.", host),
		Retryable: true, Details: map[string]any{"host": host}, Cause: cause,
	}
}

// Timeout creates a new AppError for a request that timed out.
func Timeout(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long or was cancelled.",
		Retryable: true, Details: map[string]any{"operation": operation}, Cause: cause,
	}
}

// RedirectRefused creates an AppError for a redirect blocked by policy.
func RedirectRefused(location string) *AppError {
	return &AppError{
		Code: ErrCodeRedirect, Message: fmt.Sprintf("redirect to %s refused by policy", location),
		Details: map[string]any{"location": location},
	}
}

// --- Diagnostics ---

// ContractViolation creates an AppError describing a response that did not
// match its declared schema. It is reported, never returned to callers.
func ContractViolation(operation string, status int, cause error) *AppError {
	return &AppError{
		Code: ErrCodeContractViolation, Message: fmt.Sprintf("response for %s (HTTP %d) does not match its schema", operation, status),
		Details: map[string]any{"operation": operation, "status": status}, Cause: cause,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "An unexpected error occurred.", Cause: cause}
}

// --- Inspection ---

// IsAppError reports whether err wraps an *AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError returns the first *AppError in the chain of err.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
