package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors. These indicate a programming mistake in a route
// definition or client configuration and are never retryable.
const (
	// ErrCodeConfiguration indicates an unusable route definition, validator or client config.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeRouteNotFound indicates a lookup for a route path that is not in the client tree.
	ErrCodeRouteNotFound ErrorCode = "ROUTE_NOT_FOUND"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeValidationFailed indicates a schema reported one or more issues.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrCodeEncoding indicates a value could not be serialized for the wire.
	ErrCodeEncoding ErrorCode = "ENCODING_ERROR"
	// ErrCodeDecoding indicates a response body could not be decoded.
	ErrCodeDecoding ErrorCode = "DECODING_ERROR"
)

// Transport errors (retryable by the caller, never by routekit)
const (
	// ErrCodeConnectionFailed indicates a failed connection to the remote service.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out or its context was cancelled.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRedirect indicates a redirect was refused by the configured redirect policy.
	ErrCodeRedirect ErrorCode = "REDIRECT_REFUSED"
)

// Diagnostic codes
const (
	// ErrCodeContractViolation indicates a response did not match its declared schema.
	ErrCodeContractViolation ErrorCode = "CONTRACT_VIOLATION"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// IsRetryableCode reports whether a failure with code may succeed when the
// caller sends the same request again. Only transport failures qualify.
func IsRetryableCode(code ErrorCode) bool {
	switch code {
	case ErrCodeConnectionFailed, ErrCodeTimeout:
		return true
	}
	return false
}
