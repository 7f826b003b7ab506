package restclient

import (
	"errors"
	"fmt"
)

// ErrorCode classifies REST client errors.
type ErrorCode int

const (
	// ErrCodeEncoding indicates the request could not be constructed
	// (unserializable body, malformed path, cross-origin escape).
	ErrCodeEncoding ErrorCode = iota
	// ErrCodeNetwork indicates a connection failure (DNS, refusal, reset).
	ErrCodeNetwork
	// ErrCodeTimeout indicates an attempt exceeded the configured timeout.
	ErrCodeTimeout
	// ErrCodeHTTPStatus indicates a non-2xx response.
	ErrCodeHTTPStatus
	// ErrCodeValidation indicates the response body did not match the
	// declared shape or its value constraints.
	ErrCodeValidation
	// ErrCodeCancelled indicates the call was aborted by the caller.
	ErrCodeCancelled
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeEncoding:
		return "encoding"
	case ErrCodeNetwork:
		return "network"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeHTTPStatus:
		return "http_status"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is a structured REST client error. The original cause is always
// attached: the status code and body for HTTP errors, the underlying
// network error otherwise.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	// Body is the response body for HTTP status errors (may be nil).
	Body []byte
	// Message describes the error.
	Message string
	// Retryable indicates whether the default policy may retry the operation.
	Retryable bool
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("restclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("restclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewEncodingError creates an error for a request that could not be built.
func NewEncodingError(msg string, err error) *Error {
	return &Error{Code: ErrCodeEncoding, Message: msg, Err: err}
}

// NewNetworkError creates a connection-level error.
func NewNetworkError(err error) *Error {
	return &Error{Code: ErrCodeNetwork, Message: err.Error(), Retryable: true, Err: err}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewHTTPStatusError creates an error for a non-2xx response. The body is
// preserved verbatim.
func NewHTTPStatusError(statusCode int, body []byte) *Error {
	return &Error{
		Code:       ErrCodeHTTPStatus,
		StatusCode: statusCode,
		Body:       body,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Retryable:  statusCode == 429 || (statusCode >= 500 && statusCode < 600),
	}
}

// NewValidationError wraps a schema or constraint validation failure.
func NewValidationError(err error) *Error {
	return &Error{Code: ErrCodeValidation, Message: err.Error(), Err: err}
}

// NewCancelledError creates an error for a caller-aborted call.
func NewCancelledError(err error) *Error {
	return &Error{Code: ErrCodeCancelled, Message: "call cancelled by caller", Err: err}
}

// IsEncoding checks if an error is an encoding error.
func IsEncoding(err error) bool { return hasCode(err, ErrCodeEncoding) }

// IsNetwork checks if an error is a connection-level error.
func IsNetwork(err error) bool { return hasCode(err, ErrCodeNetwork) }

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsHTTPStatus checks if an error is a non-2xx status error.
func IsHTTPStatus(err error) bool { return hasCode(err, ErrCodeHTTPStatus) }

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

// IsCancelled checks if an error is a cancellation error.
func IsCancelled(err error) bool { return hasCode(err, ErrCodeCancelled) }

// IsRetryable checks if the default policy may retry the error.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// StatusCodeOf returns the HTTP status code carried by an error, or 0.
func StatusCodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
