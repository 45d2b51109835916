package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Frame errors
	ErrInvalidGlyph  ErrorCode = "INVALID_GLYPH"
	ErrUnknownPreset ErrorCode = "UNKNOWN_PRESET"

	// Layout errors
	ErrLayoutOverflow ErrorCode = "LAYOUT_OVERFLOW"

	// Misuse of the box stack. These are raised as panics.
	ErrStackUnderflow ErrorCode = "STACK_UNDERFLOW"
	ErrScopeOrder     ErrorCode = "SCOPE_ORDER"

	// Output errors
	ErrSinkWrite     ErrorCode = "SINK_WRITE"
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"
)

// NestboxError represents a structured error with code and details
type NestboxError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *NestboxError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *NestboxError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *NestboxError) Is(target error) bool {
	var targetErr *NestboxError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new NestboxError with the given code and message
func New(code ErrorCode, message string) *NestboxError {
	return &NestboxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new NestboxError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *NestboxError {
	return &NestboxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a NestboxError
func Wrap(err error, code ErrorCode, message string) *NestboxError {
	if err == nil {
		return nil
	}
	return &NestboxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *NestboxError {
	if err == nil {
		return nil
	}
	return &NestboxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *NestboxError) WithDetail(key string, value interface{}) *NestboxError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *NestboxError) WithDetails(details map[string]interface{}) *NestboxError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var nbErr *NestboxError
	if errors.As(err, &nbErr) {
		return nbErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a NestboxError
func GetErrorCode(err error) ErrorCode {
	var nbErr *NestboxError
	if errors.As(err, &nbErr) {
		return nbErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a NestboxError
func GetErrorDetails(err error) map[string]interface{} {
	var nbErr *NestboxError
	if errors.As(err, &nbErr) {
		return nbErr.Details
	}
	return nil
}

// FromPanic converts a recovered panic value into an error. Values that are
// already errors keep their identity so error codes survive the round trip.
func FromPanic(v interface{}) error {
	if v == nil {
		return nil
	}
	if err, ok := v.(error); ok {
		return err
	}
	return Newf(ErrInternal, "panic: %v", v)
}
