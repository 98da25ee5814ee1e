// Package errors provides domain-specific error types for md5.
//
// This package defines structured errors with error codes, making it easier to handle
// and test different error conditions consistently across the application.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeOutOfMemory indicates a buffer for the message could not be obtained.
	ErrCodeOutOfMemory ErrorCode = "OUT_OF_MEMORY"

	// ErrCodeInput indicates the input stream could not be read.
	ErrCodeInput ErrorCode = "INPUT_ERROR"

	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeChecksumMismatch indicates a stored checksum does not match the data.
	ErrCodeChecksumMismatch ErrorCode = "CHECKSUM_MISMATCH"

	// ErrCodeUsage indicates the command line was malformed.
	ErrCodeUsage ErrorCode = "USAGE_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is checks. Matching is by code only.
var (
	ErrOutOfMemory      = New(ErrCodeOutOfMemory, "out of memory")
	ErrInput            = New(ErrCodeInput, "input error")
	ErrConfig           = New(ErrCodeConfig, "configuration error")
	ErrValidation       = New(ErrCodeValidation, "validation error")
	ErrChecksumMismatch = New(ErrCodeChecksumMismatch, "checksum mismatch")
	ErrUsage            = New(ErrCodeUsage, "usage error")
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewOutOfMemoryError creates a new allocation failure error.
func NewOutOfMemoryError(message string, cause error) *Error {
	return Wrap(ErrCodeOutOfMemory, message, cause)
}

// NewInputError creates a new input stream error.
func NewInputError(message string, cause error) *Error {
	return Wrap(ErrCodeInput, message, cause)
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewChecksumMismatchError creates a new checksum mismatch error.
func NewChecksumMismatchError(message string, cause error) *Error {
	return Wrap(ErrCodeChecksumMismatch, message, cause)
}

// NewUsageError creates a new command line usage error.
func NewUsageError(message string, cause error) *Error {
	return Wrap(ErrCodeUsage, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}

// CodeOf returns the code of the first *Error in err's chain, or ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if stderrors.Is(err, ErrUsage) {
		return 2
	}
	return 1
}
