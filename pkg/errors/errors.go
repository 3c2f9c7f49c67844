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
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"
	ErrConfigValid  ErrorCode = "CONFIG_INVALID"
	ErrUnknownShell ErrorCode = "UNKNOWN_SHELL"

	// Pipeline errors. The first three are fatal: nothing is written to
	// stdout when one of them is returned.
	ErrScriptNotFound   ErrorCode = "SCRIPT_NOT_FOUND"
	ErrInterpreterSpawn ErrorCode = "INTERPRETER_SPAWN"
	ErrCapture          ErrorCode = "CAPTURE"
	ErrScriptExecution  ErrorCode = "SCRIPT_EXECUTION"
	ErrSerialization    ErrorCode = "SERIALIZATION"
)

// Detail keys used by the pipeline errors
const (
	DetailStatus = "status"
	DetailName   = "name"
	DetailPath   = "path"
)

// BasrsError represents a structured error with code and details
type BasrsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BasrsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BasrsError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BasrsError) Is(target error) bool {
	var targetErr *BasrsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BasrsError with the given code and message
func New(code ErrorCode, message string) *BasrsError {
	return &BasrsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BasrsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BasrsError {
	return &BasrsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BasrsError
func Wrap(err error, code ErrorCode, message string) *BasrsError {
	if err == nil {
		return nil
	}
	return &BasrsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BasrsError {
	if err == nil {
		return nil
	}
	return &BasrsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BasrsError) WithDetail(key string, value interface{}) *BasrsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ScriptNotFound reports a script path that does not resolve to a file.
func ScriptNotFound(path string, cause error) *BasrsError {
	var e *BasrsError
	if cause != nil {
		e = Wrapf(cause, ErrScriptNotFound, "script not found: %s", path)
	} else {
		e = Newf(ErrScriptNotFound, "script not found: %s", path)
	}
	return e.WithDetail(DetailPath, path)
}

// ScriptExecution reports a script that ran to completion with a non-zero
// exit status. The pipeline keeps going when it sees one.
func ScriptExecution(status int) *BasrsError {
	return Newf(ErrScriptExecution, "script exited with status %d", status).
		WithDetail(DetailStatus, status)
}

// Serialization reports one change set entry that could not be rendered
// in the destination shell.
func Serialization(name string, reason string) *BasrsError {
	return Newf(ErrSerialization, "cannot serialize %s: %s", name, reason).
		WithDetail(DetailName, name)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var basrsErr *BasrsError
	if errors.As(err, &basrsErr) {
		return basrsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BasrsError
func GetErrorCode(err error) ErrorCode {
	var basrsErr *BasrsError
	if errors.As(err, &basrsErr) {
		return basrsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BasrsError
func GetErrorDetails(err error) map[string]interface{} {
	var basrsErr *BasrsError
	if errors.As(err, &basrsErr) {
		return basrsErr.Details
	}
	return nil
}

// IsFatal reports whether err must abort the run before anything is
// written to stdout.
func IsFatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrScriptExecution, ErrSerialization:
		return false
	}
	return err != nil
}

// ExitStatus returns the script status carried by a SCRIPT_EXECUTION error.
func ExitStatus(err error) (int, bool) {
	if !IsErrorCode(err, ErrScriptExecution) {
		return 0, false
	}
	status, ok := GetErrorDetails(err)[DetailStatus].(int)
	return status, ok
}
