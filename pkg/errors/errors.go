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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Usage errors
	ErrUnknownOption   ErrorCode = "UNKNOWN_OPTION"
	ErrPackageNotFound ErrorCode = "PACKAGE_NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Package manager errors
	ErrNoPackageManager ErrorCode = "NO_PACKAGE_MANAGER"
	ErrRequiredInstall  ErrorCode = "REQUIRED_INSTALL"

	// Link errors
	ErrSymlinkFailed   ErrorCode = "SYMLINK_FAILED"
	ErrSymlinkConflict ErrorCode = "SYMLINK_CONFLICT"
	ErrBackupFailed    ErrorCode = "BACKUP_FAILED"
	ErrRestoreFailed   ErrorCode = "RESTORE_FAILED"

	// Hook errors
	ErrHookFailed ErrorCode = "HOOK_FAILED"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// Process exit codes. Other tooling depends on the numeric values.
const (
	ExitOK               = 0
	ExitUsage            = 1
	ExitNoPackageManager = 6
	ExitRequiredInstall  = 7
	ExitSymlink          = 10
)

// SetupError represents a structured error with code and details
type SetupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SetupError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SetupError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SetupError) Is(target error) bool {
	var targetErr *SetupError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SetupError with the given code and message
func New(code ErrorCode, message string) *SetupError {
	return &SetupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SetupError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SetupError {
	return &SetupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SetupError
func Wrap(err error, code ErrorCode, message string) *SetupError {
	if err == nil {
		return nil
	}
	return &SetupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SetupError {
	if err == nil {
		return nil
	}
	return &SetupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SetupError) WithDetail(key string, value interface{}) *SetupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code.
// The outermost SetupError in the chain decides.
func IsErrorCode(err error, code ErrorCode) bool {
	var setupErr *SetupError
	if errors.As(err, &setupErr) {
		return setupErr.Code == code
	}
	return false
}

// HasErrorCode reports whether any SetupError in the chain carries code.
func HasErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var setupErr *SetupError
		if !errors.As(err, &setupErr) {
			return false
		}
		if setupErr.Code == code {
			return true
		}
		err = setupErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SetupError
func GetErrorCode(err error) ErrorCode {
	var setupErr *SetupError
	if errors.As(err, &setupErr) {
		return setupErr.Code
	}
	return ErrUnknown
}

// Message renders err for users: the messages of the chain without codes
func Message(err error) string {
	var setupErr *SetupError
	if !errors.As(err, &setupErr) {
		return err.Error()
	}
	if setupErr.Wrapped == nil {
		return setupErr.Message
	}
	return setupErr.Message + ": " + Message(setupErr.Wrapped)
}

// GetErrorDetails returns the details from an error, or nil if not a SetupError
func GetErrorDetails(err error) map[string]interface{} {
	var setupErr *SetupError
	if errors.As(err, &setupErr) {
		return setupErr.Details
	}
	return nil
}

// ExitCode maps an error to the process exit code.
// Fatal codes anywhere in the chain win over the outer code, so a required
// install failure wrapped by a hook error still exits with 7.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch {
	case HasErrorCode(err, ErrNoPackageManager):
		return ExitNoPackageManager
	case HasErrorCode(err, ErrRequiredInstall):
		return ExitRequiredInstall
	}
	switch GetErrorCode(err) {
	case ErrSymlinkFailed, ErrSymlinkConflict, ErrBackupFailed, ErrRestoreFailed:
		return ExitSymlink
	default:
		return ExitUsage
	}
}
