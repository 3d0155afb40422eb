// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and exit code mapping

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "package_not_found_error",
			code:    errors.ErrPackageNotFound,
			message: "package not found",
			wantStr: "[PACKAGE_NOT_FOUND] package not found",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrRequiredInstall, "failed to install %s", "ripgrep")
	if err.Message != "failed to install ripgrep" {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INTERNAL] internal error: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if err := errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrPackageNotFound, "not found").
		WithDetail("unknown", []string{"foo"}).
		WithDetail("available", []string{"vim", "zsh"})

	details := errors.GetErrorDetails(err)
	if got, ok := details["unknown"].([]string); !ok || got[0] != "foo" {
		t.Errorf("WithDetail() unknown = %v", details["unknown"])
	}
	if errors.GetErrorDetails(stderrors.New("plain")) != nil {
		t.Error("GetErrorDetails() should be nil for standard errors")
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrSymlinkFailed, "error 1")
	err2 := errors.New(errors.ErrSymlinkFailed, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match on code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrUnknownOption, "bad flag"),
			code:     errors.ErrUnknownOption,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrUnknownOption, "bad flag"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "fmt_wrapped",
			err:      fmt.Errorf("context: %w", errors.New(errors.ErrBackupFailed, "move failed")),
			code:     errors.ErrBackupFailed,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHasErrorCode(t *testing.T) {
	inner := errors.New(errors.ErrRequiredInstall, "git failed")
	outer := errors.Wrap(inner, errors.ErrHookFailed, "hook failed")

	if !errors.HasErrorCode(outer, errors.ErrRequiredInstall) {
		t.Error("HasErrorCode() should find inner code")
	}
	if !errors.HasErrorCode(outer, errors.ErrHookFailed) {
		t.Error("HasErrorCode() should find outer code")
	}
	if errors.HasErrorCode(outer, errors.ErrSymlinkFailed) {
		t.Error("HasErrorCode() should not invent codes")
	}
	if errors.GetErrorCode(outer) != errors.ErrHookFailed {
		t.Errorf("GetErrorCode() = %v", errors.GetErrorCode(outer))
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, errors.ExitOK},
		{"unknown_option", errors.New(errors.ErrUnknownOption, "x"), 1},
		{"package_not_found", errors.New(errors.ErrPackageNotFound, "x"), 1},
		{"plain_error", stderrors.New("x"), 1},
		{"no_package_manager", errors.New(errors.ErrNoPackageManager, "x"), 6},
		{"required_install", errors.New(errors.ErrRequiredInstall, "x"), 7},
		{"required_install_inside_hook", errors.Wrap(errors.New(errors.ErrRequiredInstall, "x"), errors.ErrHookFailed, "hook"), 7},
		{"symlink_failed", errors.New(errors.ErrSymlinkFailed, "x"), 10},
		{"symlink_conflict", errors.New(errors.ErrSymlinkConflict, "x"), 10},
		{"backup_failed", errors.New(errors.ErrBackupFailed, "x"), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	inner := errors.New(errors.ErrRequiredInstall, "failed to install required binary jq")
	outer := errors.Wrap(inner, errors.ErrHookFailed, "hook of package a failed")
	if got := errors.Message(outer); got != "hook of package a failed: failed to install required binary jq" {
		t.Errorf("Message() = %q", got)
	}

	plain := errors.Wrap(stderrors.New("permission denied"), errors.ErrFileAccess, "cannot read")
	if got := errors.Message(plain); got != "cannot read: permission denied" {
		t.Errorf("Message() = %q", got)
	}
}
