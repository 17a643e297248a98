// Package clierr carries process exit codes through returned errors.
package clierr

import (
	"errors"
	"fmt"
)

// Exit codes used by commitgate.
const (
	// ExitInvalid means at least one commit subject failed a rule.
	ExitInvalid = 1
	// ExitUsage covers bad flags, arguments, and configuration.
	ExitUsage = 2
	// ExitHistory means commits could not be listed (git or fetch failure).
	ExitHistory = 3
)

type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is an error that carries an explicit process exit code.
// It supports wrapping via Unwrap so errors.Is/As work as expected.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// Wrap creates an ExitError that wraps an underlying cause.
func Wrap(code int, msg string, cause error) error {
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// Usagef reports a usage or configuration problem.
func Usagef(format string, args ...any) error {
	return &ExitError{code: ExitUsage, msg: fmt.Sprintf(format, args...)}
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}

func normalize(code int) int {
	// Exit code 0 means success; errors should never be 0.
	if code <= 0 {
		return 1
	}
	return code
}
