package core

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrMissingKey      = errors.New("missing required switch")
	// ErrUnexpectedShape marks xcresulttool output that lacks a field we read.
	ErrUnexpectedShape = errors.New("unexpected xcresulttool output")
)

// ToolError reports a failed xcresulttool invocation: a non-zero exit, a
// failure to start, or output that could not be decoded.
type ToolError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("xcrun %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

// ErrorCode maps err onto a stable code for machine-readable output.
func ErrorCode(err error) string {
	var te *ToolError
	var pe *fs.PathError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalidArgument):
		return "INVALID_ARGUMENT"
	case errors.Is(err, ErrMissingKey):
		return "MISSING_KEY"
	case errors.Is(err, ErrUnexpectedShape):
		return "UNEXPECTED_SHAPE"
	case errors.As(err, &te):
		return "XCRESULTTOOL_FAILED"
	case errors.As(err, &pe):
		return "FILESYSTEM"
	default:
		return "INTERNAL"
	}
}
