package utils

import (
	"errors"
	"fmt"
)

// Kind classifies an AppError for boundary mapping (HTTP status, exit codes).
type Kind string

const (
	// KindInvalid marks caller mistakes: bad payloads, malformed datasets.
	KindInvalid Kind = "invalid"
	// KindInternal marks engine-side failures.
	KindInternal Kind = "internal"
)

// AppError wraps an operation, human-facing message, and underlying error.
type AppError struct {
	Op   string
	Kind Kind
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError constructs an internal AppError.
func NewAppError(op, msg string, err error) error {
	return &AppError{Op: op, Kind: KindInternal, Msg: msg, Err: err}
}

// NewInvalidError constructs an AppError attributed to the caller's input.
func NewInvalidError(op, msg string, err error) error {
	return &AppError{Op: op, Kind: KindInvalid, Msg: msg, Err: err}
}

// ErrorKind extracts the Kind from an error chain, defaulting to internal.
func ErrorKind(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != "" {
		return appErr.Kind
	}
	return KindInternal
}
