// Package domainerrors provides coded errors for domain validation and
// business rule violations. Stores return sentinel errors for infrastructure
// facts; services translate those into these coded errors so transports can
// map them to status codes without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport mapping and retry decisions.
type Code string

const (
	// CodeInvalidInput marks malformed caller input, rejected before any
	// state change (malformed keys, zero addresses, empty id lists).
	CodeInvalidInput Code = "invalid_input"

	// CodeUnauthorized marks a caller not entitled to act on the token.
	CodeUnauthorized Code = "unauthorized"

	// CodeNotFound marks operations against an id with no record.
	CodeNotFound Code = "not_found"

	// CodeCreationFailed marks a rejected account materialization; no
	// partial state persists and retry is safe.
	CodeCreationFailed Code = "creation_failed"

	// CodeInvariantViolation marks an operation that would break a domain
	// invariant (e.g. a non-positive snapshot interval).
	CodeInvariantViolation Code = "invariant_violation"

	// CodeUnavailable marks a dependency that could not be reached.
	CodeUnavailable Code = "unavailable"

	// CodeInternal is the fallback for unexpected failures.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. Key carries the offending derivation key
// when one is known, so callers can retry correctly.
type Error struct {
	Code    Code
	Message string
	Key     string
	cause   error
}

// New constructs a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new domain error. The cause participates in
// errors.Is/As chains.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// WithKey returns a copy of the error annotated with the offending key.
func (e *Error) WithKey(key fmt.Stringer) *Error {
	clone := *e
	clone.Key = key.String()
	return &clone
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s (key %s)", e.Code, e.Message, e.Key)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches on code so callers can compare against template errors.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// CodeOf extracts the code from err, or CodeInternal when err is not a
// domain error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
