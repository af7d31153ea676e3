// Package clierr defines the tagged error surfaced to the caller. Every
// failure is classified by where it happened: on the local machine, on the
// AgenticLetters server, or somewhere on the wire in between. The rendered
// form is stable so an orchestrating agent can branch on it.
package clierr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Origin classifies where an error originated.
type Origin string

const (
	// OriginLocal marks precondition failures detectable without any
	// network access: missing file, missing key, bad flags.
	OriginLocal Origin = "local"

	// OriginServer marks an explicit rejection by the API of a request
	// that reached it.
	OriginServer Origin = "server"

	// OriginNetwork marks a request that could not complete: DNS failure,
	// refused connection, timeout.
	OriginNetwork Origin = "network"
)

// Error is the single error type that reaches the user. Server errors carry
// the machine-readable context returned by the API; the other origins only
// carry a message and an optional detail.
type Error struct {
	Origin     Origin
	Message    string
	Code       string
	HTTPStatus int
	Detail     string
	Field      string

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Origin, e.Message)
}

// Unwrap exposes the underlying cause, if any, for errors.As/Is chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// Render returns the multi-line stderr block. Optional lines are omitted
// when empty; the order is fixed.
func (e *Error) Render() string {
	parts := []string{fmt.Sprintf("[%s] %s", e.Origin, e.Message)}
	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("  code: %s", e.Code))
	}
	if e.HTTPStatus != 0 {
		parts = append(parts, fmt.Sprintf("  http_status: %d", e.HTTPStatus))
	}
	if e.Detail != "" {
		parts = append(parts, fmt.Sprintf("  detail: %s", e.Detail))
	}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("  field: %s", e.Field))
	}
	return strings.Join(parts, "\n")
}

// WithDetail returns a copy of the error with the detail line set.
func (e *Error) WithDetail(detail string) *Error {
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a copy of the error with an underlying cause attached.
// The cause never reaches stderr; it exists for wrapping and logging.
func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.cause = cause
	return &clone
}

// Local builds a local-origin error.
func Local(message string) *Error {
	return &Error{Origin: OriginLocal, Message: message}
}

// Localf builds a local-origin error from a format string.
func Localf(format string, args ...any) *Error {
	return Local(fmt.Sprintf(format, args...))
}

// Network builds a network-origin error. The cause's message becomes the
// detail line when a cause is given.
func Network(message string, cause error) *Error {
	e := &Error{Origin: OriginNetwork, Message: message, cause: cause}
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}

// Server builds a server-origin error from the fields of an API error body.
func Server(httpStatus int, message, code, detail, field string) *Error {
	return &Error{
		Origin:     OriginServer,
		Message:    message,
		Code:       code,
		HTTPStatus: httpStatus,
		Detail:     detail,
		Field:      field,
	}
}

// From extracts a *Error from an error chain. Anything that is not already
// tagged is treated as a local error so no failure escapes untagged.
func From(err error) *Error {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged
	}
	return Local(err.Error()).WithCause(err)
}
