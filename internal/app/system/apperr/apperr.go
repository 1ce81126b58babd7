// Package apperr defines the error kinds the service reports to clients.
//
// Every failure that reaches an HTTP handler is either one of these kinds
// (wrapped in an *Error carrying a client-safe message) or an unexpected
// store/driver error, which handlers report as a generic 500.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kinds. Compare with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error is a kind plus a message that is safe to show the caller.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// InvalidInput reports missing or malformed fields or identifiers.
func InvalidInput(format string, args ...any) error {
	return newf(ErrInvalidInput, format, args...)
}

// Forbidden reports an actor who may not perform the operation.
func Forbidden(format string, args ...any) error {
	return newf(ErrForbidden, format, args...)
}

// NotFound reports a missing user, request, or funding.
func NotFound(format string, args ...any) error {
	return newf(ErrNotFound, format, args...)
}

// Conflict reports a lost race or a write that contradicts stored state.
func Conflict(format string, args ...any) error {
	return newf(ErrConflict, format, args...)
}

// HTTPStatus maps err to a status code. Anything that is not a known kind
// is a 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsKnown reports whether err carries one of the kinds above.
func IsKnown(err error) bool {
	return HTTPStatus(err) != http.StatusInternalServerError
}
