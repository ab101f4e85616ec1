// Package apperr defines the closed set of application error kinds and
// their HTTP status mapping.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind int

// Error kinds. The list is closed; Status must handle every value.
const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindPayloadTooLarge
	KindTooManyRequests
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// String returns a short name used in logs.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPayloadTooLarge:
		return "payload_too_large"
	case KindTooManyRequests:
		return "too_many_requests"
	default:
		return "internal"
	}
}

// Error is an application error with a user-visible message.
// Err holds the underlying cause and is never sent to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error.
func (e *Error) Status() int {
	return e.Kind.Status()
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind that keeps err as its cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// BadRequest returns a 400 error.
func BadRequest(message string) *Error { return New(KindBadRequest, message) }

// Unauthorized returns a 401 error.
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

// Forbidden returns a 403 error.
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// NotFound returns a 404 error.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Conflict returns a 409 error.
func Conflict(message string) *Error { return New(KindConflict, message) }

// Internal wraps an unexpected error as a 500.
func Internal(err error) *Error {
	return Wrap(KindInternal, InternalMessage, err)
}

// InternalMessage is the only text clients see for unexpected failures.
const InternalMessage = "На сервере произошла ошибка"

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
