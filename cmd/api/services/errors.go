package services

import (
	"errors"
	"net/http"
)

// ErrorKind is the machine-readable class of a request failure.
type ErrorKind string

const (
	KindUnauthenticated  ErrorKind = "Unauthenticated"
	KindPermissionDenied ErrorKind = "PermissionDenied"
	KindInvalidArgument  ErrorKind = "InvalidArgument"
	KindNotFound         ErrorKind = "NotFound"
	KindInternal         ErrorKind = "Internal"
)

const internalRetryMessage = "Something went wrong. Please try again later."

// Error is returned to API callers as-is. Anything else is reported as Internal.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// HTTPStatus maps the kind to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// AsError returns err as a typed *Error, turning unknown errors into Internal.
func AsError(err error) *Error {
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return newError(KindInternal, internalRetryMessage)
}

var errClassifierQuotaExhausted = errors.New("classifier daily quota exhausted")
