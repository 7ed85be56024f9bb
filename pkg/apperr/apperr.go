// Package apperr defines the operational error taxonomy shared by all layers.
// An operational error is an expected, client-facing failure carrying a fixed
// HTTP status; anything else is treated as an internal fault.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an operational error.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal"
)

// Error is an operational error with a client-facing message and HTTP status.
type Error struct {
	Kind    Kind
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound returns a 404 operational error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Status: http.StatusNotFound}
}

// Validation returns a 422 operational error. The message carries every
// violated rule, joined by the validator.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Status: http.StatusUnprocessableEntity}
}

// Unauthorized returns a 401 operational error.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

// Internal returns a 500 operational error with an explicit message.
func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message, Status: http.StatusInternalServerError}
}

// Classify returns the HTTP status and client-facing message for err.
// Operational errors surface with their exact status and message, even when
// wrapped; anything else maps to a generic 500.
func Classify(err error) (int, string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

// IsKind reports whether err is an operational error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
