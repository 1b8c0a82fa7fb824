package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error that knows which HTTP status and public message it maps to.
type Error struct {
	Status  int
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Kind returns the HTTP reason phrase for the status, e.g. "Not Found".
func (e *Error) Kind() string {
	return http.StatusText(e.Status)
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func MethodNotAllowed(message string) *Error {
	return New(http.StatusMethodNotAllowed, message)
}

func TooManyRequests(message string) *Error {
	return New(http.StatusTooManyRequests, message)
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Validation carries field -> reason pairs.
func Validation(message string, details map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Details: details}
}

// Internal hides err behind a generic message. The cause is kept for logs.
func Internal(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
		Err:     err,
	}
}

// As returns the typed error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Status returns the HTTP status of err, 500 for untyped errors.
func Status(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
