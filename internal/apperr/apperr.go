// Package apperr carries the typed error taxonomy the services raise and the
// HTTP boundary maps to status codes.
package apperr

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeNotFound          Code = "not_found"
	CodeForbidden         Code = "forbidden"
	CodeUnauthorized      Code = "unauthorized"
	CodeInvalidInput      Code = "invalid_input"
	CodeInvalidTransition Code = "invalid_transition"
	CodeConflict          Code = "conflict"
	CodeInternal          Code = "internal"
)

type Error struct {
	Code    Code
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

func New(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message, nil)
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message, nil)
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message, nil)
}

func InvalidInput(message string) *Error {
	return New(CodeInvalidInput, message, nil)
}

func InvalidTransition(message string) *Error {
	return New(CodeInvalidTransition, message, nil)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message, nil)
}

func Internal(message string, err error) *Error {
	return New(CodeInternal, message, err)
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// HTTPStatus maps an error to the status code the boundary handler writes.
// Unknown errors are treated as internal.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeInvalidInput, CodeInvalidTransition, CodeConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
