// Package apperr classifies application errors so the HTTP boundary can map
// them to status codes without inspecting error strings.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the fixed classification carried by every application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindConflict
	KindNotFound
)

// Error is a tagged error with a client-safe message.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Wrap attaches a classification and client-safe message to an underlying
// error while keeping the cause reachable via errors.Unwrap.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

// Internal wraps an unexpected fault. Its message is never shown to clients.
func Internal(err error) *Error {
	return &Error{kind: KindInternal, msg: "Internal Server Error", err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// KindOf returns the classification of err. Anything without an explicit
// classification is treated as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return KindInternal
}

// Message returns the text safe to send to a client. Internal errors never
// echo their cause.
func Message(err error) string {
	if KindOf(err) == KindInternal {
		return "Internal Server Error"
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.msg
	}
	return "Internal Server Error"
}

// Status maps a classification to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
