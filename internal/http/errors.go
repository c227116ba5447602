package http

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed request. Exactly one kind is attached to
// every error returned by the client.
type ErrorKind string

const (
	KindInvalidURL         ErrorKind = "invalidURL"
	KindRequestFailed      ErrorKind = "requestFailed"
	KindDecodingFailure    ErrorKind = "decodingFailure"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindSerializationError ErrorKind = "serializationError"
	KindInvalidResponse    ErrorKind = "invalidResponse"
	// KindCancelled is reported when the caller abandons the request.
	// It is not a real failure and should not be shown as one.
	KindCancelled ErrorKind = "cancelled"
	// KindForbidden is reported for 403 responses.
	KindForbidden ErrorKind = "forbidden"
)

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrInvalidURL         = &Error{Kind: KindInvalidURL}
	ErrRequestFailed      = &Error{Kind: KindRequestFailed}
	ErrDecodingFailure    = &Error{Kind: KindDecodingFailure}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrSerializationError = &Error{Kind: KindSerializationError}
	ErrInvalidResponse    = &Error{Kind: KindInvalidResponse}
	ErrCancelled          = &Error{Kind: KindCancelled}
	ErrForbidden          = &Error{Kind: KindForbidden}
)

// Error is the error type returned by Client and Response.
type Error struct {
	Kind ErrorKind

	// StatusCode is set when the error was caused by a received response.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Error implements the error interface
func (e *Error) Error() string {
	s := string(e.Kind)
	if e.StatusCode != 0 {
		s = fmt.Sprintf("%s (status %d)", s, e.StatusCode)
	}
	if e.Err != nil {
		s = fmt.Sprintf("%s: %v", s, e.Err)
	}
	return s
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of err, or "" if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsCancelled reports whether err was caused by the caller abandoning the request.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
