package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure. Transport layers translate kinds to
// user facing codes; the core never recovers from them locally.
type Kind string

const (
	KindValidation     Kind = "validation_failed"
	KindConflict       Kind = "conflict"
	KindUnauthorized   Kind = "unauthorized"
	KindNotFound       Kind = "not_found"
	KindAlreadyDeleted Kind = "already_deleted"
	KindNoHandler      Kind = "no_handler_registered"
)

// Error is the typed failure returned by entities, handlers and the dispatcher.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string // field -> rule, only for validation failures
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Kind-only sentinels for errors.Is.
var (
	ErrValidation     = &Error{Kind: KindValidation}
	ErrConflict       = &Error{Kind: KindConflict}
	ErrUnauthorized   = &Error{Kind: KindUnauthorized}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrAlreadyDeleted = &Error{Kind: KindAlreadyDeleted}
	ErrNoHandler      = &Error{Kind: KindNoHandler}
)

func ValidationFailed(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func AlreadyDeleted(msg string) *Error { return &Error{Kind: KindAlreadyDeleted, Message: msg} }

func NoHandlerRegistered(request string) *Error {
	return &Error{Kind: KindNoHandler, Message: "no handler registered for " + request}
}

// KindOf returns the kind of the first *Error in err's chain, or "" when err
// is not a domain error (store failures, cancellation).
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func IsKind(err error, k Kind) bool { return err != nil && KindOf(err) == k }
