// Package apperr carries the machine-readable error kinds surfaced to callers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation        Kind = "VALIDATION_ERROR"
	KindDuplicateIdentity Kind = "DUPLICATE_IDENTITY"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindNotFound          Kind = "NOT_FOUND"
	KindLetterUnavailable Kind = "LETTER_UNAVAILABLE"
	KindAuth              Kind = "AUTH_ERROR"
	KindUnauthenticated   Kind = "UNAUTHENTICATED"
	KindStorage           Kind = "STORAGE_ERROR"
	KindRender            Kind = "RENDER_ERROR"
	KindInternal          Kind = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for KindValidation.
	Fields map[string][]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, apperr.ErrNotFound) works
// regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// Sentinels for errors.Is.
var (
	ErrValidation        = New(KindValidation, "validation failed")
	ErrDuplicateIdentity = New(KindDuplicateIdentity, "identity already exists")
	ErrInvalidTransition = New(KindInvalidTransition, "application is not pending")
	ErrNotFound          = New(KindNotFound, "not found")
	ErrLetterUnavailable = New(KindLetterUnavailable, "admission letter not available")
	ErrAuth              = New(KindAuth, "invalid username or password")
	ErrUnauthenticated   = New(KindUnauthenticated, "authentication required")
	ErrStorage           = New(KindStorage, "storage failure")
	ErrRender            = New(KindRender, "letter rendering failed")
)

// KindOf returns the kind of err, or KindInternal for anything untyped.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindDuplicateIdentity, KindInvalidTransition:
		return http.StatusConflict
	case KindNotFound, KindLetterUnavailable:
		return http.StatusNotFound
	case KindAuth, KindUnauthenticated:
		return http.StatusUnauthorized
	case KindStorage, KindRender:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
