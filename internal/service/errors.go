package service

import (
	"errors"
	"fmt"

	"github.com/Marga-Ghale/ora-lists/internal/repository"
)

// Error kinds. Every error returned by the access layer matches exactly one
// of these with errors.Is.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrForbidden   = errors.New("forbidden")
	ErrNotFound    = errors.New("not found")
	ErrNotUnique   = errors.New("not unique")
	ErrServerError = errors.New("server error")
)

// Error is a typed failure carrying the operation that raised it and, for
// storage failures, the original cause.
type Error struct {
	Kind    error  // one of the Err* kinds
	Op      string // operation tag, e.g. "ListService.Insert"
	Message string
	Err     error // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// KindOf returns the kind of err, ErrServerError for foreign errors and nil
// for nil.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrBadRequest, ErrForbidden, ErrNotFound, ErrNotUnique, ErrServerError} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrServerError
}

// MessageOf returns the client-facing message for err. Server errors never
// expose their cause.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != ErrServerError && e.Message != "" {
		return e.Message
	}
	return KindOf(err).Error()
}

// storageError translates a repository failure into the error taxonomy.
func storageError(op string, err error) *Error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return &Error{Kind: ErrNotUnique, Op: op, Message: "already exists", Err: err}
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrForeignKey):
		return &Error{Kind: ErrNotFound, Op: op, Message: "referenced record not found", Err: err}
	default:
		return &Error{Kind: ErrServerError, Op: op, Message: "storage failure", Err: err}
	}
}
