// Package apperr defines the typed error kinds raised by the service layer.
// Handlers map each kind to an HTTP status; anything that is not an
// *apperr.Error is treated as an internal error and its detail is never
// exposed in production responses.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a service-layer failure.
type Kind int

const (
	// KindValidation marks malformed or out-of-policy input.
	KindValidation Kind = iota
	// KindAuthorization marks a failed role or ownership check.
	KindAuthorization
	// KindNotFound marks a missing entity. Also used for intentionally
	// hidden entities, so hidden drafts are indistinguishable from absence.
	KindNotFound
	// KindConflict marks a duplicate or self-referential state change.
	KindConflict
)

// Error is a typed service error with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation returns a validation error with a formatted message.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Authorization returns an authorization error with a formatted message.
func Authorization(format string, args ...any) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a not-found error with a formatted message.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a conflict error with a formatted message.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from err. The second return is false when err is
// not a typed service error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err is a typed service error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
