package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure for the transport layer. The set is
// closed; callers switch on the kind, never on error text.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindForbidden  ErrorKind = "forbidden"
	KindBadRequest ErrorKind = "bad_request"
	KindConflict   ErrorKind = "conflict"
	KindInternal   ErrorKind = "internal"
)

// Error carries an error kind, the resource it concerns and a message.
type Error struct {
	Kind     ErrorKind
	Resource string
	Message  string
	cause    error
}

func (e *Error) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Resource, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is match on kind and resource, so sentinel-style
// comparisons like errors.Is(err, domain.ErrProductNotFound) work even
// when the message differs.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Resource == "" || e.Resource == t.Resource)
}

// Sentinels for errors.Is checks.
var (
	ErrProductNotFound     = &Error{Kind: KindNotFound, Resource: "product"}
	ErrRentRequestNotFound = &Error{Kind: KindNotFound, Resource: "rent_request"}
	ErrUserNotFound        = &Error{Kind: KindNotFound, Resource: "user"}
	ErrLocationNotFound    = &Error{Kind: KindNotFound, Resource: "location"}
	ErrNotAllowed          = &Error{Kind: KindForbidden}
	ErrConflict            = &Error{Kind: KindConflict}
)

func NotFound(resource, id string) error {
	return &Error{Kind: KindNotFound, Resource: resource, Message: fmt.Sprintf("no %s with id %q", resource, id)}
}

func LocationNotFound(query string) error {
	return &Error{Kind: KindNotFound, Resource: "location", Message: fmt.Sprintf("no location found for %q", query)}
}

func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func BadRequest(msg string) error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func Conflict(resource, msg string) error {
	return &Error{Kind: KindConflict, Resource: resource, Message: msg}
}

func Internal(op string, cause error) error {
	return &Error{Kind: KindInternal, Message: op, cause: cause}
}

// KindOf returns the kind of err, or KindInternal for errors that did
// not originate in this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
