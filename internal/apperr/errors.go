// Package apperr defines the error kinds shared by the domain, use-case and
// storage layers. The HTTP layer maps a Kind to a status code.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuthorization
	KindAuthentication
	KindInfrastructure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuthorization:
		return "authorization"
	case KindAuthentication:
		return "authentication"
	case KindInfrastructure:
		return "infrastructure"
	default:
		return "internal"
	}
}

// InfraMessage is the user-facing text for storage and cache failures.
const InfraMessage = "service temporarily unavailable"

// Error carries a kind and a message that is safe to show to clients.
// Err is the underlying cause and is never rendered.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(msg string) *Error     { return newError(KindValidation, msg) }
func Conflict(msg string) *Error       { return newError(KindConflict, msg) }
func NotFound(msg string) *Error       { return newError(KindNotFound, msg) }
func Authorization(msg string) *Error  { return newError(KindAuthorization, msg) }
func Authentication(msg string) *Error { return newError(KindAuthentication, msg) }

// Infra wraps a storage or cache failure. A nil err returns nil.
func Infra(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindInfrastructure, Message: InfraMessage, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Message returns the client-safe message for err.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
