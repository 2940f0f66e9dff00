package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the outcomes the API reports.
type Kind int

const (
	// Unauthenticated covers missing, malformed and expired credentials.
	Unauthenticated Kind = iota + 1
	// Forbidden means the credential was valid but the role is not allowed.
	Forbidden
	// NotFound covers both absent entities and entities outside the
	// caller's gym. The two are deliberately indistinguishable.
	NotFound
	// Validation covers malformed input and cross-gym reference mismatches.
	Validation
	// Conflict covers duplicate check-ins and duplicate emails on create.
	Conflict
	// Transient marks store timeouts and unavailability. Safe to retry.
	Transient
	// Internal is everything unexpected. Logged, never detailed to callers.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case Transient:
		return "transient"
	default:
		return "internal"
	}
}

// Error is an error with a Kind and a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind with a caller-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and caller-safe message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of err, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// MessageOf returns the caller-safe message of err. Internal errors get a
// generic message so no detail leaks.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "internal server error"
}
