package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for callers and for transport mapping.
type Kind int

const (
	// KindUnknown is the zero Kind; errors outside this package map to it.
	KindUnknown Kind = iota
	// KindNotFound: the referenced id is absent.
	KindNotFound
	// KindForbidden: the caller is not the owner of the entity.
	KindForbidden
	// KindConflict: the mutation would violate a uniqueness rule.
	KindConflict
	// KindInvalidArgument: the request is malformed (e.g. negative limit).
	KindInvalidArgument
	// KindInsufficientPayment: attached amount below the computed storage cost.
	KindInsufficientPayment
	// KindInternal: a settlement read-back or other internal step failed.
	KindInternal
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindInsufficientPayment:
		return "insufficient_payment"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a kinded failure. InsufficientPayment errors additionally carry
// the attached amount, the required cost, and the shortfall.
type Error struct {
	Kind      Kind
	Msg       string
	Attached  uint64
	Required  uint64
	Shortfall uint64
	wrapped   error
}

func (e *Error) Error() string {
	if e.Kind == KindInsufficientPayment {
		return fmt.Sprintf("%s: %s (attached=%d required=%d shortfall=%d)",
			e.Kind, e.Msg, e.Attached, e.Required, e.Shortfall)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.wrapped }

// NotFound reports an absent id.
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Forbidden reports an owner-only violation.
func Forbidden(format string, args ...interface{}) error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness violation.
func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// InvalidArgument reports a malformed request.
func InvalidArgument(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// InsufficientPayment reports an attached amount below the computed cost.
func InsufficientPayment(attached, required uint64) error {
	return &Error{
		Kind:      KindInsufficientPayment,
		Msg:       "attached payment does not cover the storage cost",
		Attached:  attached,
		Required:  required,
		Shortfall: required - attached,
	}
}

// Internal wraps err as an internal failure.
func Internal(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindInternal, Msg: fmt.Sprintf(format, args...), wrapped: err}
}

// KindOf returns the Kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// As extracts the *Error from err when present.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsForbidden reports whether err is a Forbidden failure.
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

// IsConflict reports whether err is a Conflict failure.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
