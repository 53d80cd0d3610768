package catalog

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("product not found")

// ErrorKind distinguishes "fix your input" failures from "try again later"
// ones so callers can map them to the right status code.
type ErrorKind string

const (
	KindInvalidFilter    ErrorKind = "invalid_filter"
	KindStoreUnavailable ErrorKind = "store_unavailable"
)

// Error is a structured failure with a kind and a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// NewInvalidFilter reports a malformed or contradictory filter. The request
// is aborted; no partial result is produced.
func NewInvalidFilter(msg string) *Error {
	return &Error{Kind: KindInvalidFilter, Message: msg}
}

// NewStoreUnavailable wraps a gateway I/O failure. The core holds no cache
// and does not retry; callers decide whether to try again.
func NewStoreUnavailable(msg string, cause error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: msg, cause: cause}
}

func IsInvalidFilter(err error) bool { return hasKind(err, KindInvalidFilter) }

func IsStoreUnavailable(err error) bool { return hasKind(err, KindStoreUnavailable) }

func hasKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
