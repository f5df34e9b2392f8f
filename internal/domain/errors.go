package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references an item id that is
// not in the store. It is always recoverable.
var ErrNotFound = errors.New("item not found")

// ValidationError reports a bad user-supplied draft, e.g. an empty name.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseError wraps a malformed import payload or persisted snapshot. The
// gateway recovers from it by falling back to defaults; import surfaces it
// to the caller with the in-memory state untouched.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed payload: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// PersistenceError reports a failed read or write of the durable slot. The
// in-memory state remains authoritative when it occurs.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }
