package sortstate

import (
	"errors"
	"fmt"
)

// ErrEmptyField classifies registration calls with an empty field name.
var ErrEmptyField = errors.New("sortstate: field name must not be empty")

// UnknownFieldError is returned when an operation references a field with
// no registered descriptor. Recoverable by the caller: register the field
// first. Without a descriptor the field's default direction is unknowable.
type UnknownFieldError struct {
	Field string
}

// Error implements the error interface.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("sortstate: unknown field %q: no descriptor registered", e.Field)
}

// NewUnknownFieldError creates a new UnknownFieldError.
func NewUnknownFieldError(field string) *UnknownFieldError {
	return &UnknownFieldError{Field: field}
}

// InvalidStateError reports a criteria sequence that violates the state
// invariants: a direction outside the two defined orders, a duplicate
// field, or an empty field name. On a managed criterion this indicates a
// defect in state mutation and should propagate as a hard failure rather
// than be swallowed.
type InvalidStateError struct {
	Field  string
	Order  Order
	Reason string
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("sortstate: invalid state on field %q (order %q): %s", e.Field, e.Order, e.Reason)
}

// NewInvalidStateError creates a new InvalidStateError.
func NewInvalidStateError(field string, order Order, reason string) *InvalidStateError {
	return &InvalidStateError{Field: field, Order: order, Reason: reason}
}
