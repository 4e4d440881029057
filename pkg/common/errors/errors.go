package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the seqflow library

var (
	// ErrInvalidArgument indicates a nil source, a nil function argument or an
	// inconsistent count passed to an operator constructor
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange indicates index-based access beyond the bounds of a sequence
	ErrOutOfRange = errors.New("index out of range")

	// ErrNoElements indicates that an operation required at least one element
	ErrNoElements = errors.New("sequence contains no elements")

	// ErrNoMatch indicates that no element satisfied the predicate
	ErrNoMatch = errors.New("sequence contains no matching element")

	// ErrMoreThanOne indicates that a single element was expected but more were found
	ErrMoreThanOne = errors.New("sequence contains more than one element")

	// ErrMoreThanOneMatch indicates that more than one element satisfied the predicate
	ErrMoreThanOneMatch = errors.New("sequence contains more than one matching element")

	// ErrDuplicateKey indicates a key already present in a dictionary
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNilKey indicates a nil key where keys must be non-nil
	ErrNilKey = errors.New("nil key")

	// ErrOverflow indicates that integral arithmetic exceeded its representable range
	ErrOverflow = errors.New("arithmetic overflow")

	// ErrInvalidCast indicates that an element could not be converted to the requested type
	ErrInvalidCast = errors.New("invalid cast")
)

// IsCardinality returns true if the error reports an unexpected number of
// elements (none or too many)
func IsCardinality(err error) bool {
	return errors.Is(err, ErrNoElements) || errors.Is(err, ErrNoMatch) ||
		errors.Is(err, ErrMoreThanOne) || errors.Is(err, ErrMoreThanOneMatch)
}

// ValidationError describes an invalid argument passed to an operator.
type ValidationError struct {
	Module string
	Field  string
	Value  any
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given operator argument.
func NewValidationError(module, field string, value any, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint to the error.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap makes every ValidationError match ErrInvalidArgument.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

// IsValidationError returns true if err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// KeyError reports a rejected dictionary key.
type KeyError struct {
	Key any
	Err error
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	return fmt.Sprintf("%v: %v", e.Err, e.Key)
}

// Unwrap returns the underlying sentinel.
func (e *KeyError) Unwrap() error {
	return e.Err
}

// CastError reports an element whose dynamic type does not match the target type.
type CastError struct {
	Value  any
	Target string
}

// Error implements the error interface.
func (e *CastError) Error() string {
	return fmt.Sprintf("%v: %T is not %s", ErrInvalidCast, e.Value, e.Target)
}

// Unwrap returns ErrInvalidCast.
func (e *CastError) Unwrap() error {
	return ErrInvalidCast
}
