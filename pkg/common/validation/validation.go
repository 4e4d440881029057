// Package validation provides common validation utilities for the seqflow library.
package validation

import (
	"reflect"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

// ValidateNonNegative validates that a count is non-negative (>= 0).
// Returns a ValidationError if the value is negative.
func ValidateNonNegative(module, field string, value int) error {
	if value < 0 {
		return sferrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive value")
	}
	return nil
}

// ValidateNotNil validates that a value is not nil.
// Typed nils (a nil func, pointer, map, slice, channel or interface stored in
// value) are treated as nil as well.
// Returns a ValidationError if the value is nil.
func ValidateNotNil(module, field string, value any) error {
	if IsNil(value) {
		return sferrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return sferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// IsNil reports whether v is nil or holds a nil pointer-like value.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer,
		reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// Must panics with err when it is not nil. Operator constructors use it so
// that argument errors surface at the call that builds the operator.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// NotNil panics with a ValidationError when any of the named values is nil.
// Arguments alternate between a field name and its value.
func NotNil(module string, fieldsAndValues ...any) {
	for i := 0; i+1 < len(fieldsAndValues); i += 2 {
		field, _ := fieldsAndValues[i].(string)
		Must(ValidateNotNil(module, field, fieldsAndValues[i+1]))
	}
}
