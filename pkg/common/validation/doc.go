// Package validation provides common validation utilities for operator
// arguments across the seqflow library.
//
// Operators validate their arguments when they are constructed, not when
// they are first traversed. A nil source or a nil function is a programming
// error, so constructors report it by panicking with a
// *errors.ValidationError (see [Must] and [NotNil]); the recovered value
// still matches errors.ErrInvalidArgument through errors.Is.
package validation
