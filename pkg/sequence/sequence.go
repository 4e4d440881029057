package sequence

import (
	"errors"
	"iter"

	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

// Cursor is a forward-only position over the elements of a Sequence.
//
// A fresh cursor is positioned before the first element; Next must be called
// before Current. Next returns false at the end of the sequence or when the
// cursor failed, in which case Err reports the failure. Close releases the
// resources the cursor holds, including the cursors it reads from.
type Cursor[T any] interface {
	// Next advances to the next element.
	Next() bool

	// Current returns the element at the current position.
	Current() T

	// Err returns the failure that stopped the cursor, or nil.
	Err() error

	// Close releases the cursor. It is safe to call more than once.
	Close() error
}

// Sequence is a lazily evaluated, ordered collection of elements.
//
// Every call to Cursor starts an independent traversal. Operators built on a
// Sequence evaluate their functions again on every traversal; nothing is
// cached between traversals. Sources that can only be read once, such as
// channels, document that two cursors share the underlying data.
type Sequence[T any] interface {
	Cursor() Cursor[T]
}

// SequenceFunc adapts a cursor factory to the Sequence interface.
type SequenceFunc[T any] func() Cursor[T]

// Cursor calls f.
func (f SequenceFunc[T]) Cursor() Cursor[T] { return f() }

// Sized is implemented by sequences that know their length without a traversal.
type Sized interface {
	Len() int
}

// Indexer is implemented by sequences with constant-time positional access.
// At must only be called with 0 <= i < Len().
type Indexer[T any] interface {
	Sized
	At(i int) T
}

// Values returns an iterator over the elements of source for use with range.
// The cursor is closed when the loop ends; a failure reported by the cursor
// is not visible through the iterator, use Walk or ToSlice when it matters.
func Values[T any](source Sequence[T]) iter.Seq[T] {
	validation.NotNil("sequence.Values", "source", source)
	return func(yield func(T) bool) {
		c := source.Cursor()
		defer func() { _ = c.Close() }()
		for c.Next() {
			if !yield(c.Current()) {
				return
			}
		}
	}
}

// Walk calls fn for every element of source in order until fn returns false.
// It returns the failure reported by the cursor, or by closing it.
func Walk[T any](source Sequence[T], fn func(T) bool) (err error) {
	validation.NotNil("sequence.Walk", "source", source, "fn", fn)
	c := source.Cursor()
	defer closeCursor(c, &err)
	for c.Next() {
		if !fn(c.Current()) {
			return nil
		}
	}
	return c.Err()
}

// ForEach performs an action for each element of source.
func ForEach[T any](source Sequence[T], action func(T)) error {
	validation.NotNil("sequence.ForEach", "action", action)
	return Walk(source, func(v T) bool {
		action(v)
		return true
	})
}

func closeCursor[T any](c Cursor[T], err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

// upstream forwards Err and Close to the cursor an operator reads from.
type upstream[T any] struct {
	src Cursor[T]
}

func (u upstream[T]) Err() error   { return u.src.Err() }
func (u upstream[T]) Close() error { return u.src.Close() }

// closeAll closes every non-nil cursor and joins their errors.
func closeAll(closers ...interface{ Close() error }) error {
	var errs []error
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
