package sequence

import (
	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

// ToSlice reads source into a new slice.
func ToSlice[T any](source Sequence[T]) ([]T, error) {
	validation.NotNil("sequence.ToSlice", "source", source)
	var out []T
	if sz, ok := source.(Sized); ok {
		out = make([]T, 0, sz.Len())
	}
	err := Walk(source, func(v T) bool {
		out = append(out, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Any reports whether source has at least one element.
func Any[T any](source Sequence[T]) (bool, error) {
	validation.NotNil("sequence.Any", "source", source)
	if sz, ok := source.(Sized); ok {
		return sz.Len() > 0, nil
	}
	_, found, err := find(source, always[T])
	return found, err
}

// AnyWhere reports whether any element satisfies predicate. It stops at the
// first match.
func AnyWhere[T any](source Sequence[T], predicate func(T) bool) (bool, error) {
	validation.NotNil("sequence.AnyWhere", "source", source, "predicate", predicate)
	_, found, err := find(source, predicate)
	return found, err
}

// All reports whether every element satisfies predicate. It stops at the
// first element that does not. An empty source yields true.
func All[T any](source Sequence[T], predicate func(T) bool) (bool, error) {
	validation.NotNil("sequence.All", "source", source, "predicate", predicate)
	_, found, err := find(source, func(v T) bool { return !predicate(v) })
	return !found && err == nil, err
}

// Contains reports whether source holds value.
func Contains[T comparable](source Sequence[T], value T) (bool, error) {
	validation.NotNil("sequence.Contains", "source", source)
	_, found, err := find(source, func(v T) bool { return v == value })
	return found, err
}

// ContainsWith reports whether source holds an element equal to value by eq.
func ContainsWith[T any](source Sequence[T], value T, eq Equality[T]) (bool, error) {
	validation.NotNil("sequence.ContainsWith", "source", source, "eq", eq)
	_, found, err := find(source, func(v T) bool { return eq.Equal(v, value) })
	return found, err
}

// SequenceEqual reports whether first and second hold equal elements in the
// same order.
func SequenceEqual[T comparable](first, second Sequence[T]) (bool, error) {
	validation.NotNil("sequence.SequenceEqual", "first", first, "second", second)
	return sequenceEqual(first, second, func(a, b T) bool { return a == b })
}

// SequenceEqualWith is SequenceEqual with elements matched by eq.
func SequenceEqualWith[T any](first, second Sequence[T], eq Equality[T]) (bool, error) {
	validation.NotNil("sequence.SequenceEqualWith", "first", first, "second", second, "eq", eq)
	return sequenceEqual(first, second, eq.Equal)
}

func sequenceEqual[T any](first, second Sequence[T], equal func(a, b T) bool) (same bool, err error) {
	if a, ok := first.(Sized); ok {
		if b, ok := second.(Sized); ok && a.Len() != b.Len() {
			return false, nil
		}
	}
	c1, c2 := first.Cursor(), second.Cursor()
	defer func() {
		if cerr := closeAll(c1, c2); cerr != nil && err == nil {
			same, err = false, cerr
		}
	}()
	for {
		n1, n2 := c1.Next(), c2.Next()
		if !n1 || !n2 {
			if err := c1.Err(); err != nil {
				return false, err
			}
			if err := c2.Err(); err != nil {
				return false, err
			}
			return n1 == n2, nil
		}
		if !equal(c1.Current(), c2.Current()) {
			return false, nil
		}
	}
}
