package sequence

import (
	"fmt"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

// find returns the first element matching predicate, or found=false.
func find[T any](source Sequence[T], predicate func(T) bool) (value T, found bool, err error) {
	err = Walk(source, func(v T) bool {
		if predicate(v) {
			value, found = v, true
			return false
		}
		return true
	})
	return value, found, err
}

// findLast returns the last element matching predicate, or found=false.
func findLast[T any](source Sequence[T], predicate func(T) bool) (value T, found bool, err error) {
	if ix, ok := source.(Indexer[T]); ok {
		for i := ix.Len() - 1; i >= 0; i-- {
			if v := ix.At(i); predicate(v) {
				return v, true, nil
			}
		}
		return value, false, nil
	}
	err = Walk(source, func(v T) bool {
		if predicate(v) {
			value, found = v, true
		}
		return true
	})
	return value, found, err
}

// findSingle returns the only element matching predicate. It stops pulling
// as soon as a second match is seen.
func findSingle[T any](source Sequence[T], predicate func(T) bool) (value T, matches int, err error) {
	err = Walk(source, func(v T) bool {
		if !predicate(v) {
			return true
		}
		matches++
		if matches == 1 {
			value = v
			return true
		}
		return false
	})
	return value, matches, err
}

func always[T any](T) bool { return true }

// First returns the first element of source.
func First[T any](source Sequence[T]) (T, error) {
	validation.NotNil("sequence.First", "source", source)
	v, found, err := find(source, always[T])
	if err == nil && !found {
		err = sferrors.ErrNoElements
	}
	return v, err
}

// FirstWhere returns the first element of source that satisfies predicate.
func FirstWhere[T any](source Sequence[T], predicate func(T) bool) (T, error) {
	validation.NotNil("sequence.FirstWhere", "source", source, "predicate", predicate)
	v, found, err := find(source, predicate)
	if err == nil && !found {
		err = sferrors.ErrNoMatch
	}
	return v, err
}

// FirstOrDefault returns the first element of source, or the zero value when
// source is empty.
func FirstOrDefault[T any](source Sequence[T]) (T, error) {
	validation.NotNil("sequence.FirstOrDefault", "source", source)
	v, _, err := find(source, always[T])
	return v, err
}

// FirstOrDefaultWhere returns the first element that satisfies predicate, or
// the zero value when none does.
func FirstOrDefaultWhere[T any](source Sequence[T], predicate func(T) bool) (T, error) {
	validation.NotNil("sequence.FirstOrDefaultWhere", "source", source, "predicate", predicate)
	v, _, err := find(source, predicate)
	return v, err
}

// Last returns the last element of source.
func Last[T any](source Sequence[T]) (T, error) {
	validation.NotNil("sequence.Last", "source", source)
	v, found, err := findLast(source, always[T])
	if err == nil && !found {
		err = sferrors.ErrNoElements
	}
	return v, err
}

// LastWhere returns the last element of source that satisfies predicate.
func LastWhere[T any](source Sequence[T], predicate func(T) bool) (T, error) {
	validation.NotNil("sequence.LastWhere", "source", source, "predicate", predicate)
	v, found, err := findLast(source, predicate)
	if err == nil && !found {
		err = sferrors.ErrNoMatch
	}
	return v, err
}

// LastOrDefault returns the last element of source, or the zero value when
// source is empty.
func LastOrDefault[T any](source Sequence[T]) (T, error) {
	validation.NotNil("sequence.LastOrDefault", "source", source)
	v, _, err := findLast(source, always[T])
	return v, err
}

// LastOrDefaultWhere returns the last element that satisfies predicate, or
// the zero value when none does.
func LastOrDefaultWhere[T any](source Sequence[T], predicate func(T) bool) (T, error) {
	validation.NotNil("sequence.LastOrDefaultWhere", "source", source, "predicate", predicate)
	v, _, err := findLast(source, predicate)
	return v, err
}

// Single returns the only element of source. It fails when source is empty
// or holds more than one element.
func Single[T any](source Sequence[T]) (T, error) {
	validation.NotNil("sequence.Single", "source", source)
	return single(source, always[T], sferrors.ErrNoElements, sferrors.ErrMoreThanOne, false)
}

// SingleWhere returns the only element that satisfies predicate.
func SingleWhere[T any](source Sequence[T], predicate func(T) bool) (T, error) {
	validation.NotNil("sequence.SingleWhere", "source", source, "predicate", predicate)
	return single(source, predicate, sferrors.ErrNoMatch, sferrors.ErrMoreThanOneMatch, false)
}

// SingleOrDefault returns the only element of source, or the zero value when
// source is empty. More than one element is still an error.
func SingleOrDefault[T any](source Sequence[T]) (T, error) {
	validation.NotNil("sequence.SingleOrDefault", "source", source)
	return single(source, always[T], sferrors.ErrNoElements, sferrors.ErrMoreThanOne, true)
}

// SingleOrDefaultWhere returns the only element that satisfies predicate, or
// the zero value when none does. More than one match is still an error.
func SingleOrDefaultWhere[T any](source Sequence[T], predicate func(T) bool) (T, error) {
	validation.NotNil("sequence.SingleOrDefaultWhere", "source", source, "predicate", predicate)
	return single(source, predicate, sferrors.ErrNoMatch, sferrors.ErrMoreThanOneMatch, true)
}

func single[T any](source Sequence[T], predicate func(T) bool, none, many error, orDefault bool) (T, error) {
	var zero T
	v, matches, err := findSingle(source, predicate)
	switch {
	case err != nil:
		return zero, err
	case matches > 1:
		return zero, many
	case matches == 0 && !orDefault:
		return zero, none
	}
	return v, nil
}

// ElementAt returns the element at position index.
func ElementAt[T any](source Sequence[T], index int) (T, error) {
	validation.NotNil("sequence.ElementAt", "source", source)
	v, found, err := elementAt(source, index)
	if err == nil && !found {
		err = fmt.Errorf("element %d: %w", index, sferrors.ErrOutOfRange)
	}
	return v, err
}

// ElementAtOrDefault returns the element at position index, or the zero
// value when index is negative or beyond the end.
func ElementAtOrDefault[T any](source Sequence[T], index int) (T, error) {
	validation.NotNil("sequence.ElementAtOrDefault", "source", source)
	v, _, err := elementAt(source, index)
	return v, err
}

func elementAt[T any](source Sequence[T], index int) (value T, found bool, err error) {
	if index < 0 {
		return value, false, nil
	}
	if ix, ok := source.(Indexer[T]); ok {
		if index >= ix.Len() {
			return value, false, nil
		}
		return ix.At(index), true, nil
	}
	i := 0
	return find(source, func(T) bool {
		hit := i == index
		i++
		return hit
	})
}
