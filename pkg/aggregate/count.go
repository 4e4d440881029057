package aggregate

import (
	"math"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// Count returns the number of elements in source. The count is limited to
// math.MaxInt32: a longer sequence fails with errors.ErrOverflow. Use
// LongCount for longer sequences.
func Count[T any](source sequence.Sequence[T]) (int, error) {
	validation.NotNil("aggregate.Count", "source", source)
	if sz, ok := source.(sequence.Sized); ok {
		if sz.Len() > math.MaxInt32 {
			return 0, sferrors.ErrOverflow
		}
		return sz.Len(), nil
	}
	return count(source, nil)
}

// CountWhere returns the number of elements that satisfy predicate, limited
// as by Count.
func CountWhere[T any](source sequence.Sequence[T], predicate func(T) bool) (int, error) {
	validation.NotNil("aggregate.CountWhere", "source", source, "predicate", predicate)
	return count(source, predicate)
}

func count[T any](source sequence.Sequence[T], predicate func(T) bool) (int, error) {
	n := 0
	overflow := false
	err := sequence.Walk(source, func(v T) bool {
		if predicate != nil && !predicate(v) {
			return true
		}
		if n == math.MaxInt32 {
			overflow = true
			return false
		}
		n++
		return true
	})
	if err != nil {
		return 0, err
	}
	if overflow {
		return 0, sferrors.ErrOverflow
	}
	return n, nil
}

// LongCount returns the number of elements in source as an int64.
func LongCount[T any](source sequence.Sequence[T]) (int64, error) {
	validation.NotNil("aggregate.LongCount", "source", source)
	if sz, ok := source.(sequence.Sized); ok {
		return int64(sz.Len()), nil
	}
	return longCount(source, nil)
}

// LongCountWhere returns the number of elements that satisfy predicate as an int64.
func LongCountWhere[T any](source sequence.Sequence[T], predicate func(T) bool) (int64, error) {
	validation.NotNil("aggregate.LongCountWhere", "source", source, "predicate", predicate)
	return longCount(source, predicate)
}

func longCount[T any](source sequence.Sequence[T], predicate func(T) bool) (int64, error) {
	var n int64
	err := sequence.ForEach(source, func(v T) {
		if predicate == nil || predicate(v) {
			n++
		}
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
