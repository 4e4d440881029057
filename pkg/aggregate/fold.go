package aggregate

import (
	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// Fold applies fn to an accumulator and every element of source in turn,
// starting from seed.
func Fold[T, A any](source sequence.Sequence[T], seed A, fn func(A, T) A) (A, error) {
	validation.NotNil("aggregate.Fold", "source", source, "fn", fn)
	acc := seed
	err := sequence.ForEach(source, func(v T) { acc = fn(acc, v) })
	if err != nil {
		var zero A
		return zero, err
	}
	return acc, nil
}

// FoldResult is Fold followed by a projection of the final accumulator.
func FoldResult[T, A, R any](source sequence.Sequence[T], seed A, fn func(A, T) A, result func(A) R) (R, error) {
	validation.NotNil("aggregate.FoldResult", "source", source, "fn", fn, "result", result)
	acc, err := Fold(source, seed, fn)
	if err != nil {
		var zero R
		return zero, err
	}
	return result(acc), nil
}

// Reduce folds source using its first element as the seed. It fails with
// errors.ErrNoElements when source is empty.
func Reduce[T any](source sequence.Sequence[T], fn func(T, T) T) (T, error) {
	validation.NotNil("aggregate.Reduce", "source", source, "fn", fn)
	var acc T
	found := false
	err := sequence.ForEach(source, func(v T) {
		if !found {
			acc, found = v, true
			return
		}
		acc = fn(acc, v)
	})
	if err == nil && !found {
		err = sferrors.ErrNoElements
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return acc, nil
}
