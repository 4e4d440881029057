package aggregate

import (
	"cmp"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// best keeps the first element v for which better(v, current) holds against
// every later element. found is false when no element was considered.
func best[T, V any](source sequence.Sequence[T], value func(T) (V, bool), better func(a, b V) bool) (result V, found bool, err error) {
	err = sequence.ForEach(source, func(v T) {
		x, ok := value(v)
		if !ok {
			return
		}
		if !found || better(x, result) {
			result, found = x, true
		}
	})
	return result, found, err
}

func less[V cmp.Ordered](a, b V) bool    { return cmp.Compare(a, b) < 0 }
func greater[V cmp.Ordered](a, b V) bool { return cmp.Compare(a, b) > 0 }

func self[T any](v T) (T, bool) { return v, true }

func extreme[T, V any](source sequence.Sequence[T], value func(T) (V, bool), better func(a, b V) bool) (V, error) {
	v, found, err := best(source, value, better)
	if err == nil && !found {
		err = sferrors.ErrNoElements
	}
	return v, err
}

func extremeNullable[T, V any](source sequence.Sequence[T], value func(T) (V, bool), better func(a, b V) bool) (*V, error) {
	v, found, err := best(source, value, better)
	if err != nil || !found {
		return nil, err
	}
	return &v, nil
}

// Min returns the smallest element of source. NaN orders below every other
// float, so a float source containing NaN has NaN as its minimum.
func Min[N cmp.Ordered](source sequence.Sequence[N]) (N, error) {
	validation.NotNil("aggregate.Min", "source", source)
	return extreme(source, self[N], less[N])
}

// Max returns the largest element of source.
func Max[N cmp.Ordered](source sequence.Sequence[N]) (N, error) {
	validation.NotNil("aggregate.Max", "source", source)
	return extreme(source, self[N], greater[N])
}

// MinOf returns the smallest projection of the elements of source.
func MinOf[T any, N cmp.Ordered](source sequence.Sequence[T], selector func(T) N) (N, error) {
	validation.NotNil("aggregate.MinOf", "source", source, "selector", selector)
	return extreme(source, func(v T) (N, bool) { return selector(v), true }, less[N])
}

// MaxOf returns the largest projection of the elements of source.
func MaxOf[T any, N cmp.Ordered](source sequence.Sequence[T], selector func(T) N) (N, error) {
	validation.NotNil("aggregate.MaxOf", "source", source, "selector", selector)
	return extreme(source, func(v T) (N, bool) { return selector(v), true }, greater[N])
}

// MinFunc returns the first element of source that compare orders below or
// equal to every other element.
func MinFunc[T any](source sequence.Sequence[T], compare func(a, b T) int) (T, error) {
	validation.NotNil("aggregate.MinFunc", "source", source, "compare", compare)
	return extreme(source, self[T], func(a, b T) bool { return compare(a, b) < 0 })
}

// MaxFunc returns the first element of source that compare orders above or
// equal to every other element.
func MaxFunc[T any](source sequence.Sequence[T], compare func(a, b T) int) (T, error) {
	validation.NotNil("aggregate.MaxFunc", "source", source, "compare", compare)
	return extreme(source, self[T], func(a, b T) bool { return compare(a, b) > 0 })
}

// MinNullable returns the smallest non-nil element of source, or nil when
// there is none.
func MinNullable[N cmp.Ordered](source sequence.Sequence[*N]) (*N, error) {
	validation.NotNil("aggregate.MinNullable", "source", source)
	return extremeNullable(source, deref[N], less[N])
}

// MaxNullable returns the largest non-nil element of source, or nil when
// there is none.
func MaxNullable[N cmp.Ordered](source sequence.Sequence[*N]) (*N, error) {
	validation.NotNil("aggregate.MaxNullable", "source", source)
	return extremeNullable(source, deref[N], greater[N])
}

// MinOfNullable returns the smallest non-nil projection of the elements of
// source, or nil when there is none.
func MinOfNullable[T any, N cmp.Ordered](source sequence.Sequence[T], selector func(T) *N) (*N, error) {
	validation.NotNil("aggregate.MinOfNullable", "source", source, "selector", selector)
	return extremeNullable(source, func(v T) (N, bool) { return deref(selector(v)) }, less[N])
}

// MaxOfNullable returns the largest non-nil projection of the elements of
// source, or nil when there is none.
func MaxOfNullable[T any, N cmp.Ordered](source sequence.Sequence[T], selector func(T) *N) (*N, error) {
	validation.NotNil("aggregate.MaxOfNullable", "source", source, "selector", selector)
	return extremeNullable(source, func(v T) (N, bool) { return deref(selector(v)) }, greater[N])
}
