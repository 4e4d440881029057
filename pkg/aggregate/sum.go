package aggregate

import (
	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// Sum returns the sum of the elements of source, zero when it is empty.
// Integral sums fail with errors.ErrOverflow when they leave the range of N;
// float sums never overflow.
func Sum[N Number](source sequence.Sequence[N]) (N, error) {
	validation.NotNil("aggregate.Sum", "source", source)
	return sum(source, func(v N) (N, bool) { return v, true })
}

// SumOf returns the sum of the projections of the elements of source.
func SumOf[T any, N Number](source sequence.Sequence[T], selector func(T) N) (N, error) {
	validation.NotNil("aggregate.SumOf", "source", source, "selector", selector)
	return sum(source, func(v T) (N, bool) { return selector(v), true })
}

// SumNullable returns the sum of the non-nil elements of source. An empty or
// all-nil source sums to zero.
func SumNullable[N Number](source sequence.Sequence[*N]) (N, error) {
	validation.NotNil("aggregate.SumNullable", "source", source)
	return sum(source, deref[N])
}

// SumOfNullable returns the sum of the non-nil projections of the elements of source.
func SumOfNullable[T any, N Number](source sequence.Sequence[T], selector func(T) *N) (N, error) {
	validation.NotNil("aggregate.SumOfNullable", "source", source, "selector", selector)
	return sum(source, func(v T) (N, bool) { return deref(selector(v)) })
}

func deref[N any](p *N) (N, bool) {
	if p == nil {
		var zero N
		return zero, false
	}
	return *p, true
}

func sum[T any, N Number](source sequence.Sequence[T], value func(T) (N, bool)) (N, error) {
	a := newAdder[N]()
	var total N
	var failure error
	err := sequence.Walk(source, func(v T) bool {
		n, ok := value(v)
		if !ok {
			return true
		}
		total, failure = a.add(total, n)
		return failure == nil
	})
	if err == nil {
		err = failure
	}
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Average returns the mean of the elements of source. It fails with
// errors.ErrNoElements when source is empty and with errors.ErrOverflow when
// the 64-bit running sum of an integral source overflows.
func Average[N Number](source sequence.Sequence[N]) (float64, error) {
	validation.NotNil("aggregate.Average", "source", source)
	return average(source, func(v N) (N, bool) { return v, true })
}

// AverageOf returns the mean of the projections of the elements of source.
func AverageOf[T any, N Number](source sequence.Sequence[T], selector func(T) N) (float64, error) {
	validation.NotNil("aggregate.AverageOf", "source", source, "selector", selector)
	return average(source, func(v T) (N, bool) { return selector(v), true })
}

// AverageNullable returns the mean of the non-nil elements of source, or nil
// when there are none.
func AverageNullable[N Number](source sequence.Sequence[*N]) (*float64, error) {
	validation.NotNil("aggregate.AverageNullable", "source", source)
	return averageNullable(source, deref[N])
}

// AverageOfNullable returns the mean of the non-nil projections of the
// elements of source, or nil when there are none.
func AverageOfNullable[T any, N Number](source sequence.Sequence[T], selector func(T) *N) (*float64, error) {
	validation.NotNil("aggregate.AverageOfNullable", "source", source, "selector", selector)
	return averageNullable(source, func(v T) (N, bool) { return deref(selector(v)) })
}

func accumulate[T any, N Number](source sequence.Sequence[T], value func(T) (N, bool)) (*averager[N], error) {
	avg := newAverager[N]()
	var failure error
	err := sequence.Walk(source, func(v T) bool {
		n, ok := value(v)
		if !ok {
			return true
		}
		failure = avg.add(n)
		return failure == nil
	})
	if err == nil {
		err = failure
	}
	return avg, err
}

func average[T any, N Number](source sequence.Sequence[T], value func(T) (N, bool)) (float64, error) {
	avg, err := accumulate(source, value)
	if err != nil {
		return 0, err
	}
	if avg.count == 0 {
		return 0, sferrors.ErrNoElements
	}
	return avg.mean(), nil
}

func averageNullable[T any, N Number](source sequence.Sequence[T], value func(T) (N, bool)) (*float64, error) {
	avg, err := accumulate(source, value)
	if err != nil || avg.count == 0 {
		return nil, err
	}
	mean := avg.mean()
	return &mean, nil
}
