package aggregate

import (
	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

// Integer is the set of integral types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Float is the set of floating-point types.
type Float interface {
	~float32 | ~float64
}

// Number is the set of types that can be summed and averaged.
type Number interface {
	Integer | Float
}

func isFloat[N Number]() bool {
	var one N = 1
	return one/2 != 0
}

func isSigned[N Number]() bool {
	var n N
	n--
	return n < 0
}

// adder sums values of N, checking integral sums for overflow in N's width.
type adder[N Number] struct {
	float bool
}

func newAdder[N Number]() adder[N] {
	return adder[N]{float: isFloat[N]()}
}

func (a adder[N]) add(sum, v N) (N, error) {
	s := sum + v
	if !a.float && ((v > 0 && s < sum) || (v < 0 && s > sum)) {
		return sum, sferrors.ErrOverflow
	}
	return s, nil
}

// averager accumulates values of N in 64 bits: signed integers as int64,
// unsigned integers as uint64 and floats as float64.
type averager[N Number] struct {
	float  bool
	signed bool
	fsum   float64
	isum   int64
	usum   uint64
	count  int64
}

func newAverager[N Number]() *averager[N] {
	return &averager[N]{float: isFloat[N](), signed: isSigned[N]()}
}

func (a *averager[N]) add(v N) error {
	switch {
	case a.float:
		a.fsum += float64(v)
	case a.signed:
		iv := int64(v)
		s := a.isum + iv
		if (iv > 0 && s < a.isum) || (iv < 0 && s > a.isum) {
			return sferrors.ErrOverflow
		}
		a.isum = s
	default:
		s := a.usum + uint64(v)
		if s < a.usum {
			return sferrors.ErrOverflow
		}
		a.usum = s
	}
	a.count++
	return nil
}

func (a *averager[N]) mean() float64 {
	switch {
	case a.float:
		return a.fsum / float64(a.count)
	case a.signed:
		return float64(a.isum) / float64(a.count)
	default:
		return float64(a.usum) / float64(a.count)
	}
}
