package aggregate

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/seqflow/internal/testutil/seqtest"
	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

func ptr[T any](v T) *T { return &v }

func TestCount(t *testing.T) {
	n, err := Count(sequence.Range(0, 10))
	require.NoError(t, err)
	require.Equal(t, 10, n)

	n, err = Count(seqtest.Unsized(sequence.Range(0, 7)))
	require.NoError(t, err)
	require.Equal(t, 7, n)

	n, err = CountWhere(sequence.Range(0, 10), func(v int) bool { return v%3 == 0 })
	require.NoError(t, err)
	require.Equal(t, 4, n)

	l, err := LongCount(seqtest.Unsized(sequence.Range(0, 5)))
	require.NoError(t, err)
	require.Equal(t, int64(5), l)

	l, err = LongCountWhere(sequence.Of("a", "bb", "cc"), func(s string) bool { return len(s) == 2 })
	require.NoError(t, err)
	require.Equal(t, int64(2), l)
}

func TestCountOverflow(t *testing.T) {
	huge := sequence.Repeat(byte(0), math.MaxInt32+1)
	_, err := Count(huge)
	require.ErrorIs(t, err, sferrors.ErrOverflow)

	l, err := LongCount(huge)
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt32+1), l)
}

func TestSum(t *testing.T) {
	s, err := Sum(sequence.Of(1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, 6, s)

	empty, err := Sum(sequence.Empty[float64]())
	require.NoError(t, err)
	require.Zero(t, empty)

	lengths, err := SumOf(sequence.Of("a", "bcd"), func(s string) int { return len(s) })
	require.NoError(t, err)
	require.Equal(t, 4, lengths)

	nullable, err := SumNullable(sequence.Of[*int](ptr(2), nil, ptr(5)))
	require.NoError(t, err)
	require.Equal(t, 7, nullable)

	allNil, err := SumNullable(sequence.Of[*int](nil, nil))
	require.NoError(t, err)
	require.Zero(t, allNil)

	of, err := SumOfNullable(sequence.Of("1", "", "2"), func(s string) *int {
		if s == "" {
			return nil
		}
		return ptr(int(s[0] - '0'))
	})
	require.NoError(t, err)
	require.Equal(t, 3, of)
}

func TestSumOverflow(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"int8", func() error { _, err := Sum(sequence.Of[int8](100, 27, 1)); return err }},
		{"int8 negative", func() error { _, err := Sum(sequence.Of[int8](-100, -29)); return err }},
		{"uint16", func() error { _, err := Sum(sequence.Of[uint16](math.MaxUint16, 1)); return err }},
		{"int64", func() error { _, err := Sum(sequence.Of[int64](math.MaxInt64, 1)); return err }},
		{"int64 after dip", func() error { _, err := Sum(sequence.Of[int64](math.MaxInt64-2, -1, 3, 38)); return err }},
		{"int64 average after dip", func() error {
			_, err := Average(sequence.Of[int64](math.MaxInt64-2, -1, 3, 38))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.fn(), sferrors.ErrOverflow)
		})
	}

	f, err := Sum(sequence.Of(math.MaxFloat64, math.MaxFloat64))
	require.NoError(t, err)
	require.True(t, math.IsInf(f, 1))

	f, err = Sum(sequence.Of[float64](math.MaxInt64-2, -1, 3, 38))
	require.NoError(t, err)
	require.InDelta(t, float64(math.MaxInt64), f, 1e4)

	_, err = Average(sequence.Of[float64](math.MaxInt64-2, -1, 3, 38))
	require.NoError(t, err)
}

func TestAverage(t *testing.T) {
	avg, err := Average(sequence.Of(1, 2, 3, 4))
	require.NoError(t, err)
	require.Equal(t, 2.5, avg)

	_, err = Average(sequence.Empty[int]())
	require.ErrorIs(t, err, sferrors.ErrNoElements)

	avg, err = AverageOf(sequence.Of("ab", "abcd"), func(s string) int { return len(s) })
	require.NoError(t, err)
	require.Equal(t, 3.0, avg)

	nullable, err := AverageNullable(sequence.Of[*float64](ptr(1.0), nil, ptr(2.0)))
	require.NoError(t, err)
	require.NotNil(t, nullable)
	require.Equal(t, 1.5, *nullable)

	none, err := AverageNullable(sequence.Of[*int](nil))
	require.NoError(t, err)
	require.Nil(t, none)

	of, err := AverageOfNullable(sequence.Of(1, 2, 3), func(v int) *uint8 {
		if v == 2 {
			return nil
		}
		return ptr(uint8(v))
	})
	require.NoError(t, err)
	require.Equal(t, 2.0, *of)
}

func TestAverageInt64OverflowVersusFloat64(t *testing.T) {
	_, err := Average(sequence.Of[int64](math.MaxInt64, math.MaxInt64))
	require.ErrorIs(t, err, sferrors.ErrOverflow)

	avg, err := Average(sequence.Of(float64(math.MaxInt64), float64(math.MaxInt64)))
	require.NoError(t, err)
	require.Equal(t, float64(math.MaxInt64), avg)

	// Narrow types accumulate in 64 bits, so their averages do not overflow.
	small, err := Average(sequence.Of[int8](127, 127))
	require.NoError(t, err)
	require.Equal(t, 127.0, small)

	unsigned, err := Average(sequence.Of[uint64](math.MaxUint64, 1))
	require.ErrorIs(t, err, sferrors.ErrOverflow)
	require.Zero(t, unsigned)
}

func TestMinMax(t *testing.T) {
	src := sequence.Of(3, 1, 4, 1, 5)

	lo, err := Min(src)
	require.NoError(t, err)
	require.Equal(t, 1, lo)

	hi, err := Max(src)
	require.NoError(t, err)
	require.Equal(t, 5, hi)

	_, err = Min(sequence.Empty[int]())
	require.ErrorIs(t, err, sferrors.ErrNoElements)
	_, err = Max(sequence.Empty[string]())
	require.ErrorIs(t, err, sferrors.ErrNoElements)

	shortest, err := MinOf(sequence.Of("ccc", "a", "bb"), func(s string) int { return len(s) })
	require.NoError(t, err)
	require.Equal(t, 1, shortest)

	longest, err := MaxOf(sequence.Of("ccc", "a", "bb"), func(s string) int { return len(s) })
	require.NoError(t, err)
	require.Equal(t, 3, longest)
}

func TestMinMaxFuncTies(t *testing.T) {
	words := sequence.Of("bb", "AA", "aa", "BB")

	lo, err := MinFunc(words, sequence.CompareFoldCase)
	require.NoError(t, err)
	require.Equal(t, "AA", lo)

	hi, err := MaxFunc(words, sequence.CompareFoldCase)
	require.NoError(t, err)
	require.Equal(t, "bb", hi)

	byLen := func(a, b string) int { return len(a) - len(b) }
	first, err := MaxFunc(sequence.Of("x", "yy", "zz"), byLen)
	require.NoError(t, err)
	require.Equal(t, "yy", first)
}

func TestMinMaxNaN(t *testing.T) {
	src := sequence.Of(1.0, math.NaN(), 2.0)

	lo, err := Min(src)
	require.NoError(t, err)
	require.True(t, math.IsNaN(lo))

	hi, err := Max(src)
	require.NoError(t, err)
	require.Equal(t, 2.0, hi)
}

func TestMinMaxNullable(t *testing.T) {
	src := sequence.Of[*int](nil, ptr(4), ptr(2), nil)

	lo, err := MinNullable(src)
	require.NoError(t, err)
	require.Equal(t, 2, *lo)

	hi, err := MaxNullable(src)
	require.NoError(t, err)
	require.Equal(t, 4, *hi)

	none, err := MinNullable(sequence.Of[*int](nil))
	require.NoError(t, err)
	require.Nil(t, none)

	values := sequence.Of("7", "", "3")
	parse := func(s string) *int {
		if s == "" {
			return nil
		}
		return ptr(int(s[0] - '0'))
	}
	minOf, err := MinOfNullable(values, parse)
	require.NoError(t, err)
	require.Equal(t, 3, *minOf)

	maxOf, err := MaxOfNullable(values, parse)
	require.NoError(t, err)
	require.Equal(t, 7, *maxOf)
}

func TestFold(t *testing.T) {
	joined, err := Fold(sequence.Of("a", "b", "c"), "", func(acc, s string) string { return acc + s })
	require.NoError(t, err)
	require.Equal(t, "abc", joined)

	upper, err := FoldResult(sequence.Of("a", "b"), "", func(acc, s string) string { return acc + s }, strings.ToUpper)
	require.NoError(t, err)
	require.Equal(t, "AB", upper)

	product, err := Reduce(sequence.Of(2, 3, 4), func(a, b int) int { return a * b })
	require.NoError(t, err)
	require.Equal(t, 24, product)

	_, err = Reduce(sequence.Empty[int](), func(a, b int) int { return a + b })
	require.ErrorIs(t, err, sferrors.ErrNoElements)
}

func TestSourceFailure(t *testing.T) {
	boom := errors.New("boom")
	src := seqtest.Failing(boom, 1, 2)

	_, err := Count(src)
	require.ErrorIs(t, err, boom)
	_, err = Sum(src)
	require.ErrorIs(t, err, boom)
	_, err = Average(src)
	require.ErrorIs(t, err, boom)
	_, err = Max(src)
	require.ErrorIs(t, err, boom)
	_, err = Fold(src, 0, func(a, b int) int { return a + b })
	require.ErrorIs(t, err, boom)
}
