package join

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/seqflow/pkg/sequence"
)

type customer struct {
	id   *int
	name string
}

type order struct {
	customer *int
	item     string
}

func ptr(v int) *int { return &v }

var (
	one, two, three = ptr(1), ptr(2), ptr(3)

	customers = []customer{
		{one, "ann"}, {two, "bob"}, {nil, "ghost"}, {three, "cat"},
	}
	orders = []order{
		{two, "tea"}, {one, "pen"}, {nil, "lost"}, {two, "cup"},
	}
)

func customerID(c customer) any { return deref(c.id) }
func orderCustomer(o order) any { return deref(o.customer) }

// deref keeps nil keys nil and compares the rest by value.
func deref(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func TestJoin(t *testing.T) {
	s := Join(sequence.FromSlice(customers), sequence.FromSlice(orders), customerID, orderCustomer,
		func(c customer, o order) string { return c.name + ":" + o.item })

	got, err := sequence.ToSlice(s)
	require.NoError(t, err)
	// Outer order first, then inner arrival order; nil keys never match.
	require.Equal(t, []string{"ann:pen", "bob:tea", "bob:cup"}, got)
}

func TestJoinCardinality(t *testing.T) {
	outer := sequence.Of(1, 1, 2)
	inner := sequence.Of(1, 1, 1, 3)
	n := 0
	err := sequence.ForEach(Join(outer, inner, func(v int) int { return v }, func(v int) int { return v },
		func(a, b int) int { return a + b }), func(int) { n++ })
	require.NoError(t, err)
	require.Equal(t, 6, n)
}

func TestJoinWith(t *testing.T) {
	s := JoinWith(sequence.Of("Go", "Zig"), sequence.Of("go1", "GO2", "zig"),
		func(s string) string { return s },
		func(s string) string { return strings.TrimRight(s, "0123456789") },
		func(a, b string) string { return a + "=" + b }, sequence.FoldCase)
	got, err := sequence.ToSlice(s)
	require.NoError(t, err)
	require.Equal(t, []string{"Go=go1", "Go=GO2", "Zig=zig"}, got)
}

func TestGroupJoin(t *testing.T) {
	s := GroupJoin(sequence.FromSlice(customers), sequence.FromSlice(orders), customerID, orderCustomer,
		func(c customer, os sequence.Sequence[order]) string {
			items, _ := sequence.ToSlice(sequence.Select(os, func(o order) string { return o.item }))
			return fmt.Sprintf("%s%v", c.name, items)
		})

	got, err := sequence.ToSlice(s)
	require.NoError(t, err)
	require.Equal(t, []string{"ann[pen]", "bob[tea cup]", "ghost[]", "cat[]"}, got)
}

func TestGroupJoinWith(t *testing.T) {
	s := GroupJoinWith(sequence.Of("a", "B"), sequence.Of("A", "a", "b"),
		func(s string) string { return s }, func(s string) string { return s },
		func(k string, m sequence.Sequence[string]) string {
			all, _ := sequence.ToSlice(m)
			return k + strings.Join(all, "")
		}, sequence.FoldCase)
	got, err := sequence.ToSlice(s)
	require.NoError(t, err)
	require.Equal(t, []string{"aAa", "Bb"}, got)
}

func TestJoinIsDeferred(t *testing.T) {
	innerCalls := 0
	s := Join(sequence.Of(1), sequence.Of(1, 2), func(v int) int { return v },
		func(v int) int {
			innerCalls++
			return v
		}, func(a, b int) int { return a * b })
	require.Zero(t, innerCalls)

	c := s.Cursor()
	require.Zero(t, innerCalls)
	require.True(t, c.Next())
	require.Positive(t, innerCalls)
	require.NoError(t, c.Close())
}

func TestJoinInnerFailure(t *testing.T) {
	boom := errors.New("boom")
	inner := sequence.TrySelect(sequence.Of(1), func(int) (int, error) { return 0, boom })
	_, err := sequence.ToSlice(Join(sequence.Of(1), inner, func(v int) int { return v },
		func(v int) int { return v }, func(a, b int) int { return a }))
	require.ErrorIs(t, err, boom)
}

func TestInnerKeyExtractedOncePerElement(t *testing.T) {
	id := func(v int) int { return v }
	tests := []struct {
		name string
		run  func(innerKey func(int) int) error
	}{
		{"Join", func(innerKey func(int) int) error {
			_, err := sequence.ToSlice(Join(sequence.Of(1, 2), sequence.Of(1, 2, 3), id, innerKey,
				func(a, b int) int { return a + b }))
			return err
		}},
		{"JoinWith", func(innerKey func(int) int) error {
			_, err := sequence.ToSlice(JoinWith(sequence.Of(1, 2), sequence.Of(1, 2, 3), id, innerKey,
				func(a, b int) int { return a + b }, sequence.Comparable[int]()))
			return err
		}},
		{"GroupJoin", func(innerKey func(int) int) error {
			_, err := sequence.ToSlice(GroupJoin(sequence.Of(1, 2), sequence.Of(1, 2, 3), id, innerKey,
				func(a int, _ sequence.Sequence[int]) int { return a }))
			return err
		}},
		{"GroupJoinWith", func(innerKey func(int) int) error {
			_, err := sequence.ToSlice(GroupJoinWith(sequence.Of(1, 2), sequence.Of(1, 2, 3), id, innerKey,
				func(a int, _ sequence.Sequence[int]) int { return a }, sequence.Comparable[int]()))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := tt.run(func(v int) int {
				calls++
				return v
			})
			require.NoError(t, err)
			require.Equal(t, 3, calls)
		})
	}
}

func TestJoinStatefulInnerKey(t *testing.T) {
	n := 0
	next := func(string) int {
		k := n
		n++
		return k
	}
	s := Join(sequence.Of(0, 1, 2), sequence.Of("a", "b", "c"), func(v int) int { return v }, next,
		func(_ int, v string) string { return v })

	got, err := sequence.ToSlice(s)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestJoinNilInnerKeysSkipped(t *testing.T) {
	calls := 0
	key := func(o order) any {
		calls++
		return orderCustomer(o)
	}
	s := GroupJoin(sequence.FromSlice(customers), sequence.FromSlice(orders), customerID, key,
		func(c customer, m sequence.Sequence[order]) int {
			n, _ := sequence.ToSlice(m)
			return len(n)
		})

	got, err := sequence.ToSlice(s)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 0, 0}, got)
	require.Equal(t, len(orders), calls)
}
