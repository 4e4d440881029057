package grouping

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/seqflow/pkg/sequence"
)

type person struct {
	name string
	age  int
}

var people = []person{
	{"Bart", 4}, {"Rob", 3}, {"Bill", 4}, {"Scott", 5}, {"John", 4},
}

func nameLen(p person) int { return len(p.name) }
func name(p person) string { return p.name }

func TestGroupByOrder(t *testing.T) {
	groups, err := sequence.ToSlice(GroupBySelect(sequence.FromSlice(people), nameLen, name))
	require.NoError(t, err)
	require.Len(t, groups, 3)

	var keys []int
	for _, g := range groups {
		keys = append(keys, g.Key())
	}
	require.Equal(t, []int{4, 3, 5}, keys)
	require.Equal(t, []string{"Bart", "Bill", "John"}, groups[0].Elements())
	require.Equal(t, []string{"Rob"}, groups[1].Elements())
	require.Equal(t, []string{"Scott"}, groups[2].Elements())
}

type scored struct {
	score int
	name  string
}

func TestGroupByKeyArrivalOrder(t *testing.T) {
	pairs := sequence.Of(
		scored{4, "Bart"}, scored{3, "Rob"}, scored{5, "Scott"},
		scored{4, "Bill"}, scored{4, "John"}, scored{5, "Steve"},
	)
	groups, err := sequence.ToSlice(GroupBySelect(pairs,
		func(p scored) int { return p.score }, func(p scored) string { return p.name }))
	require.NoError(t, err)
	require.Len(t, groups, 3)

	var keys []int
	for _, g := range groups {
		keys = append(keys, g.Key())
	}
	require.Equal(t, []int{4, 3, 5}, keys)
	require.Equal(t, []string{"Bart", "Bill", "John"}, groups[0].Elements())
	require.Equal(t, []string{"Rob"}, groups[1].Elements())
	require.Equal(t, []string{"Scott", "Steve"}, groups[2].Elements())
}

func TestGroupByIsDeferred(t *testing.T) {
	calls := 0
	s := GroupBy(sequence.FromSlice(people), func(p person) int {
		calls++
		return p.age
	})
	require.Zero(t, calls)

	c := s.Cursor()
	require.Zero(t, calls)
	require.True(t, c.Next())
	require.Equal(t, len(people), calls)
	require.NoError(t, c.Close())

	_, err := sequence.ToSlice(s)
	require.NoError(t, err)
	require.Equal(t, 2*len(people), calls)
}

func TestGroupByResult(t *testing.T) {
	counts := GroupByResult(sequence.FromSlice(people), func(p person) int { return p.age },
		func(age int, members sequence.Sequence[person]) string {
			n := members.(*Grouping[int, person]).Len()
			return strings.Repeat("*", n)
		})
	got, err := sequence.ToSlice(counts)
	require.NoError(t, err)
	require.Equal(t, []string{"***", "*", "*"}, got)
}

func TestGroupByWith(t *testing.T) {
	words := sequence.Of("Go", "rust", "GO", "Rust", "zig")
	groups, err := sequence.ToSlice(GroupByWith(words, func(s string) string { return s },
		strings.ToUpper, sequence.FoldCase))
	require.NoError(t, err)
	require.Len(t, groups, 3)
	require.Equal(t, "Go", groups[0].Key())
	require.Equal(t, []string{"GO", "GO"}, groups[0].Elements())
}

func TestGroupByFailure(t *testing.T) {
	boom := errors.New("boom")
	src := sequence.TrySelect(sequence.Of(1, 2), func(v int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	})
	_, err := sequence.ToSlice(GroupBy(src, func(v int) int { return v }))
	require.ErrorIs(t, err, boom)
}

func TestLookup(t *testing.T) {
	l, err := ToLookup(sequence.FromSlice(people), func(p person) int { return p.age })
	require.NoError(t, err)

	require.Equal(t, 3, l.Len())
	require.Equal(t, []int{4, 3, 5}, l.Keys())
	require.True(t, l.Contains(5))
	require.Equal(t, 3, l.Get(4).Len())
	require.Equal(t, "Rob", l.At(1).At(0).name)

	missing := l.Get(99)
	require.NotNil(t, missing)
	require.Equal(t, 99, missing.Key())
	require.Zero(t, missing.Len())
	require.False(t, l.Contains(99))

	groups, err := sequence.ToSlice[*Grouping[int, person]](l)
	require.NoError(t, err)
	require.Len(t, groups, 3)
}

func TestLookupNilKey(t *testing.T) {
	type node struct{ parent *string }
	root := "root"
	nodes := sequence.Of(node{nil}, node{&root}, node{nil})

	l, err := ToLookupSelect(nodes, func(n node) *string { return n.parent }, func(node) int { return 1 })
	require.NoError(t, err)
	require.Equal(t, 2, l.Get(nil).Len())
	require.Equal(t, 1, l.Get(&root).Len())
}

func TestLookupWith(t *testing.T) {
	l, err := ToLookupWith(sequence.Of("a", "A", "b"), func(s string) string { return s },
		func(s string) string { return s }, sequence.FoldCase)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "A"}, l.Get("A").Elements())
}

func TestGroupByNaNKeysShareGroup(t *testing.T) {
	groups, err := sequence.ToSlice(GroupBy(sequence.Of(math.NaN(), 2, math.NaN()),
		func(v float64) float64 { return v }))
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.True(t, math.IsNaN(groups[0].Key()))
	require.Equal(t, 2, groups[0].Len())
	require.Equal(t, 2.0, groups[1].Key())
}
