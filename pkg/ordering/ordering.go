// Package ordering sorts sequences by one or more keys.
//
// OrderBy and its variants start an ordering; ThenBy and its variants refine
// it with further keys that only break ties left by the earlier ones. Sorting
// is stable and deferred: the source is read and sorted when a cursor is
// first advanced, and every key extractor runs exactly once per element per
// traversal.
package ordering

import (
	"cmp"
	"slices"

	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// criterion extracts the keys of items once and returns a comparison of
// two positions in items.
type criterion[T any] func(items []T) func(a, b int) int

func keyed[T, K any](key func(T) K, compare func(a, b K) int, descending bool) criterion[T] {
	return func(items []T) func(a, b int) int {
		keys := make([]K, len(items))
		for i, v := range items {
			keys[i] = key(v)
		}
		if descending {
			return func(a, b int) int { return compare(keys[b], keys[a]) }
		}
		return func(a, b int) int { return compare(keys[a], keys[b]) }
	}
}

// Ordered is a sequence sorted by a chain of keys.
type Ordered[T any] struct {
	source   sequence.Sequence[T]
	criteria []criterion[T]
}

// Cursor implements sequence.Sequence.
func (o *Ordered[T]) Cursor() sequence.Cursor[T] {
	return &orderedCursor[T]{ordered: o}
}

func (o *Ordered[T]) then(c criterion[T]) *Ordered[T] {
	return &Ordered[T]{source: o.source, criteria: slices.Concat(o.criteria, []criterion[T]{c})}
}

// sort reads the source and returns its elements in order.
func (o *Ordered[T]) sort() ([]T, error) {
	items, err := sequence.ToSlice(o.source)
	if err != nil {
		return nil, err
	}

	compares := make([]func(a, b int) int, len(o.criteria))
	for i, c := range o.criteria {
		compares[i] = c(items)
	}

	perm := make([]int, len(items))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		for _, compare := range compares {
			if r := compare(a, b); r != 0 {
				return r
			}
		}
		return 0
	})

	sorted := make([]T, len(items))
	for i, p := range perm {
		sorted[i] = items[p]
	}
	return sorted, nil
}

type orderedCursor[T any] struct {
	ordered *Ordered[T]
	items   []T
	pos     int
	sorted  bool
	err     error
}

func (c *orderedCursor[T]) Next() bool {
	if !c.sorted {
		c.sorted = true
		c.items, c.err = c.ordered.sort()
	}
	if c.pos >= len(c.items) {
		return false
	}
	c.pos++
	return true
}

func (c *orderedCursor[T]) Current() T { return c.items[c.pos-1] }
func (c *orderedCursor[T]) Err() error { return c.err }

func (c *orderedCursor[T]) Close() error {
	c.sorted = true
	c.items = nil
	return nil
}

func orderBy[T, K any](module string, source sequence.Sequence[T], key func(T) K, compare func(a, b K) int, descending bool) *Ordered[T] {
	validation.NotNil(module, "source", source, "key", key, "compare", compare)
	return &Ordered[T]{source: source, criteria: []criterion[T]{keyed(key, compare, descending)}}
}

func thenBy[T, K any](module string, o *Ordered[T], key func(T) K, compare func(a, b K) int, descending bool) *Ordered[T] {
	validation.NotNil(module, "ordered", o, "key", key, "compare", compare)
	return o.then(keyed(key, compare, descending))
}

// OrderBy sorts source in ascending order of key.
func OrderBy[T any, K cmp.Ordered](source sequence.Sequence[T], key func(T) K) *Ordered[T] {
	return orderBy("ordering.OrderBy", source, key, cmp.Compare[K], false)
}

// OrderByDescending sorts source in descending order of key.
func OrderByDescending[T any, K cmp.Ordered](source sequence.Sequence[T], key func(T) K) *Ordered[T] {
	return orderBy("ordering.OrderByDescending", source, key, cmp.Compare[K], true)
}

// OrderByFunc sorts source in ascending order of key as ordered by compare.
func OrderByFunc[T, K any](source sequence.Sequence[T], key func(T) K, compare func(a, b K) int) *Ordered[T] {
	return orderBy("ordering.OrderByFunc", source, key, compare, false)
}

// OrderByDescendingFunc sorts source in descending order of key as ordered
// by compare.
func OrderByDescendingFunc[T, K any](source sequence.Sequence[T], key func(T) K, compare func(a, b K) int) *Ordered[T] {
	return orderBy("ordering.OrderByDescendingFunc", source, key, compare, true)
}

// ThenBy returns a new ordering that sorts elements left equal by o in
// ascending order of key. The receiver is unchanged.
func ThenBy[T any, K cmp.Ordered](o *Ordered[T], key func(T) K) *Ordered[T] {
	return thenBy("ordering.ThenBy", o, key, cmp.Compare[K], false)
}

// ThenByDescending is ThenBy in descending order of key.
func ThenByDescending[T any, K cmp.Ordered](o *Ordered[T], key func(T) K) *Ordered[T] {
	return thenBy("ordering.ThenByDescending", o, key, cmp.Compare[K], true)
}

// ThenByFunc is ThenBy with keys ordered by compare.
func ThenByFunc[T, K any](o *Ordered[T], key func(T) K, compare func(a, b K) int) *Ordered[T] {
	return thenBy("ordering.ThenByFunc", o, key, compare, false)
}

// ThenByDescendingFunc is ThenByDescending with keys ordered by compare.
func ThenByDescendingFunc[T, K any](o *Ordered[T], key func(T) K, compare func(a, b K) int) *Ordered[T] {
	return thenBy("ordering.ThenByDescendingFunc", o, key, compare, true)
}
