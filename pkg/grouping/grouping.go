package grouping

import (
	"slices"

	"github.com/vnykmshr/seqflow/internal/hashindex"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// Grouping is a key together with the elements that share it, in arrival
// order. A Grouping is itself a sequence of its elements.
type Grouping[K, E any] struct {
	key      K
	elements []E
}

// Key returns the key shared by the elements of the group.
func (g *Grouping[K, E]) Key() K { return g.key }

// Len returns the number of elements in the group.
func (g *Grouping[K, E]) Len() int { return len(g.elements) }

// At returns the i-th element of the group.
func (g *Grouping[K, E]) At(i int) E { return g.elements[i] }

// Elements returns a copy of the elements of the group.
func (g *Grouping[K, E]) Elements() []E { return slices.Clone(g.elements) }

// Cursor implements sequence.Sequence.
func (g *Grouping[K, E]) Cursor() sequence.Cursor[E] {
	return sequence.FromSlice(g.elements).Cursor()
}

// Lookup maps keys to groups of elements. Keys keep the order in which they
// were first seen. A built Lookup is immutable and safe for concurrent reads.
type Lookup[K, E any] struct {
	index  hashindex.Index[K, int]
	groups []*Grouping[K, E]
}

// Len returns the number of distinct keys.
func (l *Lookup[K, E]) Len() int { return len(l.groups) }

// Get returns the group for key. An unknown key yields an empty group, never nil.
func (l *Lookup[K, E]) Get(key K) *Grouping[K, E] {
	if i, ok := l.index.Get(key); ok {
		return l.groups[i]
	}
	return &Grouping[K, E]{key: key}
}

// Contains reports whether key has a group.
func (l *Lookup[K, E]) Contains(key K) bool {
	_, ok := l.index.Get(key)
	return ok
}

// At returns the i-th group in key order.
func (l *Lookup[K, E]) At(i int) *Grouping[K, E] { return l.groups[i] }

// Keys returns the keys in the order they were first seen.
func (l *Lookup[K, E]) Keys() []K {
	keys := make([]K, len(l.groups))
	for i, g := range l.groups {
		keys[i] = g.key
	}
	return keys
}

// Cursor implements sequence.Sequence over the groups.
func (l *Lookup[K, E]) Cursor() sequence.Cursor[*Grouping[K, E]] {
	return sequence.FromSlice(l.groups).Cursor()
}

func (l *Lookup[K, E]) add(key K, elem E) {
	i, ok := l.index.Get(key)
	if !ok {
		i = len(l.groups)
		l.index.Put(key, i)
		l.groups = append(l.groups, &Grouping[K, E]{key: key})
	}
	g := l.groups[i]
	g.elements = append(g.elements, elem)
}

func build[T, K, E any](source sequence.Sequence[T], key func(T) K, elem func(T) E,
	index hashindex.Index[K, int]) (*Lookup[K, E], error) {
	l := &Lookup[K, E]{index: index}
	err := sequence.ForEach(source, func(v T) {
		l.add(key(v), elem(v))
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func identity[T any](v T) T { return v }

func naturalIndex[K comparable]() hashindex.Index[K, int] {
	return hashindex.Natural[K, int](0)
}

// ToLookup groups the elements of source by key in one full pass.
func ToLookup[T any, K comparable](source sequence.Sequence[T], key func(T) K) (*Lookup[K, T], error) {
	validation.NotNil("grouping.ToLookup", "source", source, "key", key)
	return build(source, key, identity[T], naturalIndex[K]())
}

// ToLookupSelect groups the projections elem of the elements of source by key.
func ToLookupSelect[T any, K comparable, E any](source sequence.Sequence[T], key func(T) K, elem func(T) E) (*Lookup[K, E], error) {
	validation.NotNil("grouping.ToLookupSelect", "source", source, "key", key, "elem", elem)
	return build(source, key, elem, naturalIndex[K]())
}

// ToLookupWith is ToLookupSelect with keys matched by eq.
func ToLookupWith[T, K, E any](source sequence.Sequence[T], key func(T) K, elem func(T) E, eq sequence.Equality[K]) (*Lookup[K, E], error) {
	validation.NotNil("grouping.ToLookupWith", "source", source, "key", key, "elem", elem, "eq", eq)
	return build(source, key, elem, hashindex.Custom[K, int](eq, 0))
}

// groupCursor builds its lookup when first advanced.
type groupCursor[K, E any] struct {
	build  func() (*Lookup[K, E], error)
	groups []*Grouping[K, E]
	pos    int
	built  bool
	err    error
}

func (c *groupCursor[K, E]) Next() bool {
	if !c.built {
		c.built = true
		l, err := c.build()
		if err != nil {
			c.err = err
			return false
		}
		c.groups = l.groups
	}
	if c.pos >= len(c.groups) {
		return false
	}
	c.pos++
	return true
}

func (c *groupCursor[K, E]) Current() *Grouping[K, E] { return c.groups[c.pos-1] }
func (c *groupCursor[K, E]) Err() error               { return c.err }

func (c *groupCursor[K, E]) Close() error {
	c.built = true
	c.groups = nil
	return nil
}

func deferred[K, E any](build func() (*Lookup[K, E], error)) sequence.Sequence[*Grouping[K, E]] {
	return sequence.SequenceFunc[*Grouping[K, E]](func() sequence.Cursor[*Grouping[K, E]] {
		return &groupCursor[K, E]{build: build}
	})
}

// GroupBy groups the elements of source by key. The source is read when the
// first cursor is advanced, and again by every later cursor. Keys match by ==,
// except that all float NaN keys share one group; an interface key holding an
// unhashable value such as a slice panics. Use GroupByWith for other keys.
func GroupBy[T any, K comparable](source sequence.Sequence[T], key func(T) K) sequence.Sequence[*Grouping[K, T]] {
	validation.NotNil("grouping.GroupBy", "source", source, "key", key)
	return deferred(func() (*Lookup[K, T], error) {
		return build(source, key, identity[T], naturalIndex[K]())
	})
}

// GroupBySelect is GroupBy over the projections elem of the elements.
func GroupBySelect[T any, K comparable, E any](source sequence.Sequence[T], key func(T) K, elem func(T) E) sequence.Sequence[*Grouping[K, E]] {
	validation.NotNil("grouping.GroupBySelect", "source", source, "key", key, "elem", elem)
	return deferred(func() (*Lookup[K, E], error) {
		return build(source, key, elem, naturalIndex[K]())
	})
}

// GroupByWith is GroupBySelect with keys matched by eq.
func GroupByWith[T, K, E any](source sequence.Sequence[T], key func(T) K, elem func(T) E, eq sequence.Equality[K]) sequence.Sequence[*Grouping[K, E]] {
	validation.NotNil("grouping.GroupByWith", "source", source, "key", key, "elem", elem, "eq", eq)
	return deferred(func() (*Lookup[K, E], error) {
		return build(source, key, elem, hashindex.Custom[K, int](eq, 0))
	})
}

// GroupByResult groups the elements of source by key and projects every
// group with result.
func GroupByResult[T any, K comparable, R any](source sequence.Sequence[T], key func(T) K, result func(K, sequence.Sequence[T]) R) sequence.Sequence[R] {
	validation.NotNil("grouping.GroupByResult", "source", source, "key", key, "result", result)
	return sequence.Select(GroupBy(source, key), func(g *Grouping[K, T]) R {
		return result(g.key, g)
	})
}
