package sequence

import (
	"github.com/vnykmshr/seqflow/internal/hashindex"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

type newSetFunc[T any] func() hashindex.Index[T, struct{}]

func naturalSet[T comparable]() hashindex.Index[T, struct{}] {
	return hashindex.Natural[T, struct{}](0)
}

func customSet[T any](eq Equality[T]) newSetFunc[T] {
	return func() hashindex.Index[T, struct{}] { return hashindex.Custom[T, struct{}](eq, 0) }
}

// distinctCursor yields the first occurrence of every element.
type distinctCursor[T any] struct {
	upstream[T]
	seen hashindex.Index[T, struct{}]
}

func (c *distinctCursor[T]) Next() bool {
	for c.src.Next() {
		if hashindex.Add(c.seen, c.src.Current()) {
			return true
		}
	}
	return false
}

func (c *distinctCursor[T]) Current() T { return c.src.Current() }

func distinct[T any](source Sequence[T], newSet newSetFunc[T]) Sequence[T] {
	return SequenceFunc[T](func() Cursor[T] {
		return &distinctCursor[T]{upstream: upstream[T]{src: source.Cursor()}, seen: newSet()}
	})
}

// Distinct yields the elements of source without duplicates, in order of
// first occurrence. Elements match by ==, except that all float NaN values
// match each other; an interface element holding an unhashable value such as
// a slice panics.
func Distinct[T comparable](source Sequence[T]) Sequence[T] {
	validation.NotNil("sequence.Distinct", "source", source)
	return distinct(source, naturalSet[T])
}

// DistinctWith is Distinct with elements matched by eq.
func DistinctWith[T any](source Sequence[T], eq Equality[T]) Sequence[T] {
	validation.NotNil("sequence.DistinctWith", "source", source, "eq", eq)
	return distinct(source, customSet(eq))
}

// Union yields the distinct elements of first followed by the distinct
// elements of second not already yielded.
func Union[T comparable](first, second Sequence[T]) Sequence[T] {
	validation.NotNil("sequence.Union", "first", first, "second", second)
	return distinct(Concat(first, second), naturalSet[T])
}

// UnionWith is Union with elements matched by eq.
func UnionWith[T any](first, second Sequence[T], eq Equality[T]) Sequence[T] {
	validation.NotNil("sequence.UnionWith", "first", first, "second", second, "eq", eq)
	return distinct(Concat(first, second), customSet(eq))
}

// filterSetCursor reads second into a set on the first advance, then streams
// first through keep.
type filterSetCursor[T any] struct {
	upstream[T]
	second Sequence[T]
	newSet newSetFunc[T]
	keep   func(set hashindex.Index[T, struct{}], v T) bool
	set    hashindex.Index[T, struct{}]
	err    error
}

func (c *filterSetCursor[T]) load() error {
	c.set = c.newSet()
	return Walk(c.second, func(v T) bool {
		c.set.Put(v, struct{}{})
		return true
	})
}

func (c *filterSetCursor[T]) Next() bool {
	if c.set == nil {
		if c.err = c.load(); c.err != nil {
			return false
		}
	}
	if c.err != nil {
		return false
	}
	for c.src.Next() {
		if c.keep(c.set, c.src.Current()) {
			return true
		}
	}
	return false
}

func (c *filterSetCursor[T]) Current() T { return c.src.Current() }

func (c *filterSetCursor[T]) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.src.Err()
}

func filterSet[T any](first, second Sequence[T], newSet newSetFunc[T],
	keep func(hashindex.Index[T, struct{}], T) bool) Sequence[T] {
	return SequenceFunc[T](func() Cursor[T] {
		return &filterSetCursor[T]{
			upstream: upstream[T]{src: first.Cursor()},
			second:   second,
			newSet:   newSet,
			keep:     keep,
		}
	})
}

// An element of first is in the intersection once: removing it from the set
// drops later duplicates.
func keepShared[T any](set hashindex.Index[T, struct{}], v T) bool {
	return set.Delete(v)
}

// An element of first not in second is yielded once: adding it to the set
// drops later duplicates.
func keepMissing[T any](set hashindex.Index[T, struct{}], v T) bool {
	return hashindex.Add(set, v)
}

// Intersect yields the distinct elements of first that also occur in second,
// in the order of first. Second is read completely on the first advance.
func Intersect[T comparable](first, second Sequence[T]) Sequence[T] {
	validation.NotNil("sequence.Intersect", "first", first, "second", second)
	return filterSet(first, second, naturalSet[T], keepShared[T])
}

// IntersectWith is Intersect with elements matched by eq.
func IntersectWith[T any](first, second Sequence[T], eq Equality[T]) Sequence[T] {
	validation.NotNil("sequence.IntersectWith", "first", first, "second", second, "eq", eq)
	return filterSet(first, second, customSet(eq), keepShared[T])
}

// Except yields the distinct elements of first that do not occur in second,
// in the order of first. Second is read completely on the first advance.
func Except[T comparable](first, second Sequence[T]) Sequence[T] {
	validation.NotNil("sequence.Except", "first", first, "second", second)
	return filterSet(first, second, naturalSet[T], keepMissing[T])
}

// ExceptWith is Except with elements matched by eq.
func ExceptWith[T any](first, second Sequence[T], eq Equality[T]) Sequence[T] {
	validation.NotNil("sequence.ExceptWith", "first", first, "second", second, "eq", eq)
	return filterSet(first, second, customSet(eq), keepMissing[T])
}
