// Package join correlates the elements of two sequences by matching keys.
//
// The inner sequence is read completely into a lookup when a cursor is first
// advanced; the outer sequence is streamed. Results follow the order of the
// outer sequence, and matches for one outer element follow the order of the
// inner sequence. Nil keys never match: inner elements with a nil key are not
// indexed and an outer element with a nil key has no matches.
package join

import (
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/grouping"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

func isNilKey[K any](k K) bool { return validation.IsNil(any(k)) }

// keyed is an inner element with its key, extracted once.
type keyed[K, I any] struct {
	key  K
	elem I
}

func keyOf[K, I any](p keyed[K, I]) K  { return p.key }
func elemOf[K, I any](p keyed[K, I]) I { return p.elem }

// keyedInner pairs inner elements with their keys and drops those with a nil key.
func keyedInner[I, K any](inner sequence.Sequence[I], innerKey func(I) K) sequence.Sequence[keyed[K, I]] {
	pairs := sequence.Select(inner, func(v I) keyed[K, I] { return keyed[K, I]{key: innerKey(v), elem: v} })
	return sequence.Where(pairs, func(p keyed[K, I]) bool { return !isNilKey(p.key) })
}

func naturalLookup[I any, K comparable](inner sequence.Sequence[I], innerKey func(I) K) func() (*grouping.Lookup[K, I], error) {
	pairs := keyedInner(inner, innerKey)
	return func() (*grouping.Lookup[K, I], error) {
		return grouping.ToLookupSelect(pairs, keyOf[K, I], elemOf[K, I])
	}
}

func customLookup[I, K any](inner sequence.Sequence[I], innerKey func(I) K, eq sequence.Equality[K]) func() (*grouping.Lookup[K, I], error) {
	pairs := keyedInner(inner, innerKey)
	return func() (*grouping.Lookup[K, I], error) {
		return grouping.ToLookupWith(pairs, keyOf[K, I], elemOf[K, I], eq)
	}
}

// lookupCursor loads the inner lookup on the first advance.
type lookupCursor[O, I, K any] struct {
	outer    sequence.Cursor[O]
	outerKey func(O) K
	load     func() (*grouping.Lookup[K, I], error)
	lookup   *grouping.Lookup[K, I]
	err      error
}

func (c *lookupCursor[O, I, K]) ready() bool {
	if c.lookup == nil && c.err == nil {
		c.lookup, c.err = c.load()
	}
	return c.err == nil
}

// matches returns the inner group for o, nil when its key is nil.
func (c *lookupCursor[O, I, K]) matches(o O) *grouping.Grouping[K, I] {
	k := c.outerKey(o)
	if isNilKey(k) {
		return nil
	}
	return c.lookup.Get(k)
}

func (c *lookupCursor[O, I, K]) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.outer.Err()
}

func (c *lookupCursor[O, I, K]) Close() error { return c.outer.Close() }

type joinCursor[O, I, K, R any] struct {
	lookupCursor[O, I, K]
	result func(O, I) R
	group  *grouping.Grouping[K, I]
	pos    int
	item   O
	cur    R
}

func (c *joinCursor[O, I, K, R]) Next() bool {
	if !c.ready() {
		return false
	}
	for {
		if c.group != nil && c.pos < c.group.Len() {
			c.cur = c.result(c.item, c.group.At(c.pos))
			c.pos++
			return true
		}
		if !c.outer.Next() {
			return false
		}
		c.item = c.outer.Current()
		c.group = c.matches(c.item)
		c.pos = 0
	}
}

func (c *joinCursor[O, I, K, R]) Current() R { return c.cur }

func join[O, I, K, R any](outer sequence.Sequence[O], outerKey func(O) K,
	load func() (*grouping.Lookup[K, I], error), result func(O, I) R) sequence.Sequence[R] {
	return sequence.SequenceFunc[R](func() sequence.Cursor[R] {
		return &joinCursor[O, I, K, R]{
			lookupCursor: lookupCursor[O, I, K]{outer: outer.Cursor(), outerKey: outerKey, load: load},
			result:       result,
		}
	})
}

// Join pairs every outer element with each inner element whose key is equal
// and projects the pairs with result.
func Join[O, I any, K comparable, R any](outer sequence.Sequence[O], inner sequence.Sequence[I],
	outerKey func(O) K, innerKey func(I) K, result func(O, I) R) sequence.Sequence[R] {
	validation.NotNil("join.Join", "outer", outer, "inner", inner,
		"outerKey", outerKey, "innerKey", innerKey, "result", result)
	return join(outer, outerKey, naturalLookup(inner, innerKey), result)
}

// JoinWith is Join with keys matched by eq.
func JoinWith[O, I, K, R any](outer sequence.Sequence[O], inner sequence.Sequence[I],
	outerKey func(O) K, innerKey func(I) K, result func(O, I) R, eq sequence.Equality[K]) sequence.Sequence[R] {
	validation.NotNil("join.JoinWith", "outer", outer, "inner", inner,
		"outerKey", outerKey, "innerKey", innerKey, "result", result, "eq", eq)
	return join(outer, outerKey, customLookup(inner, innerKey, eq), result)
}

type groupJoinCursor[O, I, K, R any] struct {
	lookupCursor[O, I, K]
	result func(O, sequence.Sequence[I]) R
	cur    R
}

func (c *groupJoinCursor[O, I, K, R]) Next() bool {
	if !c.ready() || !c.outer.Next() {
		return false
	}
	o := c.outer.Current()
	var matches sequence.Sequence[I] = sequence.Empty[I]()
	if g := c.matches(o); g != nil {
		matches = g
	}
	c.cur = c.result(o, matches)
	return true
}

func (c *groupJoinCursor[O, I, K, R]) Current() R { return c.cur }

func groupJoin[O, I, K, R any](outer sequence.Sequence[O], outerKey func(O) K,
	load func() (*grouping.Lookup[K, I], error), result func(O, sequence.Sequence[I]) R) sequence.Sequence[R] {
	return sequence.SequenceFunc[R](func() sequence.Cursor[R] {
		return &groupJoinCursor[O, I, K, R]{
			lookupCursor: lookupCursor[O, I, K]{outer: outer.Cursor(), outerKey: outerKey, load: load},
			result:       result,
		}
	})
}

// GroupJoin projects every outer element together with the sequence of inner
// elements whose key is equal. Outer elements without matches are projected
// with an empty sequence.
func GroupJoin[O, I any, K comparable, R any](outer sequence.Sequence[O], inner sequence.Sequence[I],
	outerKey func(O) K, innerKey func(I) K, result func(O, sequence.Sequence[I]) R) sequence.Sequence[R] {
	validation.NotNil("join.GroupJoin", "outer", outer, "inner", inner,
		"outerKey", outerKey, "innerKey", innerKey, "result", result)
	return groupJoin(outer, outerKey, naturalLookup(inner, innerKey), result)
}

// GroupJoinWith is GroupJoin with keys matched by eq.
func GroupJoinWith[O, I, K, R any](outer sequence.Sequence[O], inner sequence.Sequence[I],
	outerKey func(O) K, innerKey func(I) K, result func(O, sequence.Sequence[I]) R, eq sequence.Equality[K]) sequence.Sequence[R] {
	validation.NotNil("join.GroupJoinWith", "outer", outer, "inner", inner,
		"outerKey", outerKey, "innerKey", innerKey, "result", result, "eq", eq)
	return groupJoin(outer, outerKey, customLookup(inner, innerKey, eq), result)
}
