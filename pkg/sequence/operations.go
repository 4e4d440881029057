package sequence

import (
	"fmt"
	"reflect"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

// Index-aware operators count positions from 0 on every traversal. The index
// belongs to the operator: an index-aware operator reading from another one
// sees positions in its own input, not in the original source.

// whereCursor implements Where and WhereIndexed.
type whereCursor[T any] struct {
	upstream[T]
	predicate func(T, int) bool
	index     int
	cur       T
}

// Where filters elements with predicate.
func Where[T any](source Sequence[T], predicate func(T) bool) Sequence[T] {
	validation.NotNil("sequence.Where", "source", source, "predicate", predicate)
	return SequenceFunc[T](func() Cursor[T] {
		return &whereCursor[T]{
			upstream:  upstream[T]{src: source.Cursor()},
			predicate: func(v T, _ int) bool { return predicate(v) },
		}
	})
}

// WhereIndexed filters elements with a predicate that also receives the
// element's position.
func WhereIndexed[T any](source Sequence[T], predicate func(T, int) bool) Sequence[T] {
	validation.NotNil("sequence.WhereIndexed", "source", source, "predicate", predicate)
	return SequenceFunc[T](func() Cursor[T] {
		return &whereCursor[T]{upstream: upstream[T]{src: source.Cursor()}, predicate: predicate}
	})
}

func (c *whereCursor[T]) Next() bool {
	for c.src.Next() {
		v := c.src.Current()
		i := c.index
		c.index++
		if c.predicate(v, i) {
			c.cur = v
			return true
		}
	}
	return false
}

func (c *whereCursor[T]) Current() T { return c.cur }

// selectCursor implements Select and SelectIndexed.
type selectCursor[T, U any] struct {
	upstream[T]
	selector func(T, int) U
	index    int
	cur      U
}

func (c *selectCursor[T, U]) Next() bool {
	if !c.src.Next() {
		return false
	}
	c.cur = c.selector(c.src.Current(), c.index)
	c.index++
	return true
}

func (c *selectCursor[T, U]) Current() U { return c.cur }

// indexedSelect keeps positional access of an Indexer source.
type indexedSelect[T, U any] struct {
	src      Indexer[T]
	selector func(T) U
}

func (s *indexedSelect[T, U]) Cursor() Cursor[U] {
	return &indexCursor[U]{at: s.At, n: s.src.Len()}
}

func (s *indexedSelect[T, U]) Len() int   { return s.src.Len() }
func (s *indexedSelect[T, U]) At(i int) U { return s.selector(s.src.At(i)) }

// Select projects each element with selector. When source has positional
// access, so does the result.
func Select[T, U any](source Sequence[T], selector func(T) U) Sequence[U] {
	validation.NotNil("sequence.Select", "source", source, "selector", selector)
	if ix, ok := source.(Indexer[T]); ok {
		return &indexedSelect[T, U]{src: ix, selector: selector}
	}
	return SequenceFunc[U](func() Cursor[U] {
		return &selectCursor[T, U]{
			upstream: upstream[T]{src: source.Cursor()},
			selector: func(v T, _ int) U { return selector(v) },
		}
	})
}

// SelectIndexed projects each element with a selector that also receives the
// element's position.
func SelectIndexed[T, U any](source Sequence[T], selector func(T, int) U) Sequence[U] {
	validation.NotNil("sequence.SelectIndexed", "source", source, "selector", selector)
	return SequenceFunc[U](func() Cursor[U] {
		return &selectCursor[T, U]{upstream: upstream[T]{src: source.Cursor()}, selector: selector}
	})
}

// trySelectCursor stops at the first failing projection.
type trySelectCursor[T, U any] struct {
	upstream[T]
	selector func(T) (U, error)
	cur      U
	err      error
}

// TrySelect projects each element with a selector that can fail. A failure
// stops the cursor and is reported by its Err.
func TrySelect[T, U any](source Sequence[T], selector func(T) (U, error)) Sequence[U] {
	validation.NotNil("sequence.TrySelect", "source", source, "selector", selector)
	return SequenceFunc[U](func() Cursor[U] {
		return &trySelectCursor[T, U]{upstream: upstream[T]{src: source.Cursor()}, selector: selector}
	})
}

func (c *trySelectCursor[T, U]) Next() bool {
	if c.err != nil || !c.src.Next() {
		return false
	}
	v, err := c.selector(c.src.Current())
	if err != nil {
		c.err = err
		return false
	}
	c.cur = v
	return true
}

func (c *trySelectCursor[T, U]) Current() U { return c.cur }

func (c *trySelectCursor[T, U]) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.src.Err()
}

// selectManyCursor flattens the sequences produced for each outer element.
type selectManyCursor[T, U any] struct {
	upstream[T]
	selector func(T, int) Sequence[U]
	inner    Cursor[U]
	index    int
	cur      U
	err      error
}

// SelectMany projects each element to a sequence and flattens the results.
// A nil sequence returned by selector stops the cursor with an
// invalid-argument error.
func SelectMany[T, U any](source Sequence[T], selector func(T) Sequence[U]) Sequence[U] {
	validation.NotNil("sequence.SelectMany", "source", source, "selector", selector)
	return SelectManyIndexed(source, func(v T, _ int) Sequence[U] { return selector(v) })
}

// SelectManyIndexed is SelectMany with the element's position passed to selector.
func SelectManyIndexed[T, U any](source Sequence[T], selector func(T, int) Sequence[U]) Sequence[U] {
	validation.NotNil("sequence.SelectManyIndexed", "source", source, "selector", selector)
	return SequenceFunc[U](func() Cursor[U] {
		return &selectManyCursor[T, U]{upstream: upstream[T]{src: source.Cursor()}, selector: selector}
	})
}

// SelectManyResult flattens the collections produced by collection and
// combines every outer element with each element of its collection.
func SelectManyResult[T, C, R any](source Sequence[T], collection func(T) Sequence[C], result func(T, C) R) Sequence[R] {
	validation.NotNil("sequence.SelectManyResult", "source", source,
		"collection", collection, "result", result)
	return SelectManyIndexed(source, func(v T, _ int) Sequence[R] {
		inner := collection(v)
		if inner == nil {
			return nil
		}
		return Select(inner, func(c C) R { return result(v, c) })
	})
}

func (c *selectManyCursor[T, U]) Next() bool {
	for c.err == nil {
		if c.inner != nil {
			if c.inner.Next() {
				c.cur = c.inner.Current()
				return true
			}
			if err := c.inner.Err(); err != nil {
				c.err = err
				return false
			}
			if err := c.inner.Close(); err != nil {
				c.err = err
				return false
			}
			c.inner = nil
		}
		if !c.src.Next() {
			return false
		}
		seq := c.selector(c.src.Current(), c.index)
		c.index++
		if seq == nil {
			c.err = sferrors.NewValidationError("sequence.SelectMany", "collection", nil,
				"selector returned a nil sequence")
			return false
		}
		c.inner = seq.Cursor()
	}
	return false
}

func (c *selectManyCursor[T, U]) Current() U { return c.cur }

func (c *selectManyCursor[T, U]) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.src.Err()
}

func (c *selectManyCursor[T, U]) Close() error {
	inner := c.inner
	c.inner = nil
	return closeAll(inner, c.src)
}

// concatCursor reads its sequences one after the other.
type concatCursor[T any] struct {
	seqs  []Sequence[T]
	next  int
	inner Cursor[T]
	cur   T
	err   error
}

// Concat yields the elements of every sequence in turn.
func Concat[T any](seqs ...Sequence[T]) Sequence[T] {
	for i, s := range seqs {
		validation.Must(validation.ValidateNotNil("sequence.Concat", fmt.Sprintf("seqs[%d]", i), s))
	}
	return SequenceFunc[T](func() Cursor[T] {
		return &concatCursor[T]{seqs: seqs}
	})
}

// Append yields the elements of source followed by value.
func Append[T any](source Sequence[T], value T) Sequence[T] {
	validation.NotNil("sequence.Append", "source", source)
	return Concat(source, Of(value))
}

// Prepend yields value followed by the elements of source.
func Prepend[T any](source Sequence[T], value T) Sequence[T] {
	validation.NotNil("sequence.Prepend", "source", source)
	return Concat(Of(value), source)
}

func (c *concatCursor[T]) Next() bool {
	for c.err == nil {
		if c.inner == nil {
			if c.next >= len(c.seqs) {
				return false
			}
			c.inner = c.seqs[c.next].Cursor()
			c.next++
		}
		if c.inner.Next() {
			c.cur = c.inner.Current()
			return true
		}
		if err := c.inner.Err(); err != nil {
			c.err = err
			return false
		}
		if err := c.inner.Close(); err != nil {
			c.err = err
			return false
		}
		c.inner = nil
	}
	return false
}

func (c *concatCursor[T]) Current() T { return c.cur }
func (c *concatCursor[T]) Err() error { return c.err }

func (c *concatCursor[T]) Close() error {
	c.next = len(c.seqs)
	inner := c.inner
	c.inner = nil
	return closeAll(inner)
}

// takeCursor never pulls past the last element it yields.
type takeCursor[T any] struct {
	upstream[T]
	remaining int
}

// Take yields the first n elements of source. A non-positive n yields nothing.
func Take[T any](source Sequence[T], n int) Sequence[T] {
	validation.NotNil("sequence.Take", "source", source)
	return SequenceFunc[T](func() Cursor[T] {
		return &takeCursor[T]{upstream: upstream[T]{src: source.Cursor()}, remaining: n}
	})
}

func (c *takeCursor[T]) Next() bool {
	if c.remaining <= 0 {
		return false
	}
	c.remaining--
	if !c.src.Next() {
		c.remaining = 0
		return false
	}
	return true
}

func (c *takeCursor[T]) Current() T { return c.src.Current() }

type skipCursor[T any] struct {
	upstream[T]
	skip int
}

// Skip bypasses the first n elements of source. A non-positive n skips nothing.
func Skip[T any](source Sequence[T], n int) Sequence[T] {
	validation.NotNil("sequence.Skip", "source", source)
	return SequenceFunc[T](func() Cursor[T] {
		return &skipCursor[T]{upstream: upstream[T]{src: source.Cursor()}, skip: n}
	})
}

func (c *skipCursor[T]) Next() bool {
	for ; c.skip > 0; c.skip-- {
		if !c.src.Next() {
			c.skip = 0
			return false
		}
	}
	return c.src.Next()
}

func (c *skipCursor[T]) Current() T { return c.src.Current() }

type takeWhileCursor[T any] struct {
	upstream[T]
	predicate func(T, int) bool
	index     int
	done      bool
}

// TakeWhile yields elements while predicate holds and stops at the first
// element that fails it.
func TakeWhile[T any](source Sequence[T], predicate func(T) bool) Sequence[T] {
	validation.NotNil("sequence.TakeWhile", "source", source, "predicate", predicate)
	return SequenceFunc[T](func() Cursor[T] {
		return &takeWhileCursor[T]{
			upstream:  upstream[T]{src: source.Cursor()},
			predicate: func(v T, _ int) bool { return predicate(v) },
		}
	})
}

// TakeWhileIndexed is TakeWhile with the element's position passed to predicate.
func TakeWhileIndexed[T any](source Sequence[T], predicate func(T, int) bool) Sequence[T] {
	validation.NotNil("sequence.TakeWhileIndexed", "source", source, "predicate", predicate)
	return SequenceFunc[T](func() Cursor[T] {
		return &takeWhileCursor[T]{upstream: upstream[T]{src: source.Cursor()}, predicate: predicate}
	})
}

func (c *takeWhileCursor[T]) Next() bool {
	if c.done || !c.src.Next() {
		return false
	}
	i := c.index
	c.index++
	if !c.predicate(c.src.Current(), i) {
		c.done = true
		return false
	}
	return true
}

func (c *takeWhileCursor[T]) Current() T { return c.src.Current() }

type skipWhileCursor[T any] struct {
	upstream[T]
	predicate func(T, int) bool
	index     int
	yielding  bool
}

// SkipWhile bypasses elements while predicate holds and yields the rest,
// starting with the first element that fails it.
func SkipWhile[T any](source Sequence[T], predicate func(T) bool) Sequence[T] {
	validation.NotNil("sequence.SkipWhile", "source", source, "predicate", predicate)
	return SequenceFunc[T](func() Cursor[T] {
		return &skipWhileCursor[T]{
			upstream:  upstream[T]{src: source.Cursor()},
			predicate: func(v T, _ int) bool { return predicate(v) },
		}
	})
}

// SkipWhileIndexed is SkipWhile with the element's position passed to predicate.
func SkipWhileIndexed[T any](source Sequence[T], predicate func(T, int) bool) Sequence[T] {
	validation.NotNil("sequence.SkipWhileIndexed", "source", source, "predicate", predicate)
	return SequenceFunc[T](func() Cursor[T] {
		return &skipWhileCursor[T]{upstream: upstream[T]{src: source.Cursor()}, predicate: predicate}
	})
}

func (c *skipWhileCursor[T]) Next() bool {
	if c.yielding {
		return c.src.Next()
	}
	for c.src.Next() {
		i := c.index
		c.index++
		if !c.predicate(c.src.Current(), i) {
			c.yielding = true
			return true
		}
	}
	return false
}

func (c *skipWhileCursor[T]) Current() T { return c.src.Current() }

type defaultIfEmptyCursor[T any] struct {
	upstream[T]
	value    T
	seen     bool
	fallback bool
}

// DefaultIfEmpty yields the elements of source, or a single zero value when
// source is empty.
func DefaultIfEmpty[T any](source Sequence[T]) Sequence[T] {
	validation.NotNil("sequence.DefaultIfEmpty", "source", source)
	var zero T
	return DefaultIfEmptyValue(source, zero)
}

// DefaultIfEmptyValue yields the elements of source, or value when source is
// empty.
func DefaultIfEmptyValue[T any](source Sequence[T], value T) Sequence[T] {
	validation.NotNil("sequence.DefaultIfEmptyValue", "source", source)
	return SequenceFunc[T](func() Cursor[T] {
		return &defaultIfEmptyCursor[T]{upstream: upstream[T]{src: source.Cursor()}, value: value}
	})
}

func (c *defaultIfEmptyCursor[T]) Next() bool {
	if c.fallback {
		return false
	}
	if c.src.Next() {
		c.seen = true
		return true
	}
	if c.seen || c.src.Err() != nil {
		return false
	}
	c.seen = true
	c.fallback = true
	return true
}

func (c *defaultIfEmptyCursor[T]) Current() T {
	if c.fallback {
		return c.value
	}
	return c.src.Current()
}

// indexedReverse reverses an Indexer without copying it.
type indexedReverse[T any] struct {
	src Indexer[T]
}

func (r *indexedReverse[T]) Cursor() Cursor[T] {
	return &indexCursor[T]{at: r.At, n: r.src.Len()}
}

func (r *indexedReverse[T]) Len() int   { return r.src.Len() }
func (r *indexedReverse[T]) At(i int) T { return r.src.At(r.src.Len() - 1 - i) }

// reverseCursor buffers its input on the first advance.
type reverseCursor[T any] struct {
	upstream[T]
	buf    []T
	pos    int
	loaded bool
}

// Reverse yields the elements of source in reverse order. Sources without
// positional access are read completely on the first advance.
func Reverse[T any](source Sequence[T]) Sequence[T] {
	validation.NotNil("sequence.Reverse", "source", source)
	if ix, ok := source.(Indexer[T]); ok {
		return &indexedReverse[T]{src: ix}
	}
	return SequenceFunc[T](func() Cursor[T] {
		return &reverseCursor[T]{upstream: upstream[T]{src: source.Cursor()}}
	})
}

func (c *reverseCursor[T]) Next() bool {
	if !c.loaded {
		c.loaded = true
		for c.src.Next() {
			c.buf = append(c.buf, c.src.Current())
		}
		if c.src.Err() != nil {
			c.buf = nil
		}
		c.pos = len(c.buf)
	}
	if c.pos == 0 {
		return false
	}
	c.pos--
	return true
}

func (c *reverseCursor[T]) Current() T { return c.buf[c.pos] }

type zipCursor[A, B, R any] struct {
	first  Cursor[A]
	second Cursor[B]
	fn     func(A, B) R
	cur    R
}

// Zip combines the elements of first and second pairwise with fn. It stops at
// the end of the shorter sequence.
func Zip[A, B, R any](first Sequence[A], second Sequence[B], fn func(A, B) R) Sequence[R] {
	validation.NotNil("sequence.Zip", "first", first, "second", second, "fn", fn)
	return SequenceFunc[R](func() Cursor[R] {
		return &zipCursor[A, B, R]{first: first.Cursor(), second: second.Cursor(), fn: fn}
	})
}

func (c *zipCursor[A, B, R]) Next() bool {
	if !c.first.Next() || !c.second.Next() {
		return false
	}
	c.cur = c.fn(c.first.Current(), c.second.Current())
	return true
}

func (c *zipCursor[A, B, R]) Current() R { return c.cur }

func (c *zipCursor[A, B, R]) Err() error {
	if err := c.first.Err(); err != nil {
		return err
	}
	return c.second.Err()
}

func (c *zipCursor[A, B, R]) Close() error { return closeAll(c.first, c.second) }

type peekCursor[T any] struct {
	upstream[T]
	action func(T)
}

// Peek calls action for each element as it is pulled through the sequence.
func Peek[T any](source Sequence[T], action func(T)) Sequence[T] {
	validation.NotNil("sequence.Peek", "source", source, "action", action)
	return SequenceFunc[T](func() Cursor[T] {
		return &peekCursor[T]{upstream: upstream[T]{src: source.Cursor()}, action: action}
	})
}

func (c *peekCursor[T]) Next() bool {
	if !c.src.Next() {
		return false
	}
	c.action(c.src.Current())
	return true
}

func (c *peekCursor[T]) Current() T { return c.src.Current() }

type castCursor[T any] struct {
	upstream[any]
	skip bool
	cur  T
	err  error
}

// Cast converts each element of source to T. An element of another dynamic
// type stops the cursor with a *errors.CastError. A nil element converts to
// the zero value when T can hold nil.
func Cast[T any](source Sequence[any]) Sequence[T] {
	validation.NotNil("sequence.Cast", "source", source)
	return SequenceFunc[T](func() Cursor[T] {
		return &castCursor[T]{upstream: upstream[any]{src: source.Cursor()}}
	})
}

// OfType yields the elements of source whose dynamic type is T and skips
// the rest, including nil elements.
func OfType[T any](source Sequence[any]) Sequence[T] {
	validation.NotNil("sequence.OfType", "source", source)
	return SequenceFunc[T](func() Cursor[T] {
		return &castCursor[T]{upstream: upstream[any]{src: source.Cursor()}, skip: true}
	})
}

func (c *castCursor[T]) Next() bool {
	for c.err == nil && c.src.Next() {
		v := c.src.Current()
		if v == nil {
			if c.skip {
				continue
			}
			if !nilable[T]() {
				c.err = &sferrors.CastError{Value: v, Target: reflect.TypeFor[T]().String()}
				return false
			}
			var zero T
			c.cur = zero
			return true
		}
		t, ok := v.(T)
		if !ok {
			if c.skip {
				continue
			}
			c.err = &sferrors.CastError{Value: v, Target: reflect.TypeFor[T]().String()}
			return false
		}
		c.cur = t
		return true
	}
	return false
}

func (c *castCursor[T]) Current() T { return c.cur }

func (c *castCursor[T]) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.src.Err()
}

func nilable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	}
	return false
}
