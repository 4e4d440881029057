package sequence

import (
	"iter"
	"math"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

// sliceSequence implements Sequence and Indexer for slices.
type sliceSequence[T any] struct {
	items []T
}

// FromSlice creates a Sequence over items. The slice is not copied: changes
// made to it are visible to cursors opened afterwards.
func FromSlice[T any](items []T) Sequence[T] {
	return &sliceSequence[T]{items: items}
}

// Of creates a Sequence over the given values.
func Of[T any](items ...T) Sequence[T] {
	return &sliceSequence[T]{items: items}
}

func (s *sliceSequence[T]) Cursor() Cursor[T] {
	return &indexCursor[T]{at: s.At, n: len(s.items)}
}

func (s *sliceSequence[T]) Len() int   { return len(s.items) }
func (s *sliceSequence[T]) At(i int) T { return s.items[i] }

// indexCursor walks positions 0..n-1 of an indexed source.
type indexCursor[T any] struct {
	at  func(int) T
	n   int
	pos int
	cur T
}

func (c *indexCursor[T]) Next() bool {
	if c.pos >= c.n {
		return false
	}
	c.cur = c.at(c.pos)
	c.pos++
	return true
}

func (c *indexCursor[T]) Current() T   { return c.cur }
func (c *indexCursor[T]) Err() error   { return nil }
func (c *indexCursor[T]) Close() error { c.pos = c.n; return nil }

// Empty creates an empty Sequence.
func Empty[T any]() Sequence[T] {
	return &sliceSequence[T]{}
}

// rangeSequence implements Indexer for a run of consecutive integers.
type rangeSequence struct {
	start, count int
}

// Range creates a Sequence of count consecutive integers starting at start.
// It panics if count is negative or if the last value would overflow int.
func Range(start, count int) Sequence[int] {
	validation.Must(validation.ValidateNonNegative("sequence.Range", "count", count))
	if count > 0 && start > math.MaxInt-(count-1) {
		validation.Must(sferrors.NewValidationError("sequence.Range", "count", count,
			"start+count-1 overflows int"))
	}
	return &rangeSequence{start: start, count: count}
}

func (r *rangeSequence) Cursor() Cursor[int] {
	return &indexCursor[int]{at: r.At, n: r.count}
}

func (r *rangeSequence) Len() int     { return r.count }
func (r *rangeSequence) At(i int) int { return r.start + i }

// repeatSequence implements Indexer for a repeated value.
type repeatSequence[T any] struct {
	value T
	count int
}

// Repeat creates a Sequence containing value count times.
// It panics if count is negative.
func Repeat[T any](value T, count int) Sequence[T] {
	validation.Must(validation.ValidateNonNegative("sequence.Repeat", "count", count))
	return &repeatSequence[T]{value: value, count: count}
}

func (r *repeatSequence[T]) Cursor() Cursor[T] {
	return &indexCursor[T]{at: r.At, n: r.count}
}

func (r *repeatSequence[T]) Len() int { return r.count }
func (r *repeatSequence[T]) At(int) T { return r.value }

// generatorCursor implements Cursor for generator functions.
type generatorCursor[T any] struct {
	generator func() T
	cur       T
	closed    bool
}

// Generate creates an infinite Sequence whose elements are produced by
// calling generator once per element, on demand.
func Generate[T any](generator func() T) Sequence[T] {
	validation.NotNil("sequence.Generate", "generator", generator)
	return SequenceFunc[T](func() Cursor[T] {
		return &generatorCursor[T]{generator: generator}
	})
}

func (c *generatorCursor[T]) Next() bool {
	if c.closed {
		return false
	}
	c.cur = c.generator()
	return true
}

func (c *generatorCursor[T]) Current() T   { return c.cur }
func (c *generatorCursor[T]) Err() error   { return nil }
func (c *generatorCursor[T]) Close() error { c.closed = true; return nil }

// pullCursor adapts a pull iterator to Cursor.
type pullCursor[T any] struct {
	next func() (T, bool)
	stop func()
	cur  T
}

// FromIter creates a Sequence from a range-over-func iterator. Each cursor
// pulls from a fresh call of seq and stops it when closed.
func FromIter[T any](seq iter.Seq[T]) Sequence[T] {
	validation.NotNil("sequence.FromIter", "seq", seq)
	return SequenceFunc[T](func() Cursor[T] {
		next, stop := iter.Pull(seq)
		return &pullCursor[T]{next: next, stop: stop}
	})
}

func (c *pullCursor[T]) Next() bool {
	v, ok := c.next()
	if ok {
		c.cur = v
	}
	return ok
}

func (c *pullCursor[T]) Current() T   { return c.cur }
func (c *pullCursor[T]) Err() error   { return nil }
func (c *pullCursor[T]) Close() error { c.stop(); return nil }

// channelCursor implements Cursor for channels.
type channelCursor[T any] struct {
	ch  <-chan T
	cur T
}

// FromChannel creates a Sequence that receives from ch until it is closed.
//
// A channel can only be read once: every cursor receives from the same
// channel, so two cursors see disjoint parts of the data. Callers that need
// repeatable traversals should materialize the sequence first.
func FromChannel[T any](ch <-chan T) Sequence[T] {
	validation.NotNil("sequence.FromChannel", "ch", ch)
	return SequenceFunc[T](func() Cursor[T] {
		return &channelCursor[T]{ch: ch}
	})
}

func (c *channelCursor[T]) Next() bool {
	v, ok := <-c.ch
	if ok {
		c.cur = v
	}
	return ok
}

func (c *channelCursor[T]) Current() T   { return c.cur }
func (c *channelCursor[T]) Err() error   { return nil }
func (c *channelCursor[T]) Close() error { return nil }
