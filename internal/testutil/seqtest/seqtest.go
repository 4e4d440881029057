// Package seqtest provides sequences that record how they are consumed.
package seqtest

import (
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// Counting wraps a slice and records cursor opens, element pulls and closes.
type Counting[T any] struct {
	items  []T
	Opens  int
	Pulls  int
	Closes int
}

// NewCounting creates a Counting sequence over items.
func NewCounting[T any](items ...T) *Counting[T] {
	return &Counting[T]{items: items}
}

// Cursor implements sequence.Sequence.
func (c *Counting[T]) Cursor() sequence.Cursor[T] {
	c.Opens++
	return &countingCursor[T]{parent: c, pos: -1}
}

// Open reports the number of cursors that were opened and not closed.
func (c *Counting[T]) Open() int { return c.Opens - c.Closes }

type countingCursor[T any] struct {
	parent *Counting[T]
	pos    int
	closed bool
}

func (c *countingCursor[T]) Next() bool {
	if c.closed || c.pos+1 >= len(c.parent.items) {
		return false
	}
	c.pos++
	c.parent.Pulls++
	return true
}

func (c *countingCursor[T]) Current() T { return c.parent.items[c.pos] }
func (c *countingCursor[T]) Err() error { return nil }

func (c *countingCursor[T]) Close() error {
	if !c.closed {
		c.closed = true
		c.parent.Closes++
	}
	return nil
}

// Failing yields items and then stops with err.
func Failing[T any](err error, items ...T) sequence.Sequence[T] {
	return sequence.SequenceFunc[T](func() sequence.Cursor[T] {
		return &failingCursor[T]{items: items, err: err, pos: -1}
	})
}

type failingCursor[T any] struct {
	items  []T
	err    error
	pos    int
	failed bool
}

func (c *failingCursor[T]) Next() bool {
	if c.failed {
		return false
	}
	if c.pos+1 >= len(c.items) {
		c.failed = true
		return false
	}
	c.pos++
	return true
}

func (c *failingCursor[T]) Current() T { return c.items[c.pos] }

func (c *failingCursor[T]) Err() error {
	if c.failed {
		return c.err
	}
	return nil
}

func (c *failingCursor[T]) Close() error { return nil }

// Unsized hides the Sized and Indexer capabilities of s so that operators
// take their streaming path.
func Unsized[T any](s sequence.Sequence[T]) sequence.Sequence[T] {
	return sequence.SequenceFunc[T](s.Cursor)
}
