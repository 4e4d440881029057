package sequence

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/metrics"
)

// metricsCursor records one traversal of an instrumented sequence.
type metricsCursor[T any] struct {
	upstream[T]
	name     string
	registry *metrics.Registry
	start    time.Time
	closed   bool
}

// WithMetrics wraps source so that every traversal is recorded in the
// Prometheus metrics selected by config under the given sequence name. When
// config is disabled, source is returned unchanged.
func WithMetrics[T any](source Sequence[T], name string, config metrics.Config) Sequence[T] {
	validation.NotNil("sequence.WithMetrics", "source", source)
	validation.Must(validation.ValidateNotEmpty("sequence.WithMetrics", "name", name))
	if !config.Enabled {
		return source
	}

	registry := metrics.For(config)
	return SequenceFunc[T](func() Cursor[T] {
		registry.Traversals.WithLabelValues(name).Inc()
		registry.ActiveCursors.WithLabelValues(name).Inc()
		return &metricsCursor[T]{
			upstream: upstream[T]{src: source.Cursor()},
			name:     name,
			registry: registry,
			start:    time.Now(),
		}
	})
}

func (c *metricsCursor[T]) Next() bool {
	if c.closed || !c.src.Next() {
		return false
	}
	c.registry.Elements.WithLabelValues(c.name).Inc()
	return true
}

func (c *metricsCursor[T]) Current() T { return c.src.Current() }

func (c *metricsCursor[T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	failed := c.src.Err() != nil
	err := c.src.Close()
	if failed || err != nil {
		c.registry.Errors.WithLabelValues(c.name).Inc()
	}
	c.registry.ActiveCursors.WithLabelValues(c.name).Dec()
	c.registry.TraversalDuration.WithLabelValues(c.name).Observe(time.Since(c.start).Seconds())
	return err
}

// traceCursor logs one traversal of a traced sequence.
type traceCursor[T any] struct {
	upstream[T]
	log    logr.Logger
	count  int
	start  time.Time
	closed bool
}

// Trace wraps source so that every traversal is logged to log: the opening
// of a cursor and its closing, with the number of elements yielded, at
// verbosity 1, and a failed traversal as an error.
func Trace[T any](source Sequence[T], name string, log logr.Logger) Sequence[T] {
	validation.NotNil("sequence.Trace", "source", source)
	log = log.WithName(name)
	return SequenceFunc[T](func() Cursor[T] {
		log.V(1).Info("cursor opened")
		return &traceCursor[T]{
			upstream: upstream[T]{src: source.Cursor()},
			log:      log,
			start:    time.Now(),
		}
	})
}

func (c *traceCursor[T]) Next() bool {
	if c.closed || !c.src.Next() {
		return false
	}
	c.count++
	return true
}

func (c *traceCursor[T]) Current() T { return c.src.Current() }

func (c *traceCursor[T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if err := c.src.Err(); err != nil {
		c.log.Error(err, "traversal failed", "elements", c.count)
	}
	err := c.src.Close()
	if err != nil {
		c.log.Error(err, "close failed")
	}
	c.log.V(1).Info("cursor closed", "elements", c.count, "duration", time.Since(c.start))
	return err
}
