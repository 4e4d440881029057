// Package redislist exposes a Redis list as a restartable sequence.
//
// Every cursor reads the list from the head, one LRANGE page at a time, so
// two traversals of the same sequence see the list as it is when each page
// is fetched. A failed page stops the cursor with a *RedisError.
package redislist

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/metrics"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// Reader is the subset of a Redis client used by the list source.
// *redis.Client, *redis.ClusterClient and redis.UniversalClient implement it.
type Reader interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// Config holds configuration for a list source.
type Config struct {
	// Client reads the list.
	Client Reader

	// Key is the Redis key of the list.
	Key string

	// PageSize is the number of elements fetched per LRANGE (defaults to 100).
	PageSize int64

	// Timeout bounds every page fetch (defaults to 500ms).
	Timeout time.Duration

	// Metrics records page fetches under the "source" label set to Key.
	Metrics metrics.Config
}

// DefaultConfig returns a default list source configuration.
func DefaultConfig() Config {
	return Config{
		PageSize: 100,
		Timeout:  500 * time.Millisecond,
	}
}

// RedisError represents a Redis operation error.
type RedisError struct {
	Operation string
	Err       error
}

func (e *RedisError) Error() string {
	return "redis error in " + e.Operation + ": " + e.Err.Error()
}

func (e *RedisError) Unwrap() error {
	return e.Err
}

func validateConfig(config Config) error {
	if err := validation.ValidateNotNil("redislist", "Client", config.Client); err != nil {
		return err
	}
	if err := validation.ValidateNotEmpty("redislist", "Key", config.Key); err != nil {
		return err
	}
	if config.PageSize < 0 {
		return sferrors.NewValidationError("redislist", "PageSize", config.PageSize, "cannot be negative")
	}
	if config.Timeout < 0 {
		return sferrors.NewValidationError("redislist", "Timeout", config.Timeout, "cannot be negative")
	}
	return nil
}

type list struct {
	ctx      context.Context
	config   Config
	registry *metrics.Registry
}

// New creates a sequence over the list described by config. Page fetches
// are bound to ctx: once it is done, cursors stop with its error.
func New(ctx context.Context, config Config) (sequence.Sequence[string], error) {
	if err := validation.ValidateNotNil("redislist", "ctx", ctx); err != nil {
		return nil, err
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	defaults := DefaultConfig()
	if config.PageSize == 0 {
		config.PageSize = defaults.PageSize
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}

	l := &list{ctx: ctx, config: config}
	if config.Metrics.Enabled {
		l.registry = metrics.For(config.Metrics)
	}
	return l, nil
}

// Decode maps the raw elements of a list through decode. An element that
// fails to decode stops the cursor with the decoder's error.
func Decode[T any](list sequence.Sequence[string], decode func(string) (T, error)) sequence.Sequence[T] {
	return sequence.TrySelect(list, decode)
}

func (l *list) Cursor() sequence.Cursor[string] {
	return &cursor{list: l, pos: -1}
}

// fetch reads the page starting at index start.
func (l *list) fetch(start int64) ([]string, error) {
	ctx, cancel := context.WithTimeout(l.ctx, l.config.Timeout)
	defer cancel()

	began := time.Now()
	page, err := l.config.Client.LRange(ctx, l.config.Key, start, start+l.config.PageSize-1).Result()
	if l.registry != nil {
		l.registry.SourceFetches.WithLabelValues(l.config.Key).Inc()
		l.registry.SourceFetchDuration.WithLabelValues(l.config.Key).Observe(time.Since(began).Seconds())
		if err != nil {
			l.registry.SourceFetchErrors.WithLabelValues(l.config.Key).Inc()
		}
	}
	if err != nil {
		return nil, &RedisError{"lrange", err}
	}
	return page, nil
}

type cursor struct {
	list   *list
	page   []string
	pos    int
	offset int64
	done   bool
	err    error
}

func (c *cursor) Next() bool {
	if c.done {
		return false
	}
	if c.pos+1 < len(c.page) {
		c.pos++
		return true
	}
	// A short page is the last one.
	if c.page != nil && int64(len(c.page)) < c.list.config.PageSize {
		c.done = true
		return false
	}

	page, err := c.list.fetch(c.offset)
	if err != nil {
		c.err = err
		c.done = true
		return false
	}
	if len(page) == 0 {
		c.done = true
		return false
	}
	c.offset += int64(len(page))
	c.page = page
	c.pos = 0
	return true
}

func (c *cursor) Current() string { return c.page[c.pos] }
func (c *cursor) Err() error      { return c.err }

func (c *cursor) Close() error {
	c.done = true
	c.page = nil
	return nil
}
