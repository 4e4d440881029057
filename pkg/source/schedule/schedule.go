// Package schedule turns cron expressions into sequences of activation times.
//
// Expressions use the standard five fields with an optional leading seconds
// field, and the @yearly, @monthly, @weekly, @daily, @hourly and @every
// descriptors:
//
//	"0 */2 * * *"     every 2 hours
//	"30 14 * * 1-5"   2:30 PM on weekdays
//	"*/10 * * * * *"  every 10 seconds
//	"@daily"          every day at midnight
package schedule

import (
	"time"

	"github.com/robfig/cron/v3"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

var parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Parse validates expr and returns its schedule.
func Parse(expr string) (cron.Schedule, error) {
	if err := validation.ValidateNotEmpty("schedule", "expr", expr); err != nil {
		return nil, err
	}
	s, err := parser.Parse(expr)
	if err != nil {
		return nil, sferrors.NewValidationError("schedule", "expr", expr, err.Error()).
			WithHint("use five or six cron fields or a descriptor such as @daily")
	}
	return s, nil
}

// Times returns the infinite sequence of activation times of expr strictly
// after from, in from's location.
func Times(expr string, from time.Time) (sequence.Sequence[time.Time], error) {
	s, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return activations(s, from, time.Time{}), nil
}

// Between returns the activation times of expr strictly after from and not
// after to.
func Between(expr string, from, to time.Time) (sequence.Sequence[time.Time], error) {
	s, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, sferrors.NewValidationError("schedule", "to", to, "must not be before from")
	}
	return activations(s, from, to), nil
}

func activations(s cron.Schedule, from, to time.Time) sequence.Sequence[time.Time] {
	return sequence.SequenceFunc[time.Time](func() sequence.Cursor[time.Time] {
		return &cursor{schedule: s, cur: from, to: to}
	})
}

// cursor walks a schedule. A zero to means no upper bound.
type cursor struct {
	schedule cron.Schedule
	cur      time.Time
	to       time.Time
	done     bool
}

func (c *cursor) Next() bool {
	if c.done {
		return false
	}
	next := c.schedule.Next(c.cur)
	// Next returns the zero time when no activation can be found.
	if next.IsZero() || (!c.to.IsZero() && next.After(c.to)) {
		c.done = true
		return false
	}
	c.cur = next
	return true
}

func (c *cursor) Current() time.Time { return c.cur }
func (c *cursor) Err() error         { return nil }
func (c *cursor) Close() error       { c.done = true; return nil }
