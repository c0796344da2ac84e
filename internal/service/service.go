// Package service holds the mood and habit business rules between the HTTP
// and CLI front ends and the storage provider.
package service

import "time"

// Option configures a service
type Option func(*clock)

type clock struct {
	now func() time.Time
	loc *time.Location
}

func newClock(opts []Option) clock {
	c := clock{now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(c *clock) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation sets the timezone used to decide which calendar day is "today"
func WithLocation(loc *time.Location) Option {
	return func(c *clock) {
		if loc != nil {
			c.loc = loc
		}
	}
}
