package scheduler

import (
	"context"
	"time"
)

// Sweeper is one pass of a background lifecycle sweep. A sweep must be
// idempotent; running it twice in a row finds nothing left to do the
// second time.
type Sweeper interface {
	Name() string
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// SweepFunc adapts a plain function to the Sweeper interface
type SweepFunc func(ctx context.Context, now time.Time) (int, error)

type funcSweeper struct {
	name string
	fn   SweepFunc
}

// NewSweeper wraps a sweep function with a name
func NewSweeper(name string, fn SweepFunc) Sweeper {
	return &funcSweeper{name: name, fn: fn}
}

func (s *funcSweeper) Name() string {
	return s.name
}

func (s *funcSweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	return s.fn(ctx, now)
}
