package polygraph

import (
	"context"
	"sync"
	"time"
)

// FrameClock runs submitted callbacks on the next display refresh. Each
// request fires at most once.
type FrameClock interface {
	RequestFrame(fn func(now time.Time))
}

// ManualClock fires frames only when Advance is called, for driving the
// animation loop with synthetic ticks.
type ManualClock struct {
	lock    sync.Mutex
	now     time.Time
	pending []func(time.Time)
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) RequestFrame(fn func(now time.Time)) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.pending = append(c.pending, fn)
}

// Pending returns the number of frame requests waiting to fire.
func (c *ManualClock) Pending() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.pending)
}

// Now returns the clock's current synthetic time.
func (c *ManualClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

// Advance moves the clock forward by d and fires every request that was
// pending beforehand. Requests made by the callbacks wait for the next
// Advance. It returns the number of callbacks fired.
func (c *ManualClock) Advance(d time.Duration) int {
	c.lock.Lock()
	c.now = c.now.Add(d)
	now := c.now
	fns := c.pending
	c.pending = nil
	c.lock.Unlock()
	for _, fn := range fns {
		fn(now)
	}
	return len(fns)
}

// TickerClock fires frames from a time.Ticker. It is used where no display
// is available.
type TickerClock struct {
	interval time.Duration
	lock     sync.Mutex
	pending  []func(time.Time)
}

func NewTickerClock(interval time.Duration) *TickerClock {
	return &TickerClock{interval: interval}
}

func (c *TickerClock) RequestFrame(fn func(now time.Time)) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.pending = append(c.pending, fn)
}

// Run fires pending frames on every tick until ctx is cancelled or a tick
// finds nothing left to run, which happens once the animation loop stops.
func (c *TickerClock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			c.lock.Lock()
			fns := c.pending
			c.pending = nil
			c.lock.Unlock()
			if len(fns) == 0 {
				return nil
			}
			for _, fn := range fns {
				fn(t)
			}
		}
	}
}
