package polygraph

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	start := time.UnixMilli(1000)
	c := NewManualClock(start)
	var fired []time.Time
	var request func()
	request = func() {
		c.RequestFrame(func(now time.Time) {
			fired = append(fired, now)
			request()
		})
	}
	request()
	if c.Pending() != 1 {
		t.Fatalf("expected 1 pending request, got %d", c.Pending())
	}
	if n := c.Advance(16 * time.Millisecond); n != 1 {
		t.Errorf("expected 1 callback, got %d", n)
	}
	// The rescheduled request waits for the next advance.
	if len(fired) != 1 || c.Pending() != 1 {
		t.Errorf("expected 1 fired and 1 pending, got %d and %d", len(fired), c.Pending())
	}
	c.Advance(16 * time.Millisecond)
	if len(fired) != 2 {
		t.Fatalf("expected 2 fired, got %d", len(fired))
	}
	if !fired[1].Equal(start.Add(32 * time.Millisecond)) {
		t.Errorf("expected second frame at %v, got %v", start.Add(32*time.Millisecond), fired[1])
	}
	if !c.Now().Equal(fired[1]) {
		t.Errorf("expected clock time %v, got %v", fired[1], c.Now())
	}
}

func TestTickerClockStopsWhenIdle(t *testing.T) {
	c := NewTickerClock(time.Millisecond)
	remaining := 3
	var request func()
	request = func() {
		c.RequestFrame(func(time.Time) {
			remaining--
			if remaining > 0 {
				request()
			}
		})
	}
	request()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Run(ctx); err != nil {
		t.Errorf("expected run to finish once idle, got %v", err)
	}
	if remaining != 0 {
		t.Errorf("expected every frame to fire, %d left", remaining)
	}
}

func TestTickerClockCancel(t *testing.T) {
	c := NewTickerClock(time.Millisecond)
	var request func()
	request = func() {
		c.RequestFrame(func(time.Time) { request() })
	}
	request()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := c.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestDebouncer(t *testing.T) {
	d := Debouncer{Window: 100 * time.Millisecond}
	t0 := time.UnixMilli(0)
	if _, ok := d.Poll(t0); ok {
		t.Errorf("expected nothing before any notification")
	}
	d.Notify(t0, image.Pt(100, 100))
	d.Notify(t0.Add(50*time.Millisecond), image.Pt(200, 100))
	d.Notify(t0.Add(90*time.Millisecond), image.Pt(300, 100))
	if _, ok := d.Poll(t0.Add(150 * time.Millisecond)); ok {
		t.Errorf("expected burst to extend the quiet window")
	}
	if !d.Pending() {
		t.Errorf("expected notification to be pending")
	}
	size, ok := d.Poll(t0.Add(190 * time.Millisecond))
	if !ok {
		t.Fatalf("expected size once the window elapsed")
	}
	if size != image.Pt(300, 100) {
		t.Errorf("expected last size of the burst, got %v", size)
	}
	if _, ok := d.Poll(t0.Add(time.Second)); ok {
		t.Errorf("expected a burst to be delivered only once")
	}
}
