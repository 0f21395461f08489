package polygraph

import (
	"image"
	"time"
)

// Debouncer coalesces bursts of size notifications. Only the last size of a
// burst is delivered, once Window has passed without a newer notification.
// It is driven entirely by the timestamps passed in, which lets the frame
// loop poll it on every tick.
type Debouncer struct {
	Window   time.Duration
	pending  bool
	size     image.Point
	deadline time.Time
}

// Notify records size and restarts the quiet window.
func (d *Debouncer) Notify(now time.Time, size image.Point) {
	d.pending = true
	d.size = size
	d.deadline = now.Add(d.Window)
}

// Pending reports whether a notification is waiting for its window to expire.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Poll returns the coalesced size if the quiet window has elapsed by now.
func (d *Debouncer) Poll(now time.Time) (size image.Point, ok bool) {
	if !d.pending || now.Before(d.deadline) {
		return image.Point{}, false
	}
	d.pending = false
	return d.size, true
}
