package polygraph

import (
	"image"
	"sync"
	"time"
)

// DefaultResizeDebounce is the quiet window applied to external resize
// notifications.
const DefaultResizeDebounce = 100 * time.Millisecond

// Driver is the animation loop. While running it renders one frame per tick
// of a FrameClock; a tick that observes a new viewport size recomputes the
// mapping factors instead of rendering.
type Driver struct {
	lock     sync.Mutex
	renderer *Renderer
	series   *SeriesStore
	guides   *GuideStore
	size     image.Point
	// observed is the size last reported by the target, tracked apart from
	// size so that a notified size is not undone by an unchanged target.
	observed  image.Point
	running   bool
	scheduled bool
	resize    Debouncer
	// lastTick is the frame clock time of the most recent tick.
	lastTick time.Time
}

func NewDriver(cfg Config, series *SeriesStore, guides *GuideStore) *Driver {
	return &Driver{
		renderer: NewRenderer(cfg),
		series:   series,
		guides:   guides,
		running:  cfg.Running,
		resize:   Debouncer{Window: DefaultResizeDebounce},
	}
}

// SetResizeDebounce changes the quiet window for NotifyResize.
func (d *Driver) SetResizeDebounce(window time.Duration) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.resize.Window = window
}

// SetRunning stops or permits scheduling of further ticks. Stopping lets an
// in-flight tick finish. Restarting a stopped loop also requires Start.
func (d *Driver) SetRunning(running bool) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.running = running
}

func (d *Driver) Running() bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.running
}

// Scheduled reports whether a tick is waiting on the clock.
func (d *Driver) Scheduled() bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.scheduled
}

// Size returns the last viewport size the driver observed.
func (d *Driver) Size() image.Point {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.size
}

func (d *Driver) SetRange(r Range) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.renderer.SetRange(r)
}

// SetResolution changes the scroll speed. Non-positive speeds are rejected
// with ErrInvalidResolution.
func (d *Driver) SetResolution(pxPerSec float32) error {
	if err := validResolution(pxPerSec); err != nil {
		return err
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	d.renderer.SetResolution(pxPerSec)
	return nil
}

func (d *Driver) Factors() Factors {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.renderer.Factors()
}

// LastFrame reports the traversal counts of the most recently rendered frame.
func (d *Driver) LastFrame() FrameStats {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.renderer.LastFrame()
}

// NotifyResize is the externally triggered resize path. Bursts of
// notifications are coalesced and the last size is applied on the first tick
// after the debounce window. A size equal to the current one is ignored.
func (d *Driver) NotifyResize(now time.Time, size image.Point) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.notifyResize(now, size)
}

// Resize is NotifyResize stamped with the frame clock time of the most recent
// tick, so the debounce window elapses in frame clock time whatever clock
// drives the loop. Before the first tick the notification is due at once.
func (d *Driver) Resize(size image.Point) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.notifyResize(d.lastTick, size)
}

func (d *Driver) notifyResize(now time.Time, size image.Point) {
	if size == d.size && !d.resize.Pending() {
		return
	}
	d.resize.Notify(now, size)
}

// Tick handles one frame and reports whether another should be scheduled.
// A tick that applies a new size, whether debounced or reported by t,
// recomputes the mapping factors and draws nothing.
func (d *Driver) Tick(t Target, now time.Time) (again bool) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.lastTick = now
	resized := false
	if size := t.Size(); size != d.observed {
		d.observed = size
		if size != d.size {
			d.applySize(size)
			resized = true
		}
	}
	// A due notification wins over the target's size within one tick.
	if size, ok := d.resize.Poll(now); ok && size != d.size {
		d.applySize(size)
		resized = true
	}
	if !resized {
		d.renderer.RenderFrame(t, now, d.series, d.guides)
	}
	return d.running
}

func (d *Driver) applySize(size image.Point) {
	d.size = size
	d.renderer.Resize(size)
}

// Start submits the repeating tick to clock. Each tick reschedules itself
// while the driver is running. Calling Start while a tick is already
// scheduled does nothing.
func (d *Driver) Start(clock FrameClock, t Target) {
	d.lock.Lock()
	if d.scheduled {
		d.lock.Unlock()
		return
	}
	d.scheduled = true
	d.lock.Unlock()
	d.schedule(clock, t)
}

func (d *Driver) schedule(clock FrameClock, t Target) {
	clock.RequestFrame(func(now time.Time) {
		again := d.Tick(t, now)
		d.lock.Lock()
		// SetRunning may have flipped since the tick returned.
		again = again && d.running
		d.scheduled = again
		d.lock.Unlock()
		if again {
			d.schedule(clock, t)
		}
	})
}
