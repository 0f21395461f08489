// Package sensors defines sample producers for live graph feeds.
package sensors

import (
	"math"
	"time"
)

type Unit uint8

func (u Unit) String() string {
	switch u {
	case Joules:
		return "J"
	case Watts:
		return "W"
	case Amps:
		return "A"
	case Volts:
		return "V"
	default:
		return "?"
	}
}

const (
	Joules Unit = iota
	Watts
	Amps
	Volts
	Unknown
)

const (
	// MicroToUnprefixed is the conversion factor from a micro SI unit to an unprefixed
	// one.
	MicroToUnprefixed = 1.0 / 1_000_000
)

type Sensor interface {
	Name() string
	Unit() Unit
	Read() (float64, error)
}

// Wave is a synthetic sensor producing a sine wave, useful for demos and for
// exercising the graph without hardware.
type Wave struct {
	Label     string
	Amplitude float64
	Period    time.Duration
	Phase     float64
	// Now defaults to time.Now.
	Now   func() time.Time
	start time.Time
}

var _ Sensor = (*Wave)(nil)

func (w *Wave) Name() string {
	return w.Label
}

func (w *Wave) Unit() Unit {
	return Unknown
}

// Read returns the value of the wave at the current time. Time is measured
// from the first Read.
func (w *Wave) Read() (float64, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	t := now()
	if w.start.IsZero() {
		w.start = t
	}
	if w.Period <= 0 {
		return 0, nil
	}
	cycles := float64(t.Sub(w.start)) / float64(w.Period)
	return w.Amplitude * math.Sin(2*math.Pi*cycles+w.Phase), nil
}
