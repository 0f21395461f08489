package polygraph

import (
	"errors"
	"fmt"
	"log"
)

var (
	// ErrDuplicateRegistration is reported when a series or guide id is reused.
	ErrDuplicateRegistration = errors.New("already registered")
	// ErrMissingMin is reported when a guide is registered without a minimum value.
	ErrMissingMin = errors.New("guide needs at least a min value defined")
	// ErrEmptyRange is reported by Config.Validate when Max equals Min.
	ErrEmptyRange = errors.New("value range is empty")
	// ErrInvalidResolution is reported for scroll speeds that are not positive.
	ErrInvalidResolution = errors.New("resolution must be positive")
)

// Logger receives registration diagnostics. Replace it to silence or capture them.
var Logger = log.Default()

// Range describes the value domain and the vertical pixel margins it is
// mapped into.
type Range struct {
	Min, Max                float64
	TopMargin, BottomMargin float32
}

// Config holds the tunables of a Graph. The zero value is not useful; start
// from DefaultConfig.
type Config struct {
	Range
	// Resolution is the horizontal scroll speed in pixels per second.
	Resolution float32
	// Running controls whether the animation loop schedules new frames.
	Running bool
}

func DefaultConfig() Config {
	return Config{
		Range: Range{
			Min:          -1,
			Max:          1,
			TopMargin:    8,
			BottomMargin: 8,
		},
		Resolution: 50,
		Running:    true,
	}
}

// Validate reports configurations that the mapping math cannot handle.
func (c Config) Validate() error {
	if c.Max == c.Min {
		return fmt.Errorf("min %v, max %v: %w", c.Min, c.Max, ErrEmptyRange)
	}
	if err := validResolution(c.Resolution); err != nil {
		return err
	}
	if c.TopMargin < 0 || c.BottomMargin < 0 {
		return fmt.Errorf("margins must not be negative, got top %v bottom %v", c.TopMargin, c.BottomMargin)
	}
	return nil
}

func validResolution(pxPerSec float32) error {
	// Written to reject NaN as well.
	if !(pxPerSec > 0) {
		return fmt.Errorf("got %v: %w", pxPerSec, ErrInvalidResolution)
	}
	return nil
}
