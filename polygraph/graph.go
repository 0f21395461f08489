// Package polygraph draws a live, scrolling graph of many named time series.
//
// Samples are appended to named series at any time and from any goroutine.
// Once per display refresh the Driver redraws every guide and series onto a
// Surface, mapping values into a fixed range and scrolling by the age of each
// sample. Rendering walks each history backward from its newest sample and
// stops at the left edge, so frame cost is bounded by the viewport width and
// the scroll resolution no matter how long the history grows.
package polygraph

import (
	"fmt"
	"image"
)

// Graph bundles the series and guide stores with the animation driver.
type Graph struct {
	*Driver
	Series *SeriesStore
	Guides *GuideStore
}

// New returns a Graph configured by cfg.
func New(cfg Config) (*Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph config: %w", err)
	}
	series := NewSeriesStore()
	guides := NewGuideStore()
	return &Graph{
		Driver: NewDriver(cfg, series, guides),
		Series: series,
		Guides: guides,
	}, nil
}

func (g *Graph) RegisterSeries(id string, opts SeriesOptions) error {
	return g.Series.Register(id, opts)
}

func (g *Graph) RegisterGuide(id string, opts GuideOptions) error {
	return g.Guides.Register(id, opts)
}

// AppendSample adds value to series id at the current time.
func (g *Graph) AppendSample(id string, value float64) bool {
	return g.Series.Append(id, value)
}

// AppendSampleAt adds value to series id at timestamp milliseconds.
func (g *Graph) AppendSampleAt(id string, value float64, timestamp int64) bool {
	return g.Series.AppendAt(id, value, timestamp)
}

// SetRange validates and applies a new value range.
func (g *Graph) SetRange(r Range) error {
	cfg := DefaultConfig()
	cfg.Range = r
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.Driver.SetRange(r)
	return nil
}

// HandleResize consumes a host resize notification. The new size is applied
// once the debounce window has elapsed on the graph's frame clock.
func (g *Graph) HandleResize(width, height int) {
	g.Resize(image.Pt(width, height))
}
