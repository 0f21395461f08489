package polygraph

import (
	"image"
	"image/color"
	"time"

	"gioui.org/f32"
)

// DotRadius is the radius of dot-mode samples and live-edge markers.
const DotRadius = 4

// FrameStats describes the work done by the most recent RenderFrame.
type FrameStats struct {
	// Series is the number of series drawn (those with at least two samples).
	Series int
	// Visited is the number of sample positions computed across all series.
	Visited int
	// Dots is the number of live-edge markers drawn.
	Dots int
}

type liveDot struct {
	pos   f32.Point
	color color.NRGBA
}

// Renderer draws guides and series onto a Surface. It owns the mapping
// factors, which are recomputed only when the size or value range changes.
type Renderer struct {
	cfg     Config
	size    image.Point
	factors Factors
	stats   FrameStats
	// dots is scratch space for live-edge markers, reused across frames.
	dots []liveDot
}

func NewRenderer(cfg Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Resize records the viewport size and recomputes the mapping factors.
func (r *Renderer) Resize(size image.Point) {
	r.size = size
	r.factors = RecalcFactors(size.Y, r.cfg.Range)
}

// SetRange changes the value range and margins and recomputes the factors.
func (r *Renderer) SetRange(rng Range) {
	r.cfg.Range = rng
	r.factors = RecalcFactors(r.size.Y, rng)
}

// SetResolution changes the scroll speed in pixels per second. It takes
// effect on the next frame. Non-positive speeds would stop samples from ever
// reaching the left edge, so they are logged and ignored.
func (r *Renderer) SetResolution(pxPerSec float32) {
	if err := validResolution(pxPerSec); err != nil {
		Logger.Printf("failed setting resolution: %v", err)
		return
	}
	r.cfg.Resolution = pxPerSec
}

func (r *Renderer) Size() image.Point {
	return r.size
}

func (r *Renderer) Factors() Factors {
	return r.factors
}

// LastFrame reports the traversal counts of the previous RenderFrame.
func (r *Renderer) LastFrame() FrameStats {
	return r.stats
}

// RenderFrame clears s and draws every guide and then every series as of now.
func (r *Renderer) RenderFrame(s Surface, now time.Time, series *SeriesStore, guides *GuideStore) {
	r.stats = FrameStats{}
	r.dots = r.dots[:0]
	width := float32(r.size.X)

	s.Clear(image.Rectangle{Max: r.size})

	guides.View(func(guides []Guide) {
		for _, g := range guides {
			if g.Band {
				s.SetFillColor(g.Color)
				s.FillRect(
					f32.Pt(0, r.factors.ValueToY(g.Min+g.Height)),
					f32.Pt(width, r.factors.ValueToY(g.Min)),
				)
				continue
			}
			y := r.factors.ValueToY(g.Min)
			s.BeginPath()
			s.SetStrokeColor(g.Color)
			s.MoveTo(f32.Pt(0, y))
			s.LineTo(f32.Pt(width, y))
			s.Stroke()
		}
	})

	nowMS := now.UnixMilli()
	series.View(func(all []*Series) {
		for _, pen := range all {
			r.drawSeries(s, pen, nowMS)
		}
	})

	s.SetLineWidth(1)
	for _, dot := range r.dots {
		s.SetFillColor(dot.color)
		s.FillCircle(dot.pos, DotRadius)
	}
	r.stats.Dots = len(r.dots)
}

// drawSeries walks pen backward from its newest sample and stops after the
// first point at or beyond the left edge, so the cost of a frame depends on
// the visible width and resolution rather than the length of the history.
func (r *Renderer) drawSeries(s Surface, pen *Series, nowMS int64) {
	n := len(pen.samples)
	if n < 2 {
		return
	}
	r.stats.Series++
	s.BeginPath()
	s.SetLineWidth(pen.LineWidth)

	pos := SampleToPosition(pen.samples[n-1], nowMS, r.size.X, r.cfg.Resolution, r.factors)
	r.stats.Visited++
	if pen.Line {
		s.SetStrokeColor(pen.Color)
		s.MoveTo(pos)
		r.dots = append(r.dots, liveDot{
			pos:   f32.Pt(float32(r.size.X)-RightMargin, pos.Y),
			color: pen.Color,
		})
	} else {
		s.SetFillColor(pen.Color)
		s.FillCircle(pos, DotRadius)
	}

	for i := n - 2; i >= 0 && pos.X > 0; i-- {
		pos = SampleToPosition(pen.samples[i], nowMS, r.size.X, r.cfg.Resolution, r.factors)
		r.stats.Visited++
		if pen.Line {
			s.LineTo(pos)
		} else {
			s.FillCircle(pos, DotRadius)
		}
	}

	if pen.Line {
		s.Stroke()
	}
}
