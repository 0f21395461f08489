// Package surface provides implementations of polygraph.Surface: one that
// draws with Gio operations, one that rasterizes into an image, and one that
// records draw calls.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/polygraph/polygraph"
)

// Op identifies a recorded draw call.
type Op uint8

const (
	OpClear Op = iota
	OpStroke
	OpFillRect
	OpFillCircle
)

func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpStroke:
		return "stroke"
	case OpFillRect:
		return "fill-rect"
	case OpFillCircle:
		return "fill-circle"
	default:
		return "unknown"
	}
}

// Call is one recorded draw call.
type Call struct {
	Op Op
	// Rect is the cleared area for OpClear.
	Rect image.Rectangle
	// Points holds the path of OpStroke, the two corners of OpFillRect or
	// the center of OpFillCircle.
	Points []f32.Point
	// Moves is the number of subpaths in an OpStroke.
	Moves  int
	Color  color.NRGBA
	Width  float32
	Radius float32
}

// Recorder records draw calls instead of drawing.
type Recorder struct {
	size   image.Point
	Calls  []Call
	stroke color.NRGBA
	fill   color.NRGBA
	width  float32
	path   []f32.Point
	moves  int
	// LineTos counts every LineTo since the recorder was created or Reset.
	LineTos int
}

var _ polygraph.Target = (*Recorder)(nil)

func NewRecorder(size image.Point) *Recorder {
	return &Recorder{size: size, width: 1}
}

// Resize changes the size reported to the animation driver.
func (r *Recorder) Resize(size image.Point) {
	r.size = size
}

// Reset discards recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.LineTos = 0
}

// Count returns the number of recorded calls of kind op.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls of kind op in order.
func (r *Recorder) Filter(op Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// LastFrame returns the calls recorded since the most recent clear.
func (r *Recorder) LastFrame() []Call {
	for i := len(r.Calls) - 1; i >= 0; i-- {
		if r.Calls[i].Op == OpClear {
			return r.Calls[i:]
		}
	}
	return r.Calls
}

// Dump writes one line per recorded call.
func (r *Recorder) Dump(w io.Writer) error {
	for _, c := range r.Calls {
		var err error
		switch c.Op {
		case OpClear:
			_, err = fmt.Fprintf(w, "%s %v\n", c.Op, c.Rect)
		case OpStroke:
			_, err = fmt.Fprintf(w, "%s color=%v width=%.1f points=%d\n", c.Op, c.Color, c.Width, len(c.Points))
		case OpFillRect:
			_, err = fmt.Fprintf(w, "%s color=%v %v-%v\n", c.Op, c.Color, c.Points[0], c.Points[1])
		case OpFillCircle:
			_, err = fmt.Fprintf(w, "%s color=%v center=%v r=%.1f\n", c.Op, c.Color, c.Points[0], c.Radius)
		}
		if err != nil {
			return fmt.Errorf("failed dumping draw calls: %w", err)
		}
	}
	return nil
}

func (r *Recorder) Size() image.Point {
	return r.size
}

func (r *Recorder) Clear(rect image.Rectangle) {
	r.Calls = append(r.Calls, Call{Op: OpClear, Rect: rect})
}

func (r *Recorder) SetStrokeColor(c color.NRGBA) {
	r.stroke = c
}

func (r *Recorder) SetFillColor(c color.NRGBA) {
	r.fill = c
}

func (r *Recorder) SetLineWidth(w float32) {
	r.width = w
}

func (r *Recorder) BeginPath() {
	r.path = nil
	r.moves = 0
}

func (r *Recorder) MoveTo(p f32.Point) {
	r.path = append(r.path, p)
	r.moves++
}

func (r *Recorder) LineTo(p f32.Point) {
	r.path = append(r.path, p)
	r.LineTos++
}

func (r *Recorder) Stroke() {
	r.Calls = append(r.Calls, Call{
		Op:     OpStroke,
		Points: r.path,
		Moves:  r.moves,
		Color:  r.stroke,
		Width:  r.width,
	})
	r.path = nil
	r.moves = 0
}

func (r *Recorder) FillRect(a, b f32.Point) {
	r.Calls = append(r.Calls, Call{
		Op:     OpFillRect,
		Points: []f32.Point{a, b},
		Color:  r.fill,
	})
}

func (r *Recorder) FillCircle(center f32.Point, radius float32) {
	r.Calls = append(r.Calls, Call{
		Op:     OpFillCircle,
		Points: []f32.Point{center},
		Color:  r.fill,
		Radius: radius,
	})
}
