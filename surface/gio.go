package surface

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/x/stroke"
	"git.sr.ht/~whereswaldon/polygraph/polygraph"
)

// Gio draws into a Gio operation list. It must be Reset with the frame's ops
// and size before each frame.
type Gio struct {
	// Background is painted by Clear.
	Background color.NRGBA
	ops        *op.Ops
	size       image.Point
	stroke     color.NRGBA
	fill       color.NRGBA
	width      float32
	path       stroke.Path
}

var _ polygraph.Target = (*Gio)(nil)

func NewGio(background color.NRGBA) *Gio {
	return &Gio{Background: background, width: 1}
}

// Reset points the surface at ops for a frame of the given size.
func (g *Gio) Reset(ops *op.Ops, size image.Point) {
	g.ops = ops
	g.size = size
	g.path = stroke.Path{}
}

func (g *Gio) Size() image.Point {
	return g.size
}

func (g *Gio) Clear(r image.Rectangle) {
	paint.FillShape(g.ops, g.Background, clip.Rect(r).Op())
}

func (g *Gio) SetStrokeColor(c color.NRGBA) {
	g.stroke = c
}

func (g *Gio) SetFillColor(c color.NRGBA) {
	g.fill = c
}

func (g *Gio) SetLineWidth(w float32) {
	g.width = w
}

func (g *Gio) BeginPath() {
	// Segments are referenced until Stroke builds the outline, so start a
	// fresh slice rather than truncating.
	g.path = stroke.Path{}
}

func (g *Gio) MoveTo(p f32.Point) {
	g.path.Segments = append(g.path.Segments, stroke.MoveTo(p))
}

func (g *Gio) LineTo(p f32.Point) {
	g.path.Segments = append(g.path.Segments, stroke.LineTo(p))
}

func (g *Gio) Stroke() {
	if len(g.path.Segments) < 2 {
		return
	}
	area := stroke.Stroke{Path: g.path, Width: g.width}.Op(g.ops)
	paint.FillShape(g.ops, g.stroke, area)
}

func (g *Gio) FillRect(a, b f32.Point) {
	lo, hi := corners(a, b)
	var p clip.Path
	p.Begin(g.ops)
	p.MoveTo(lo)
	p.LineTo(f32.Pt(hi.X, lo.Y))
	p.LineTo(hi)
	p.LineTo(f32.Pt(lo.X, hi.Y))
	p.Close()
	paint.FillShape(g.ops, g.fill, clip.Outline{Path: p.End()}.Op())
}

func (g *Gio) FillCircle(center f32.Point, radius float32) {
	r := image.Rectangle{
		Min: image.Pt(round[int](center.X-radius), round[int](center.Y-radius)),
		Max: image.Pt(round[int](center.X+radius), round[int](center.Y+radius)),
	}
	paint.FillShape(g.ops, g.fill, clip.Ellipse(r).Op(g.ops))
}
