package polygraph

import (
	"image"
	"image/color"

	"gioui.org/f32"
)

// Surface is an immediate-mode 2D drawing API in the style of an HTML canvas.
// Paths are built with BeginPath, MoveTo and LineTo and painted by Stroke
// using the current stroke color and line width.
type Surface interface {
	Clear(r image.Rectangle)
	SetStrokeColor(c color.NRGBA)
	SetFillColor(c color.NRGBA)
	SetLineWidth(w float32)
	BeginPath()
	MoveTo(p f32.Point)
	LineTo(p f32.Point)
	Stroke()
	// FillRect fills the axis-aligned rectangle spanned by a and b.
	FillRect(a, b f32.Point)
	FillCircle(center f32.Point, radius float32)
}

// Target is a Surface with a known size in pixels.
type Target interface {
	Surface
	Size() image.Point
}
