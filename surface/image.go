package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/polygraph/polygraph"
	"golang.org/x/image/vector"
)

// circleSegments is the number of edges used to approximate circles.
const circleSegments = 24

// Image rasterizes draw calls into an in-memory image.
type Image struct {
	// Background is painted by Clear.
	Background color.NRGBA
	img        *image.NRGBA
	z          *vector.Rasterizer
	stroke     color.NRGBA
	fill       color.NRGBA
	width      float32
	// subpaths of the current path, each a polyline.
	subpaths [][]f32.Point
}

var _ polygraph.Target = (*Image)(nil)

func NewImage(size image.Point, background color.NRGBA) *Image {
	return &Image{
		Background: background,
		img:        image.NewNRGBA(image.Rectangle{Max: size}),
		z:          vector.NewRasterizer(size.X, size.Y),
		width:      1,
	}
}

// Image returns the rasterized frame.
func (m *Image) Image() *image.NRGBA {
	return m.img
}

func (m *Image) Size() image.Point {
	return m.img.Bounds().Size()
}

func (m *Image) Clear(r image.Rectangle) {
	draw.Draw(m.img, r.Intersect(m.img.Bounds()), image.NewUniform(m.Background), image.Point{}, draw.Src)
}

func (m *Image) SetStrokeColor(c color.NRGBA) {
	m.stroke = c
}

func (m *Image) SetFillColor(c color.NRGBA) {
	m.fill = c
}

func (m *Image) SetLineWidth(w float32) {
	m.width = w
}

func (m *Image) BeginPath() {
	m.subpaths = m.subpaths[:0]
}

func (m *Image) MoveTo(p f32.Point) {
	m.subpaths = append(m.subpaths, []f32.Point{p})
}

func (m *Image) LineTo(p f32.Point) {
	if len(m.subpaths) == 0 {
		m.MoveTo(p)
		return
	}
	last := len(m.subpaths) - 1
	m.subpaths[last] = append(m.subpaths[last], p)
}

// Stroke expands every segment of the path into a quad and every interior
// vertex into a disc, then fills them all in one pass.
func (m *Image) Stroke() {
	half := m.width / 2
	m.begin()
	for _, sub := range m.subpaths {
		for i := 1; i < len(sub); i++ {
			a, b := sub[i-1], sub[i]
			d := b.Sub(a)
			length := float32(math.Hypot(float64(d.X), float64(d.Y)))
			if length == 0 {
				continue
			}
			n := f32.Pt(-d.Y/length*half, d.X/length*half)
			m.polygon(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
			if i < len(sub)-1 && half > 0.5 {
				m.circle(b, half)
			}
		}
	}
	m.paint(m.stroke)
}

func (m *Image) FillRect(a, b f32.Point) {
	lo, hi := corners(a, b)
	m.begin()
	m.polygon(lo, f32.Pt(hi.X, lo.Y), hi, f32.Pt(lo.X, hi.Y))
	m.paint(m.fill)
}

func (m *Image) FillCircle(center f32.Point, radius float32) {
	m.begin()
	m.circle(center, radius)
	m.paint(m.fill)
}

func (m *Image) begin() {
	size := m.img.Bounds().Size()
	m.z.Reset(size.X, size.Y)
	m.z.DrawOp = draw.Over
}

func (m *Image) paint(c color.NRGBA) {
	m.z.Draw(m.img, m.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (m *Image) circle(center f32.Point, radius float32) {
	pts := make([]f32.Point, circleSegments)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = f32.Pt(
			center.X+radius*float32(math.Cos(theta)),
			center.Y+radius*float32(math.Sin(theta)),
		)
	}
	m.polygon(pts...)
}

// polygon adds a closed polygon to the rasterizer. The rasterizer
// accumulates signed coverage, so every polygon is wound the same way to keep
// overlapping shapes from cancelling out.
func (m *Image) polygon(pts ...f32.Point) {
	if signedArea(pts) < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	m.z.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		m.z.LineTo(p.X, p.Y)
	}
	m.z.ClosePath()
}

func signedArea(pts []f32.Point) float32 {
	var area float32
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}
