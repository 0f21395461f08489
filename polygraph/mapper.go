package polygraph

import "gioui.org/f32"

// RightMargin keeps the newest point of every series off the right edge.
const RightMargin = 5

// Factors is the linear mapping from values to screen y coordinates.
// Larger values map to smaller y.
type Factors struct {
	ScaleY, OffsetY float32
}

// RecalcFactors maps [r.Min, r.Max] onto [height-r.BottomMargin, r.TopMargin].
// The caller must ensure r.Max != r.Min.
func RecalcFactors(height int, r Range) Factors {
	scale := -(float32(height) - r.BottomMargin - r.TopMargin) / float32(r.Max-r.Min)
	return Factors{
		ScaleY:  scale,
		OffsetY: r.TopMargin - scale*float32(r.Max),
	}
}

func (f Factors) ValueToY(v float64) float32 {
	return f.ScaleY*float32(v) + f.OffsetY
}

// SampleToPosition places s relative to nowMS. Samples age right to left at
// resolution pixels per second regardless of frame rate.
func SampleToPosition(s Sample, nowMS int64, width int, resolution float32, f Factors) f32.Point {
	age := float32(nowMS-s.Timestamp) * 0.001
	return f32.Point{
		X: float32(width) - RightMargin - age*resolution,
		Y: f.ValueToY(s.Value),
	}
}
