package surface

import (
	"math"

	"gioui.org/f32"
	"golang.org/x/exp/constraints"
)

func round[T constraints.Integer | constraints.Float](a float32) T {
	return T(math.Round(float64(a)))
}

// corners orders the corners of the rectangle spanned by a and b.
func corners(a, b f32.Point) (lo, hi f32.Point) {
	return f32.Pt(min(a.X, b.X), min(a.Y, b.Y)), f32.Pt(max(a.X, b.X), max(a.Y, b.Y))
}
