package surface

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"gioui.org/f32"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder(image.Pt(10, 10))
	red := color.NRGBA{R: 0xff, A: 0xff}
	r.Clear(image.Rect(0, 0, 10, 10))
	r.BeginPath()
	r.SetStrokeColor(red)
	r.SetLineWidth(3)
	r.MoveTo(f32.Pt(0, 0))
	r.LineTo(f32.Pt(1, 1))
	r.MoveTo(f32.Pt(2, 2))
	r.LineTo(f32.Pt(3, 3))
	r.Stroke()
	r.SetFillColor(red)
	r.FillRect(f32.Pt(0, 0), f32.Pt(5, 5))
	r.FillCircle(f32.Pt(5, 5), 2)

	if len(r.Calls) != 4 {
		t.Fatalf("expected 4 calls, got %d", len(r.Calls))
	}
	stroke := r.Filter(OpStroke)
	if len(stroke) != 1 {
		t.Fatalf("expected one stroke, got %d", len(stroke))
	}
	if stroke[0].Moves != 2 || len(stroke[0].Points) != 4 {
		t.Errorf("expected 2 subpaths over 4 points, got %d over %d", stroke[0].Moves, len(stroke[0].Points))
	}
	if stroke[0].Width != 3 || stroke[0].Color != red {
		t.Errorf("expected red width 3, got %v width %v", stroke[0].Color, stroke[0].Width)
	}
	if r.LineTos != 2 {
		t.Errorf("expected 2 line segments, got %d", r.LineTos)
	}
	if r.Count(OpFillCircle) != 1 || r.Count(OpFillRect) != 1 {
		t.Errorf("expected one rect and one circle")
	}

	// Ending a path discards it.
	r.Stroke()
	if last := r.Calls[len(r.Calls)-1]; last.Op != OpStroke || len(last.Points) != 0 {
		t.Errorf("expected an empty stroke, got %v with %d points", last.Op, len(last.Points))
	}

	r.Reset()
	if len(r.Calls) != 0 || r.LineTos != 0 {
		t.Errorf("expected reset to discard calls")
	}
}

func TestRecorderLastFrame(t *testing.T) {
	r := NewRecorder(image.Pt(10, 10))
	r.FillCircle(f32.Pt(1, 1), 1)
	if n := len(r.LastFrame()); n != 1 {
		t.Errorf("expected every call without a clear, got %d", n)
	}
	r.Clear(image.Rect(0, 0, 10, 10))
	r.FillCircle(f32.Pt(1, 1), 1)
	r.Clear(image.Rect(0, 0, 10, 10))
	r.FillRect(f32.Pt(1, 1), f32.Pt(2, 2))
	frame := r.LastFrame()
	if len(frame) != 2 || frame[0].Op != OpClear || frame[1].Op != OpFillRect {
		t.Errorf("expected the calls since the last clear, got %v", frame)
	}
}

func TestRecorderDump(t *testing.T) {
	r := NewRecorder(image.Pt(10, 10))
	r.Clear(image.Rect(0, 0, 10, 10))
	r.MoveTo(f32.Pt(0, 0))
	r.LineTo(f32.Pt(1, 1))
	r.Stroke()
	r.FillRect(f32.Pt(0, 0), f32.Pt(1, 1))
	r.FillCircle(f32.Pt(1, 1), 4)
	var buf bytes.Buffer
	if err := r.Dump(&buf); err != nil {
		t.Fatalf("expected dump to succeed, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	expected := []string{"clear", "stroke", "fill-rect", "fill-circle"}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %q", len(expected), lines)
	}
	for i := range expected {
		if !strings.HasPrefix(lines[i], expected[i]+" ") {
			t.Errorf("[%d] expected %q prefix, got %q", i, expected[i], lines[i])
		}
	}
}

func TestCorners(t *testing.T) {
	lo, hi := corners(f32.Pt(10, 2), f32.Pt(3, 8))
	if lo != f32.Pt(3, 2) || hi != f32.Pt(10, 8) {
		t.Errorf("expected (3,2)-(10,8), got %v-%v", lo, hi)
	}
	if round[int](2.5) != 3 || round[int](-2.5) != -3 || round[int](1.4) != 1 {
		t.Errorf("expected rounding half away from zero")
	}
}
