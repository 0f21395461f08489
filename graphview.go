package main

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/polygraph/polygraph"
	"git.sr.ht/~whereswaldon/polygraph/surface"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

// frameClock adapts Gio's frame events to polygraph.FrameClock. Requests are
// fired by the next call to fire, which the graph view makes while laying out
// a frame.
type frameClock struct {
	pending []func(time.Time)
}

func (c *frameClock) RequestFrame(fn func(now time.Time)) {
	c.pending = append(c.pending, fn)
}

// fire runs the outstanding requests and reports whether new ones were made.
func (c *frameClock) fire(now time.Time) bool {
	fns := c.pending
	c.pending = nil
	for _, fn := range fns {
		fn(now)
	}
	return len(c.pending) > 0
}

// GraphView displays a live polygraph.Graph.
type GraphView struct {
	graph   *polygraph.Graph
	surface *surface.Gio
	clock   frameClock
	// frameOps holds the most recently rendered frame so that it stays on
	// screen while the animation is stopped.
	frameOps  op.Ops
	lastFrame op.CallOp
	size      image.Point
	pauseBtn  widget.Clickable
	ShowStats widget.Bool
}

func NewGraphView(g *polygraph.Graph) *GraphView {
	return &GraphView{
		graph:   g,
		surface: surface.NewGio(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
	}
}

func (v *GraphView) Update(gtx C) {
	if v.pauseBtn.Clicked(gtx) {
		running := !v.graph.Running()
		v.graph.SetRunning(running)
		if running {
			v.graph.Start(&v.clock, v.surface)
		}
	}
	v.ShowStats.Update(gtx)
}

// Layout draws the graph, ticking the animation driver if it asked for a frame.
func (v *GraphView) Layout(gtx C) D {
	v.Update(gtx)
	size := gtx.Constraints.Max
	if size != v.size {
		v.size = size
		v.graph.NotifyResize(gtx.Now, size)
	}
	if len(v.clock.pending) > 0 {
		v.frameOps.Reset()
		macro := op.Record(&v.frameOps)
		v.surface.Reset(&v.frameOps, size)
		if v.clock.fire(gtx.Now) {
			gtx.Execute(op.InvalidateCmd{})
		}
		v.lastFrame = macro.Stop()
	}
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	v.lastFrame.Add(gtx.Ops)
	return D{Size: size}
}

// LayoutControls draws the pause button and the statistics toggle.
func (v *GraphView) LayoutControls(gtx C, th *material.Theme) D {
	icon := pauseIcon
	description := "Pause"
	if !v.graph.Running() {
		icon = playIcon
		description = "Play"
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			btn := material.IconButton(th, &v.pauseBtn, icon, description)
			btn.Size = 20
			btn.Inset = layout.UniformInset(6)
			return btn.Layout(gtx)
		}),
		layout.Rigid(material.CheckBox(th, &v.ShowStats, "Frame stats").Layout),
		layout.Rigid(func(gtx C) D {
			if !v.ShowStats.Value {
				return D{}
			}
			stats := v.graph.LastFrame()
			f := v.graph.Factors()
			text := fmt.Sprintf("series %d, visited %d, live dots %d, scale %.2f px/unit",
				stats.Series, stats.Visited, stats.Dots, -f.ScaleY)
			return layout.UniformInset(4).Layout(gtx, material.Body2(th, text).Layout)
		}),
	)
}
