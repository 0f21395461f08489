package main

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"git.sr.ht/~whereswaldon/polygraph/polygraph"
)

// legendRow is a snapshot of one series, taken so that the store is not
// locked while laying out.
type legendRow struct {
	color   color.NRGBA
	id      string
	dots    bool
	latest  polygraph.Sample
	samples int
}

// Legend is a table keying each series color to its id and newest value.
// Display names stay unrendered; the id is what feeds and flags refer to.
type Legend struct {
	keyTable component.GridState
	rows     []legendRow
}

func (l *Legend) update(series *polygraph.SeriesStore) {
	l.rows = l.rows[:0]
	series.View(func(all []*polygraph.Series) {
		for _, s := range all {
			row := legendRow{
				color:   s.Color,
				id:      s.ID,
				dots:    !s.Line,
				samples: s.Len(),
			}
			if s.Len() > 0 {
				row.latest = s.At(s.Len() - 1)
			}
			l.rows = append(l.rows, row)
		}
	})
}

func (l *Legend) Layout(gtx C, th *material.Theme, series *polygraph.SeriesStore) D {
	l.update(series)
	table := component.Table(th, &l.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	valueColWidth := gtx.Dp(100)
	idColWidth := gtx.Constraints.Max.X - colorColWidth - 2*valueColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		idCol
		latestCol
		samplesCol
		numCols
	)
	return table.Layout(gtx, len(l.rows), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case idCol:
				size = idColWidth
			default:
				size = valueColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var label material.LabelStyle
			switch index {
			case colorCol:
				label = material.Body1(th, "Color")
			case idCol:
				label = material.Body1(th, "Series")
				label.Alignment = text.Middle
			case latestCol:
				label = material.Body1(th, "Latest")
				label.Alignment = text.End
			case samplesCol:
				label = material.Body1(th, "Samples")
				label.Alignment = text.End
			}
			label.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, label.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			r := l.rows[row]
			return layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return layout.Center.Layout(gtx, func(gtx C) D {
						side := gtx.Dp(10)
						sz := image.Pt(side, side)
						shape := clip.Rect{Max: sz}.Op()
						if r.dots {
							shape = clip.Ellipse{Max: sz}.Op(gtx.Ops)
						}
						paint.FillShape(gtx.Ops, r.color, shape)
						return D{Size: sz}
					})
				case idCol:
					return material.Body2(th, r.id).Layout(gtx)
				case latestCol:
					value := "-"
					if r.samples > 0 {
						value = fmt.Sprintf("%.3f", r.latest.Value)
					}
					label := material.Body2(th, value)
					label.Alignment = text.End
					return label.Layout(gtx)
				default:
					label := material.Body2(th, fmt.Sprintf("%d", r.samples))
					label.Alignment = text.End
					return label.Layout(gtx)
				}
			})
		},
	)
}
