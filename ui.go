package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"os"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/polygraph/backend"
	"git.sr.ht/~whereswaldon/polygraph/polygraph"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ctx   context.Context
	graph *polygraph.Graph
	feed  *backend.Feed
	expl  *explorer.Explorer
	view  *GraphView
	key   Legend

	followBtn  widget.Clickable
	followErr  string
	followErrs chan string

	th           *material.Theme
	statusStream *stream.Stream[backend.Status]
	status       backend.Status
}

func NewUI(ctx context.Context, g *polygraph.Graph, feed *backend.Feed, controller *stream.Controller, expl *explorer.Explorer) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	return &UI{
		ctx:          ctx,
		graph:        g,
		feed:         feed,
		expl:         expl,
		th:           th,
		view:         NewGraphView(g),
		followErrs:   make(chan string, 1),
		statusStream: stream.New(controller, feed.Status),
	}
}

// Start begins animating the graph.
func (ui *UI) Start() {
	ui.graph.Start(&ui.view.clock, ui.view.surface)
}

// Update the state of the UI in response to input.
func (ui *UI) Update(gtx C) {
	ui.statusStream.ReadInto(gtx, &ui.status, backend.Status{})
	if ui.followBtn.Clicked(gtx) {
		ui.followErr = ""
		// Choosing blocks until the explorer sees more window events.
		go ui.followFile()
	}
	select {
	case ui.followErr = <-ui.followErrs:
	default:
	}
}

func (ui *UI) followFile() {
	f, err := ui.expl.ChooseFile("csv")
	if err != nil {
		ui.followErrs <- fmt.Sprintf("failed choosing file: %v", err)
		return
	}
	osFile, ok := f.(*os.File)
	if !ok {
		// Not a plain file, so it cannot be watched; read what is there.
		go func() {
			defer f.Close()
			if err := ui.feed.Run(ui.ctx, "selected file", f); err != nil {
				log.Printf("failed reading selected file: %v", err)
			}
		}()
		return
	}
	path := osFile.Name()
	f.Close()
	go func() {
		if err := ui.feed.Follow(ui.ctx, path); err != nil {
			log.Printf("failed following %q: %v", path, err)
		}
	}()
}

func (ui *UI) statusText() string {
	s := ui.status
	if s.Source == "" {
		return "No feed yet."
	}
	return fmt.Sprintf("%s: %d series, %d samples, %d dropped", s.Source, s.Series, s.Samples, s.Dropped)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					return ui.view.LayoutControls(gtx, ui.th)
				}),
				layout.Rigid(func(gtx C) D {
					return layout.UniformInset(4).Layout(gtx, material.Button(ui.th, &ui.followBtn, "Follow file").Layout)
				}),
				layout.Flexed(1, func(gtx C) D {
					return layout.UniformInset(4).Layout(gtx, material.Body2(ui.th, ui.statusText()).Layout)
				}),
			)
		}),
		layout.Rigid(func(gtx C) D {
			msg := ui.followErr
			if msg == "" && ui.status.Err != nil {
				msg = ui.status.Err.Error()
			}
			if msg == "" {
				return D{}
			}
			l := material.Body1(ui.th, msg)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(3, ui.view.Layout),
		layout.Flexed(1, func(gtx C) D {
			return ui.key.Layout(gtx, ui.th, ui.graph.Series)
		}),
	)
}
