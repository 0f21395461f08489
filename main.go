package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/polygraph/backend"
	"git.sr.ht/~whereswaldon/polygraph/polygraph"
	"git.sr.ht/~whereswaldon/polygraph/sensors"
)

func main() {
	cfg := polygraph.DefaultConfig()
	var guides polygraph.GuideFlags
	cfg.RegisterFlags(flag.CommandLine)
	flag.Var(&guides, "guide", "Threshold guide as name=min[:height][@#color]; may be repeated")
	input := flag.String("input", "", "CSV sample feed to follow; - reads standard input")
	waves := flag.Int("demo-waves", 0, "Number of synthetic sine wave series to graph")
	flag.Parse()

	g, err := polygraph.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	guides.Register(g.Guides)
	feed := backend.NewFeed(g)

	go func() {
		w := app.NewWindow(app.Title("polygraph"), app.Size(unit.Dp(800), unit.Dp(400)))
		if err := loop(w, g, feed, *input, *waves); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()

	app.Main()
}

// startSources launches the goroutines that append samples to g.
func startSources(ctx context.Context, g *polygraph.Graph, feed *backend.Feed, input string, waves int) {
	switch input {
	case "":
	case "-":
		go func() {
			if err := feed.Run(ctx, "stdin", os.Stdin); err != nil {
				log.Printf("could not read sample data: %v", err)
			}
		}()
	default:
		go func() {
			if err := feed.Follow(ctx, input); err != nil {
				log.Printf("failed following %q: %v", input, err)
			}
		}()
	}
	if waves > 0 {
		go runWaves(ctx, g, waves)
	}
}

// runWaves appends synthetic samples until ctx is done.
func runWaves(ctx context.Context, g *polygraph.Graph, count int) {
	var sources []*sensors.Wave
	for i := 0; i < count; i++ {
		w := &sensors.Wave{
			Label:     fmt.Sprintf("wave %d", i),
			Amplitude: 0.9,
			Period:    time.Duration(i+2) * time.Second,
			Phase:     float64(i) * math.Pi / 4,
		}
		opts := backend.SeriesOptionsFor(w.Name(), g.Series.Len())
		opts.DotsOnly = i%3 == 2
		opts.LineWidth = 2
		_ = g.RegisterSeries(w.Name(), opts)
		sources = append(sources, w)
	}
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, w := range sources {
				v, err := w.Read()
				if err != nil {
					log.Printf("failed reading %s: %v", w.Name(), err)
					continue
				}
				g.AppendSample(w.Name(), v)
			}
		}
	}
}

func loop(w *app.Window, g *polygraph.Graph, feed *backend.Feed, input string, waves int) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	controller := stream.NewController(ctx, w.Invalidate)
	expl := explorer.NewExplorer(w)
	ui := NewUI(ctx, g, feed, controller, expl)
	startSources(ctx, g, feed, input, waves)
	ui.Start()

	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
			controller.Sweep()
		}
	}
}
