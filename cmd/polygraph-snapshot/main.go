package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"time"

	"git.sr.ht/~whereswaldon/polygraph/backend"
	"git.sr.ht/~whereswaldon/polygraph/polygraph"
	"git.sr.ht/~whereswaldon/polygraph/surface"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: render a CSV sample feed to a PNG
Usage:

 %[1]s -input trace.csv -output graph.png

OR, to capture a live feed after a few seconds of animation,

 polygraph-sensors -waves 3 | %[1]s -live -frames 120 -output graph.png

Without -live the feed is read to the end and the graph is rendered as of its
newest sample.

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	cfg := polygraph.DefaultConfig()
	var guides polygraph.GuideFlags
	cfg.RegisterFlags(flag.CommandLine)
	flag.Var(&guides, "guide", "Threshold guide as name=min[:height][@#color]; may be repeated")
	width := flag.Int("width", 800, "Image width in pixels")
	height := flag.Int("height", 400, "Image height in pixels")
	inputName := flag.String("input", "-", "CSV sample feed; - reads standard input")
	outputName := flag.String("output", "polygraph.png", "PNG file to write")
	live := flag.Bool("live", false, "Animate against the wall clock while the feed is read")
	frames := flag.Int("frames", 2, "Number of animation frames to run before capturing; the first only sizes the graph")
	interval := flag.Duration("frame-interval", time.Second/60, "Time between animation frames")
	dump := flag.Bool("dump", false, "Print the draw calls of the captured frame instead of writing a PNG")
	flag.Parse()
	*frames = max(*frames, 2)

	g, err := polygraph.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	guides.Register(g.Guides)
	feed := backend.NewFeed(g)

	input := os.Stdin
	if *inputName != "-" {
		input, err = os.Open(*inputName)
		if err != nil {
			log.Fatalf("failed opening input file %q: %v", *inputName, err)
		}
		defer input.Close()
	}

	size := image.Pt(*width, *height)
	if *dump {
		rec := surface.NewRecorder(size)
		capture(g, feed, input, rec, *live, *frames, *interval)
		rec.Calls = rec.LastFrame()
		if err := rec.Dump(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	img := surface.NewImage(size, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	capture(g, feed, input, img, *live, *frames, *interval)
	if err := writePNG(*outputName, img.Image()); err != nil {
		log.Fatal(err)
	}
}

// capture drives the animation for frames ticks and leaves the last frame in
// target.
func capture(g *polygraph.Graph, feed *backend.Feed, input *os.File, target polygraph.Target, live bool, frames int, interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if !live {
		if err := feed.Run(ctx, input.Name(), input); err != nil {
			log.Fatalf("could not read sample data: %v", err)
		}
		clock := polygraph.NewManualClock(time.UnixMilli(newest(g)))
		g.Start(clock, target)
		for i := 0; i < frames; i++ {
			clock.Advance(interval)
		}
		return
	}

	go func() {
		if err := feed.Run(ctx, input.Name(), input); err != nil {
			log.Printf("could not read sample data: %v", err)
		}
	}()
	clock := polygraph.NewTickerClock(interval)
	g.Start(clock, target)
	runCtx, stop := context.WithTimeout(ctx, time.Duration(frames)*interval+interval/2)
	defer stop()
	if err := clock.Run(runCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Printf("animation stopped: %v", err)
	}
}

// newest returns the timestamp of the most recent sample in any series.
func newest(g *polygraph.Graph) int64 {
	var ts int64
	for _, id := range g.Series.IDs() {
		if s, ok := g.Series.Latest(id); ok {
			ts = max(ts, s.Timestamp)
		}
	}
	return ts
}

func writePNG(name string, img image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed creating %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed closing %q: %w", name, closeErr)
		}
	}()
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed encoding PNG: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed writing %q: %w", name, err)
	}
	return nil
}
