package backend

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.sr.ht/~whereswaldon/polygraph/polygraph"
)

func newTestFeed(t *testing.T) (*polygraph.Graph, *Feed) {
	t.Helper()
	polygraph.Logger = log.New(io.Discard, "", 0)
	g, err := polygraph.New(polygraph.DefaultConfig())
	if err != nil {
		t.Fatalf("failed creating graph: %v", err)
	}
	return g, NewFeed(g)
}

func TestFeedRun(t *testing.T) {
	g, f := newTestFeed(t)
	input := strings.Join([]string{
		"timestamp (ms), temp, pressure [dots],",
		"1000, 1, 10,",
		"2000, 2, ,",
		"1500, 0.5, 11,",
		"bogus, 3, 3,",
		"3000, nan-ish, 12,",
		"",
	}, "\n")
	if err := f.Run(context.Background(), "test", strings.NewReader(input)); err != nil {
		t.Fatalf("expected run to succeed, got %v", err)
	}
	ids := g.Series.IDs()
	if len(ids) != 2 || ids[0] != "temp" || ids[1] != "pressure [dots]" {
		t.Fatalf("expected series [temp pressure [dots]], got %v", ids)
	}
	temp := g.Series.Samples("temp")
	expected := []polygraph.Sample{{Value: 1, Timestamp: 1000}, {Value: 2, Timestamp: 2000}}
	if len(temp) != len(expected) {
		t.Fatalf("expected %d temp samples, got %v", len(expected), temp)
	}
	for i := range expected {
		if temp[i] != expected[i] {
			t.Errorf("[%d] expected %v, got %v", i, expected[i], temp[i])
		}
	}
	pressure := g.Series.Samples("pressure [dots]")
	if len(pressure) != 3 {
		t.Errorf("expected 3 pressure samples, got %v", pressure)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	status := <-f.Status(ctx)
	if status.Source != "test" {
		t.Errorf("expected source %q, got %q", "test", status.Source)
	}
	if status.Series != 2 {
		t.Errorf("expected 2 series, got %d", status.Series)
	}
	if status.Samples != 5 {
		t.Errorf("expected 5 samples, got %d", status.Samples)
	}
	if status.Dropped != 1 {
		t.Errorf("expected 1 dropped sample, got %d", status.Dropped)
	}
}

func TestFeedEmptyInput(t *testing.T) {
	g, f := newTestFeed(t)
	if err := f.Run(context.Background(), "empty", strings.NewReader("")); err != nil {
		t.Errorf("expected empty input to be fine, got %v", err)
	}
	if g.Series.Len() != 0 {
		t.Errorf("expected no series, got %d", g.Series.Len())
	}
}

func TestSeriesOptionsFor(t *testing.T) {
	opts := SeriesOptionsFor("cpu [dots]", 1)
	if !opts.DotsOnly {
		t.Errorf("expected dots mode for heading with [dots] suffix")
	}
	if opts.Name != "cpu" {
		t.Errorf("expected name %q, got %q", "cpu", opts.Name)
	}
	if opts.Color != polygraph.Palette[1] {
		t.Errorf("expected palette color %v, got %v", polygraph.Palette[1], opts.Color)
	}
	opts = SeriesOptionsFor("cpu", len(polygraph.Palette))
	if opts.DotsOnly {
		t.Errorf("expected line mode without suffix")
	}
	if opts.Color != polygraph.Palette[0] {
		t.Errorf("expected palette to wrap around")
	}
}

func TestFeedFollow(t *testing.T) {
	g, f := newTestFeed(t)
	path := filepath.Join(t.TempDir(), "trace.csv")
	if err := os.WriteFile(path, []byte("timestamp (ms), load\n1000, 1\n"), 0o644); err != nil {
		t.Fatalf("failed writing trace: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- f.Follow(ctx, path)
	}()
	waitFor := func(n int) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for len(g.Series.Samples("load")) < n {
			if time.Now().After(deadline) {
				t.Fatalf("timed out waiting for %d samples, have %v", n, g.Series.Samples("load"))
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
	waitFor(1)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("failed reopening trace: %v", err)
	}
	if _, err := file.WriteString("2000, 2\n"); err != nil {
		t.Fatalf("failed appending to trace: %v", err)
	}
	file.Close()
	waitFor(2)
	cancel()
	select {
	case err := <-done:
		if err == nil {
			t.Errorf("expected follow to report cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("follow did not stop after cancellation")
	}
}

func TestFeedFollowTwoFiles(t *testing.T) {
	g, f := newTestFeed(t)
	dir := t.TempDir()
	paths := map[string]string{
		"a": filepath.Join(dir, "a.csv"),
		"b": filepath.Join(dir, "b.csv"),
	}
	for id, path := range paths {
		if err := os.WriteFile(path, []byte("timestamp (ms), "+id+"\n"), 0o644); err != nil {
			t.Fatalf("failed writing %s: %v", path, err)
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, path := range paths {
		go f.Follow(ctx, path)
	}
	waitFor := func(id string, n int) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for len(g.Series.Samples(id)) < n {
			if time.Now().After(deadline) {
				t.Fatalf("series %s: timed out waiting for %d samples, have %d", id, n, len(g.Series.Samples(id)))
			}
			time.Sleep(5 * time.Millisecond)
		}
	}
	for _, id := range []string{"a", "b"} {
		deadline := time.Now().Add(5 * time.Second)
		for !contains(g.Series.IDs(), id) {
			if time.Now().After(deadline) {
				t.Fatalf("series %s was never registered", id)
			}
			time.Sleep(5 * time.Millisecond)
		}
	}
	// Only a grows; every write must reach the graph without waiting for
	// another one, whichever follower sees events first.
	file, err := os.OpenFile(paths["a"], os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("failed reopening trace: %v", err)
	}
	defer file.Close()
	for i := 1; i <= 10; i++ {
		if _, err := fmt.Fprintf(file, "%d, %d\n", i*1000, i); err != nil {
			t.Fatalf("failed appending to trace: %v", err)
		}
		waitFor("a", i)
	}
	if n := len(g.Series.Samples("b")); n != 0 {
		t.Errorf("expected b to stay empty, got %d samples", n)
	}
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
