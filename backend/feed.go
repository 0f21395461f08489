package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"git.sr.ht/~whereswaldon/polygraph/polygraph"
	"github.com/fsnotify/fsnotify"
)

// Status summarizes the progress of a feed.
type Status struct {
	// Source names the input currently being read.
	Source  string
	Series  int
	Samples int64
	// Dropped counts samples rejected because their timestamp did not advance.
	Dropped int64
	Err     error
}

// Feed parses CSV sample traces and appends them to a graph. The first
// column of every record is a millisecond unix timestamp; each further column
// is a series named by its heading. Empty cells are skipped.
type Feed struct {
	graph *polygraph.Graph

	lock    sync.Mutex
	status  Status
	nextSub int
	subs    map[int]chan Status
}

func NewFeed(graph *polygraph.Graph) *Feed {
	return &Feed{
		graph: graph,
		subs:  make(map[int]chan Status),
	}
}

// Status streams the feed's status. The current status is delivered
// immediately; intermediate updates may be skipped by slow readers. The
// channel is closed when ctx is done.
func (f *Feed) Status(ctx context.Context) <-chan Status {
	out := make(chan Status, 1)
	f.lock.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = out
	out <- f.status
	f.lock.Unlock()
	go func() {
		<-ctx.Done()
		f.lock.Lock()
		defer f.lock.Unlock()
		delete(f.subs, id)
		close(out)
	}()
	return out
}

func (f *Feed) publish(update func(*Status)) {
	f.lock.Lock()
	defer f.lock.Unlock()
	update(&f.status)
	for _, ch := range f.subs {
		// Replace any unread value with the newest one.
		select {
		case <-ch:
		default:
		}
		ch <- f.status
	}
}

// Run reads records from r until it is exhausted or ctx is cancelled.
func (f *Feed) Run(ctx context.Context, name string, r io.Reader) error {
	return f.ingest(ctx, name, r, func() error { return io.EOF })
}

// Follow reads the file at path and keeps reading as it grows, until ctx is
// cancelled. Each call watches its file independently, so several files may
// be followed at once.
func (f *Feed) Follow(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed opening %q: %w", path, err)
	}
	defer file.Close()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed creating file watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed watching %q: %w", path, err)
	}
	return f.ingest(ctx, path, file, func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev, ok := <-watcher.Events:
				if !ok {
					return io.EOF
				}
				if ev.Name == path && ev.Has(fsnotify.Write) {
					return nil
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return io.EOF
				}
				log.Printf("failed watching %q: %v", path, err)
			}
		}
	})
}

// ingest parses r. When r reports io.EOF, waitMore decides whether to keep
// reading (nil) or stop (any error; io.EOF stops cleanly).
func (f *Feed) ingest(ctx context.Context, name string, r io.Reader, waitMore func() error) (err error) {
	f.publish(func(s *Status) {
		s.Source = name
		s.Err = nil
	})
	defer func() {
		if err != nil {
			f.publish(func(s *Status) { s.Err = err })
		}
	}()
	csvReader := csv.NewReader(NewLineReader(r))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	read := func() ([]string, error) {
		for {
			rec, err := csvReader.Read()
			if !errors.Is(err, io.EOF) {
				return rec, err
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := waitMore(); err != nil {
				return nil, err
			}
		}
	}
	headings, err := read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed reading CSV headings: %w", err)
	}
	ids := f.registerHeadings(headings)
	for {
		rec, err := read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("could not read sample data: %w", err)
		}
		f.insertRecord(ids, rec)
	}
}

// registerHeadings registers a series for every named column after the
// timestamp and returns the series id of each column ("" for skipped ones).
func (f *Feed) registerHeadings(headings []string) []string {
	ids := make([]string, len(headings))
	for i, heading := range headings {
		if i == 0 {
			continue
		}
		id := strings.TrimSpace(heading)
		if id == "" {
			continue
		}
		ids[i] = id
		// A series already registered by another source keeps its options
		// and is fed by this one too.
		_ = f.graph.RegisterSeries(id, SeriesOptionsFor(id, f.graph.Series.Len()))
	}
	f.publish(func(s *Status) { s.Series = f.graph.Series.Len() })
	return ids
}

func (f *Feed) insertRecord(ids []string, rec []string) {
	ts, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
	if err != nil {
		log.Printf("failed parsing timestamp: %v", err)
		return
	}
	var inserted, dropped int64
	for i := 1; i < len(rec) && i < len(ids); i++ {
		if ids[i] == "" {
			continue
		}
		cell := strings.TrimSpace(rec[i])
		if len(cell) < 1 {
			// Skip null cells.
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			log.Printf("failed parsing data[%d]=%q: %v", i, cell, err)
			continue
		}
		if f.graph.AppendSampleAt(ids[i], v, ts) {
			inserted++
		} else {
			dropped++
		}
	}
	f.publish(func(s *Status) {
		s.Samples += inserted
		s.Dropped += dropped
	})
}

// SeriesOptionsFor derives display options from a column heading. A heading
// ending in "[dots]" is drawn as dots; colors cycle through the palette.
func SeriesOptionsFor(heading string, index int) polygraph.SeriesOptions {
	opts := polygraph.SeriesOptions{
		Name:  heading,
		Color: polygraph.Palette[index%len(polygraph.Palette)],
	}
	if strings.HasSuffix(heading, "[dots]") {
		opts.DotsOnly = true
		opts.Name = strings.TrimSpace(strings.TrimSuffix(heading, "[dots]"))
	}
	return opts
}
