package polygraph

import (
	"fmt"
	"image/color"
	"sync"
	"time"
)

// Sample is one value observed at a millisecond unix timestamp.
type Sample struct {
	Value     float64
	Timestamp int64
}

// SeriesOptions configures a series at registration. Zero fields take
// their defaults: opaque black, line mode, line width 1.
type SeriesOptions struct {
	Color color.NRGBA
	// Name is stored for display purposes but is not rendered.
	Name      string
	DotsOnly  bool
	LineWidth float32
}

// Series represents one pen in the graph.
type Series struct {
	ID        string
	Color     color.NRGBA
	Name      string
	Line      bool
	LineWidth float32
	samples   []Sample
}

// Len returns the number of stored samples.
func (s *Series) Len() int {
	return len(s.samples)
}

// At returns the i'th oldest sample.
func (s *Series) At(i int) Sample {
	return s.samples[i]
}

// SeriesStore owns the registered series in registration order. All methods
// are safe for concurrent use; producers may append from any goroutine while
// a frame is being rendered.
type SeriesStore struct {
	lock    sync.RWMutex
	order   []*Series
	byID    map[string]*Series
	nowFunc func() time.Time
}

func NewSeriesStore() *SeriesStore {
	return &SeriesStore{
		byID:    make(map[string]*Series),
		nowFunc: time.Now,
	}
}

// Register creates an empty series. Reusing an id leaves the existing series
// untouched, logs a diagnostic and returns ErrDuplicateRegistration.
func (s *SeriesStore) Register(id string, opts SeriesOptions) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.byID[id]; ok {
		err := fmt.Errorf("series %q: %w", id, ErrDuplicateRegistration)
		Logger.Printf("failed registering series: %v", err)
		return err
	}
	if opts.Color == (color.NRGBA{}) {
		opts.Color = color.NRGBA{A: 0xff}
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	series := &Series{
		ID:        id,
		Color:     opts.Color,
		Name:      opts.Name,
		Line:      !opts.DotsOnly,
		LineWidth: opts.LineWidth,
	}
	s.byID[id] = series
	s.order = append(s.order, series)
	return nil
}

// Append adds value to the series stamped with the current wall-clock time.
func (s *SeriesStore) Append(id string, value float64) bool {
	return s.AppendAt(id, value, s.nowFunc().UnixMilli())
}

// AppendAt adds value to the series at timestamp (milliseconds). Time must
// go forward: samples at or before the newest stored timestamp are dropped
// and the method returns false. Unknown ids are ignored.
func (s *SeriesStore) AppendAt(id string, value float64, timestamp int64) (inserted bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	series, ok := s.byID[id]
	if !ok {
		return false
	}
	if n := len(series.samples); n > 0 && series.samples[n-1].Timestamp >= timestamp {
		return false
	}
	series.samples = append(series.samples, Sample{Value: value, Timestamp: timestamp})
	return true
}

// Len returns the number of registered series.
func (s *SeriesStore) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.order)
}

// IDs returns the registered ids in registration order.
func (s *SeriesStore) IDs() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	ids := make([]string, len(s.order))
	for i, series := range s.order {
		ids[i] = series.ID
	}
	return ids
}

// Samples returns a copy of the history of id, oldest first.
func (s *SeriesStore) Samples(id string) []Sample {
	s.lock.RLock()
	defer s.lock.RUnlock()
	series, ok := s.byID[id]
	if !ok {
		return nil
	}
	out := make([]Sample, len(series.samples))
	copy(out, series.samples)
	return out
}

// Latest returns the newest sample of id.
func (s *SeriesStore) Latest(id string) (Sample, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	series, ok := s.byID[id]
	if !ok || len(series.samples) == 0 {
		return Sample{}, false
	}
	return series.samples[len(series.samples)-1], true
}

// View invokes f with every series in registration order while holding the
// read lock. f must not retain the series or call back into the store.
func (s *SeriesStore) View(f func(series []*Series)) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	f(s.order)
}
