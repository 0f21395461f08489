package polygraph

import (
	"fmt"
	"image/color"
	"sync"
)

// DefaultGuideColor is used for guides registered without a color.
var DefaultGuideColor = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}

// GuideOptions configures a guide. Min is required. When Height is set the
// guide is a band from Min to Min+Height, otherwise a line at Min.
type GuideOptions struct {
	Color  color.NRGBA
	Name   string
	Min    *float64
	Height *float64
}

// Guide is a static horizontal threshold line or band.
type Guide struct {
	ID     string
	Color  color.NRGBA
	Name   string
	Min    float64
	Height float64
	Band   bool
}

// GuideStore owns the registered guides in registration order.
type GuideStore struct {
	lock  sync.RWMutex
	order []Guide
	index map[string]int
}

func NewGuideStore() *GuideStore {
	return &GuideStore{index: make(map[string]int)}
}

// Register adds a guide. Duplicate ids and missing minimums are logged and
// leave the store unchanged.
func (g *GuideStore) Register(id string, opts GuideOptions) error {
	g.lock.Lock()
	defer g.lock.Unlock()
	if _, ok := g.index[id]; ok {
		err := fmt.Errorf("guide %q: %w", id, ErrDuplicateRegistration)
		Logger.Printf("failed registering guide: %v", err)
		return err
	}
	if opts.Min == nil {
		err := fmt.Errorf("guide %q: %w", id, ErrMissingMin)
		Logger.Printf("failed registering guide: %v", err)
		return err
	}
	if opts.Color == (color.NRGBA{}) {
		opts.Color = DefaultGuideColor
	}
	guide := Guide{
		ID:    id,
		Color: opts.Color,
		Name:  opts.Name,
		Min:   *opts.Min,
	}
	if opts.Height != nil {
		guide.Band = true
		guide.Height = *opts.Height
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, guide)
	return nil
}

func (g *GuideStore) Len() int {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return len(g.order)
}

// IDs returns the registered ids in registration order.
func (g *GuideStore) IDs() []string {
	g.lock.RLock()
	defer g.lock.RUnlock()
	ids := make([]string, len(g.order))
	for i, guide := range g.order {
		ids[i] = guide.ID
	}
	return ids
}

// Guide looks up a guide by id.
func (g *GuideStore) Guide(id string) (Guide, bool) {
	g.lock.RLock()
	defer g.lock.RUnlock()
	i, ok := g.index[id]
	if !ok {
		return Guide{}, false
	}
	return g.order[i], true
}

// View invokes f with the guides in registration order under the read lock.
func (g *GuideStore) View(f func(guides []Guide)) {
	g.lock.RLock()
	defer g.lock.RUnlock()
	f(g.order)
}

// Float returns a pointer to v, for populating optional option fields.
func Float(v float64) *float64 {
	return &v
}
