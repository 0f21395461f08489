package polygraph

import (
	"fmt"
	"strconv"
	"strings"
)

// GuideSpec is a guide id together with its options.
type GuideSpec struct {
	ID   string
	Opts GuideOptions
}

// GuideFlags collects -guide command line values of the form
// name=min[:height][@#color]. It implements flag.Value.
type GuideFlags []GuideSpec

func (g *GuideFlags) String() string {
	parts := make([]string, len(*g))
	for i, spec := range *g {
		parts[i] = spec.ID
	}
	return strings.Join(parts, ",")
}

func (g *GuideFlags) Set(value string) error {
	spec, err := ParseGuide(value)
	if err != nil {
		return err
	}
	*g = append(*g, spec)
	return nil
}

// Register adds every collected guide to store. Invalid guides, such as
// those without a min, are reported by the store and skipped.
func (g GuideFlags) Register(store *GuideStore) {
	for _, spec := range g {
		_ = store.Register(spec.ID, spec.Opts)
	}
}

// ParseGuide parses name=min[:height][@#color]. An empty min is allowed here
// and left for GuideStore.Register to reject.
func ParseGuide(value string) (GuideSpec, error) {
	id, rest, ok := strings.Cut(value, "=")
	if !ok || id == "" {
		return GuideSpec{}, fmt.Errorf("guide %q: expected name=min[:height][@color]", value)
	}
	spec := GuideSpec{ID: id, Opts: GuideOptions{Name: id}}
	body, colorText, hasColor := strings.Cut(rest, "@")
	if hasColor {
		c, err := ParseColor(colorText)
		if err != nil {
			return GuideSpec{}, fmt.Errorf("guide %q: %w", value, err)
		}
		spec.Opts.Color = c
	}
	minText, heightText, hasHeight := strings.Cut(body, ":")
	if minText != "" {
		v, err := strconv.ParseFloat(minText, 64)
		if err != nil {
			return GuideSpec{}, fmt.Errorf("guide %q: failed parsing min: %w", id, err)
		}
		spec.Opts.Min = Float(v)
	}
	if hasHeight {
		height, err := strconv.ParseFloat(heightText, 64)
		if err != nil {
			return GuideSpec{}, fmt.Errorf("guide %q: failed parsing height: %w", id, err)
		}
		spec.Opts.Height = Float(height)
	}
	return spec, nil
}
