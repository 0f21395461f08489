package polygraph

import (
	"errors"
	"flag"
	"io"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
	cfg := DefaultConfig()
	cfg.Max = cfg.Min
	if err := cfg.Validate(); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("expected ErrEmptyRange, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.Resolution = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("expected ErrInvalidResolution, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.TopMargin = -1
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected negative margin to be rejected")
	}
	// An inverted range is allowed and flips the graph.
	cfg = DefaultConfig()
	cfg.Min, cfg.Max = 1, -1
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected inverted range to be valid, got %v", err)
	}
}

func TestConfigRegisterFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	for _, name := range []string{"min", "max", "top-margin", "bottom-margin", "resolution"} {
		if fs.Lookup(name) == nil {
			t.Errorf("expected flag -%s to be defined", name)
		}
	}
	if def := fs.Lookup("top-margin").DefValue; def != "8" {
		t.Errorf("expected top-margin default %q, got %q", "8", def)
	}
	err := fs.Parse([]string{
		"-min", "0", "-max", "10",
		"-top-margin", "12", "-bottom-margin", "3.5",
		"-resolution", "20",
	})
	if err != nil {
		t.Fatalf("expected flags to parse, got %v", err)
	}
	expected := Config{
		Range:      Range{Min: 0, Max: 10, TopMargin: 12, BottomMargin: 3.5},
		Resolution: 20,
		Running:    true,
	}
	if cfg != expected {
		t.Errorf("expected %+v, got %+v", expected, cfg)
	}

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.RegisterFlags(fs)
	if err := fs.Parse([]string{"-bottom-margin", "wide"}); err == nil {
		t.Errorf("expected a non-numeric margin to be rejected")
	}
}
