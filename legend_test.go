package main

import (
	"testing"

	"git.sr.ht/~whereswaldon/polygraph/polygraph"
)

func TestLegendRows(t *testing.T) {
	series := polygraph.NewSeriesStore()
	series.Register("cpu0", polygraph.SeriesOptions{Name: "CPU package"})
	series.Register("fan", polygraph.SeriesOptions{DotsOnly: true})
	series.AppendAt("cpu0", 1.5, 1000)
	series.AppendAt("cpu0", 2.5, 2000)

	var l Legend
	l.update(series)
	if len(l.rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(l.rows))
	}
	cpu, fan := l.rows[0], l.rows[1]
	if cpu.id != "cpu0" {
		t.Errorf("expected the series id instead of its display name, got %q", cpu.id)
	}
	if cpu.samples != 2 || cpu.latest.Value != 2.5 {
		t.Errorf("expected 2 samples ending at 2.5, got %d ending at %v", cpu.samples, cpu.latest.Value)
	}
	if cpu.dots || !fan.dots {
		t.Errorf("expected only fan in dot mode")
	}
	if fan.samples != 0 {
		t.Errorf("expected fan to be empty, got %d samples", fan.samples)
	}

	// Rows are rebuilt, not appended, on every layout.
	l.update(series)
	if len(l.rows) != 2 {
		t.Errorf("expected rows to be rebuilt, got %d", len(l.rows))
	}
}
