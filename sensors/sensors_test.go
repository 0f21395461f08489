package sensors

import (
	"math"
	"testing"
	"time"
)

func TestWave(t *testing.T) {
	now := time.Unix(100, 0)
	w := &Wave{
		Label:     "wave",
		Amplitude: 2,
		Period:    4 * time.Second,
		Now:       func() time.Time { return now },
	}
	for _, tc := range []struct {
		elapsed  time.Duration
		expected float64
	}{
		{elapsed: 0, expected: 0},
		{elapsed: time.Second, expected: 2},
		{elapsed: 2 * time.Second, expected: 0},
		{elapsed: 3 * time.Second, expected: -2},
	} {
		now = time.Unix(100, 0).Add(tc.elapsed)
		v, err := w.Read()
		if err != nil {
			t.Fatalf("expected read to succeed, got %v", err)
		}
		if math.Abs(v-tc.expected) > 1e-9 {
			t.Errorf("at %v expected %f, got %f", tc.elapsed, tc.expected, v)
		}
	}
}

func TestUnitString(t *testing.T) {
	if Joules.String() != "J" || Watts.String() != "W" || Unknown.String() != "?" {
		t.Errorf("unexpected unit strings %s %s %s", Joules, Watts, Unknown)
	}
}
