package polygraph

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	for _, tc := range []struct {
		input     string
		expected  color.NRGBA
		expectErr bool
	}{
		{input: "#fff", expected: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{input: "#0f08", expected: color.NRGBA{G: 0xff, A: 0x88}},
		{input: "#a4633a", expected: Palette[0]},
		{input: " #00000080 ", expected: color.NRGBA{A: 0x80}},
		{input: "fff", expectErr: true},
		{input: "#ffff0", expectErr: true},
		{input: "#zzzzzz", expectErr: true},
	} {
		c, err := ParseColor(tc.input)
		if tc.expectErr {
			if err == nil {
				t.Errorf("%q: expected error, got %v", tc.input, c)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: expected no error, got %v", tc.input, err)
			continue
		}
		if c != tc.expected {
			t.Errorf("%q: expected %v, got %v", tc.input, tc.expected, c)
		}
	}
}
