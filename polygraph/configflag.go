package polygraph

import (
	"flag"
	"strconv"
)

type float32Value float32

func (f *float32Value) String() string {
	return strconv.FormatFloat(float64(*f), 'g', -1, 32)
}

func (f *float32Value) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*f = float32Value(v)
	return nil
}

// RegisterFlags defines the range, margin and resolution flags on fs, with
// the current values of c as defaults. Parsing fs writes into c.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Float64Var(&c.Min, "min", c.Min, "Value drawn at the bottom margin")
	fs.Float64Var(&c.Max, "max", c.Max, "Value drawn at the top margin")
	fs.Var((*float32Value)(&c.TopMargin), "top-margin", "Pixels kept free above max")
	fs.Var((*float32Value)(&c.BottomMargin), "bottom-margin", "Pixels kept free below min")
	fs.Var((*float32Value)(&c.Resolution), "resolution", "Horizontal scroll speed in pixels per second")
}
