// Package rapl reads the Intel RAPL energy counters exposed by the Linux
// powercap framework.
package rapl

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/polygraph/sensors"
)

// Root is the sysfs directory searched for energy counters.
var Root = "/sys/devices/virtual/powercap/intel-rapl"

type counter struct {
	path       string
	deviceName string
	file       *os.File
	lastValue  int64
	maxRange   int64
	primed     bool
}

func (c *counter) Name() string {
	return "rapl " + c.deviceName
}

func (c *counter) Unit() sensors.Unit {
	return sensors.Joules
}

// Read returns the energy consumed since the previous Read. The first call
// returns zero.
func (c *counter) Read() (float64, error) {
	var buf [256]byte
	if _, err := c.file.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed rewinding %s: %w", c.path, err)
	}
	n, err := c.file.Read(buf[:])
	if err != nil {
		return 0, fmt.Errorf("failed reading %s: %w", c.path, err)
	}
	asInt, err := strconv.ParseInt(strings.TrimSpace(string(buf[:n])), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed parsing %s (%s): %w", c.path, string(buf[:n]), err)
	}
	if !c.primed {
		c.primed = true
		c.lastValue = asInt
		return 0, nil
	}
	increment := asInt - c.lastValue
	if asInt < c.lastValue {
		// Handle when the counter wraps back past zero.
		increment += c.maxRange
	}
	c.lastValue = asInt
	return float64(increment) * sensors.MicroToUnprefixed, nil
}

func (c *counter) Close() error {
	return c.file.Close()
}

// FindRAPL opens every energy_uj counter below Root. A missing Root is not an
// error; it yields no sensors.
func FindRAPL() ([]sensors.Sensor, error) {
	found := []sensors.Sensor{}
	if _, err := os.Stat(Root); errors.Is(err, fs.ErrNotExist) {
		return found, nil
	}
	if err := filepath.WalkDir(
		Root,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Printf("failed visiting %q: %v", path, err)
				return nil
			}
			if d.Name() != "energy_uj" {
				return nil
			}
			file, err := os.Open(path)
			if err != nil {
				log.Printf("failed opening file %q: %v", path, err)
				return nil
			}
			name, err := os.ReadFile(filepath.Join(filepath.Dir(path), "name"))
			if err != nil {
				log.Printf("failed resolving name for %q: %v", path, err)
			}
			maxRange, err := os.ReadFile(filepath.Join(filepath.Dir(path), "max_energy_range_uj"))
			if err != nil {
				log.Printf("failed resolving max energy range for %q: %v", path, err)
			}
			maxRangeInt, err := strconv.ParseInt(strings.TrimSpace(string(maxRange)), 10, 64)
			if err != nil {
				log.Printf("failed parsing max energy range for %q %q: %v", path, string(maxRange), err)
			}
			found = append(found, &counter{
				path:       path,
				deviceName: strings.TrimSpace(string(name)),
				file:       file,
				maxRange:   maxRangeInt,
			})
			return nil
		},
	); err != nil {
		return nil, fmt.Errorf("failed traversing RAPL: %w", err)
	}
	return found, nil
}
