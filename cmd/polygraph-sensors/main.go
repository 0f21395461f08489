package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"time"

	"git.sr.ht/~whereswaldon/polygraph/rapl"
	"git.sr.ht/~whereswaldon/polygraph/sensors"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: emit a live CSV sample feed from sensors
Usage:

 %[1]s > file

OR

 %[1]s | polygraph -input -

Energy counters are reported as power in watts. Reading RAPL counters
typically requires root permissions.

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	dur := flag.Duration("sample-interval", 100*time.Millisecond, "Interval between reading new samples from sensors")
	outputName := flag.String("output", "-", "Output file for CSV sample data")
	waves := flag.Int("waves", 0, "Number of synthetic sine wave sensors to add")
	useRAPL := flag.Bool("rapl", true, "Read Intel RAPL energy counters when available")
	flag.Parse()

	var sensorList []sensors.Sensor
	if *useRAPL {
		raplSensors, err := rapl.FindRAPL()
		if err != nil {
			log.Printf("failed loading RAPL sensors: %v", err)
		}
		sensorList = append(sensorList, raplSensors...)
	}
	for i := 0; i < *waves; i++ {
		sensorList = append(sensorList, &sensors.Wave{
			Label:     fmt.Sprintf("wave %d", i),
			Amplitude: 1,
			Period:    time.Duration(i+2) * time.Second,
			Phase:     float64(i) * math.Pi / 4,
		})
	}
	if len(sensorList) < 1 {
		log.Fatalf("No sensors found. Pass -waves to generate synthetic data.")
	}

	var output io.WriteCloser
	if *outputName == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(*outputName)
		if err != nil {
			log.Fatalf("failed opening output file %q: %v", *outputName, err)
		}
		output = f
	}
	fmt.Fprintf(output, "timestamp (ms)")
	for _, s := range sensorList {
		unit := s.Unit()
		if unit == sensors.Joules {
			unit = sensors.Watts
		}
		fmt.Fprintf(output, ", %s (%s)", s.Name(), unit)
	}
	fmt.Fprintln(output)

	// Pre-read every sensor once to ensure that incremental sensors emit coherent first values.
	for _, chip := range sensorList {
		if _, err := chip.Read(); err != nil {
			log.Fatalf("failed reading value: %v", err)
		}
	}
	lastReadTime := time.Now()
	ticker := time.NewTicker(*dur)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer ticker.Stop()
	for {
		select {
		case <-sigChan:
			// We've gotten an interrupt; shut down.
			if err := output.Close(); err != nil {
				log.Printf("failed closing output: %v", err)
			}
			return
		case sampleTime := <-ticker.C:
			interval := sampleTime.Sub(lastReadTime).Seconds()
			lastReadTime = sampleTime
			fmt.Fprintf(output, "%d", sampleTime.UnixMilli())
			for _, chip := range sensorList {
				v, err := chip.Read()
				if err != nil {
					log.Fatalf("failed reading value: %v", err)
				}
				if chip.Unit() == sensors.Joules && interval > 0 {
					v /= interval
				}
				fmt.Fprintf(output, ", %f", v)
			}
			fmt.Fprintln(output)
		}
	}
}
