// Command combust-sweep measures how many ticks each reactive material takes
// to burn next to the oxidizer across a range of start temperatures.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"dotsim/internal/mat"
	"dotsim/internal/sims/dots"
)

type floatList []float64

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return err
		}
		*l = append(*l, v)
	}
	return nil
}

func main() {
	logger := log.New(os.Stderr, "[combust-sweep] ", log.LstdFlags|log.Lmicroseconds)

	maxTicks := flag.Int("ticks", 200, "give up on a run after this many ticks")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel runs")
	fuelNames := flag.String("fuel", "", "comma separated materials, default every reactive one")
	var temps floatList
	flag.Var(&temps, "temp", "start temperatures in kelvin, comma separated (repeatable)")
	flag.Parse()

	if len(temps) == 0 {
		temps = floatList{500, 850, 900, 1000, 1500, 2500}
	}
	fuels := dots.ReactiveMaterials()
	if *fuelNames != "" {
		fuels = fuels[:0]
		for _, name := range strings.Split(*fuelNames, ",") {
			m, ok := mat.Parse(name)
			if !ok || !m.Reactive() {
				logger.Fatalf("%q is not a reactive material", name)
			}
			fuels = append(fuels, m)
		}
	}

	results := dots.CombustionSweep(fuels, temps, *maxTicks, *workers)
	fmt.Printf("%-16s %10s %8s %10s %s\n", "fuel", "start K", "ticks", "peak K", "products")
	for _, r := range results {
		ticks := "-"
		products := "-"
		if r.Reacted {
			ticks = strconv.Itoa(r.Ticks)
			products = r.Products[0].String() + " + " + r.Products[1].String()
		}
		fmt.Printf("%-16s %10.1f %8s %10.1f %s\n", r.Fuel, r.Temperature, ticks, r.PeakTemperature, products)
	}
}
