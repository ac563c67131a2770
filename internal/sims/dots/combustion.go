package dots

import (
	"sync"

	"dotsim/internal/mat"
	"dotsim/internal/world"
)

// CombustionResult summarises one fuel/oxidizer run.
type CombustionResult struct {
	Fuel        mat.Mat
	Temperature float64

	// Ticks until the fuel cell turned into its product; 0 if it never did.
	Ticks   int
	Reacted bool
	// PeakTemperature is the hottest the fuel cell got.
	PeakTemperature float64
	Products        [2]mat.Mat
}

// MeasureCombustion places fuel at temperature next to ambient oxygen on an
// iron floor and ticks until the fuel converts or maxTicks pass.
func MeasureCombustion(fuel mat.Mat, temperature float64, maxTicks int) CombustionResult {
	const ambient = 293.15
	res := CombustionResult{Fuel: fuel, Temperature: temperature, PeakTemperature: temperature}

	w, err := world.New(3, 3, ambient)
	if err != nil {
		panic(err)
	}
	defer w.Destroy()
	for x := 0; x < 3; x++ {
		w.UseBrush(mat.Iron, ambient, x, 2, 0)
	}
	w.UseBrush(fuel, temperature, 1, 1, 0)
	w.UseBrush(mat.Oxidizer, ambient, 2, 1, 0)

	for i := 1; i <= maxTicks; i++ {
		w.Update(ambient)
		w.Simulate()
		res.PeakTemperature = max(res.PeakTemperature, w.Temperature(1, 1))
		if w.Mat(1, 1) != fuel {
			res.Ticks = i
			res.Reacted = true
			res.Products = [2]mat.Mat{w.Mat(1, 1), w.Mat(2, 1)}
			break
		}
	}
	return res
}

// CombustionSweep measures every reactive fuel at every start temperature
// using up to workers goroutines. Results are ordered fuel-major.
func CombustionSweep(fuels []mat.Mat, temperatures []float64, maxTicks, workers int) []CombustionResult {
	if workers <= 0 {
		workers = 1
	}
	results := make([]CombustionResult, len(fuels)*len(temperatures))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for fi, fuel := range fuels {
		for ti, temp := range temperatures {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, f mat.Mat, t float64) {
				defer wg.Done()
				results[i] = MeasureCombustion(f, t, maxTicks)
				<-sem
			}(fi*len(temperatures)+ti, fuel, temp)
		}
	}
	wg.Wait()
	return results
}

// ReactiveMaterials lists the materials that burn with the oxidizer.
func ReactiveMaterials() []mat.Mat {
	var out []mat.Mat
	for _, m := range mat.All() {
		if m.Reactive() {
			out = append(out, m)
		}
	}
	return out
}
