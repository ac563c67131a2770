package dots

import (
	"math/rand/v2"

	"dotsim/internal/mat"
	"dotsim/internal/world"
)

// DemoRockChance is the odds of an iron speck on the floor row band.
const DemoRockChance = 0.15

// DemoLayout drops a water block over a sand block and scatters iron on the
// bottom rows.
func DemoLayout(w *world.World, rng *rand.Rand) {
	fill := func(m mat.Mat, x0, y0, cw, ch int) {
		for x := x0; x < x0+cw && x < w.W; x++ {
			for y := y0; y < y0+ch && y < w.H; y++ {
				w.UseBrush(m, w.Temperature(x, y), x, y, 0)
			}
		}
	}

	// Water: a quarter of the width, the top third of the height.
	fill(mat.Water, w.W/3, 0, max(1, w.W/4), max(1, w.H/3))
	// Sand: a 10x10 block two thirds of the way down.
	fill(mat.Sand, w.W/3, w.H/3*2, 10, 10)

	floor := max(0, w.H-2)
	for x := 0; x < w.W; x++ {
		for y := floor; y < w.H; y++ {
			if w.Mat(x, y) == mat.None && rng.Float64() < DemoRockChance {
				w.UseBrush(mat.Iron, w.Temperature(x, y), x, y, 0)
			}
		}
	}
}
