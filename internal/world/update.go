package world

import "dotsim/internal/mat"

// Update applies spawners and refreshes every cell's phase and weight from
// its material and temperature. Call it before Simulate.
func (w *World) Update(spawnerTemperature float64) {
	cells := w.Cells()
	for i := range cells {
		c := &cells[i]
		if c.Spawner {
			c.Mat = c.SpawnerMat
			c.Temperature = spawnerTemperature
		}
		c.Mat, c.Phase, c.Weight = mat.Resolve(c.Mat, c.Temperature)
	}
}
