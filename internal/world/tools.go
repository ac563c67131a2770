package world

import (
	"fmt"

	"dotsim/internal/mat"
)

// Tool operations act on the inclusive square of side 2*radius+1 around
// (x, y), clipped to the grid. They do not refresh phase or weight.

// UseBrush paints material m at the given temperature.
func (w *World) UseBrush(m mat.Mat, temperature float64, x, y, radius int) {
	checkMat(m)
	w.each(x, y, radius, func(c *Cell) {
		c.Mat = m
		c.Temperature = temperature
	})
}

// UseSpawner turns the region into spawners of m.
func (w *World) UseSpawner(m mat.Mat, x, y, radius int) {
	checkMat(m)
	w.each(x, y, radius, func(c *Cell) {
		c.Spawner = true
		c.SpawnerMat = m
	})
}

// UseEraser empties the region, zeroes its temperature and drops spawners.
func (w *World) UseEraser(x, y, radius int) {
	w.each(x, y, radius, func(c *Cell) {
		c.Mat = mat.None
		c.Phase = mat.Static
		c.Temperature = 0
		c.Spawner = false
	})
}

// UseHeater raises the temperature by delta.
func (w *World) UseHeater(delta float64, x, y, radius int) {
	w.each(x, y, radius, func(c *Cell) {
		c.Temperature += delta
	})
}

// UseCooler lowers the temperature by delta, never below zero.
func (w *World) UseCooler(delta float64, x, y, radius int) {
	w.each(x, y, radius, func(c *Cell) {
		c.Temperature -= delta
		if c.Temperature < 0 {
			c.Temperature = 0
		}
	})
}

func (w *World) each(xc, yc, radius int, fn func(*Cell)) {
	w.index(xc, yc)
	if radius < 0 {
		panic(fmt.Sprintf("world: negative tool radius %d", radius))
	}
	x1, x2 := max(xc-radius, 0), min(xc+radius, w.W-1)
	y1, y2 := max(yc-radius, 0), min(yc+radius, w.H-1)
	for y := y1; y <= y2; y++ {
		row := y * w.W
		for x := x1; x <= x2; x++ {
			fn(&w.cells[row+x])
		}
	}
}

func checkMat(m mat.Mat) {
	if !m.Valid() {
		panic(fmt.Sprintf("world: invalid material id %d", m))
	}
}
