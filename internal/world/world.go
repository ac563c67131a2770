// Package world holds the grid of cells and evolves it one tick at a time.
package world

import (
	"errors"
	"fmt"

	"dotsim/internal/mat"
)

// MaxCells bounds the number of cells a World may allocate.
const MaxCells = 1 << 26

// ErrAllocation reports that the grid storage could not be obtained.
var ErrAllocation = errors.New("world: cannot allocate grid")

// Cell is the full state of one grid position.
type Cell struct {
	Mat         mat.Mat
	Temperature float64
	Oxidation   float64

	// Phase and Weight are caches refreshed by Update.
	Phase  mat.Phase
	Weight float64

	Spawner    bool
	SpawnerMat mat.Mat
}

// Direction is the horizontal sweep order of interior rows.
type Direction uint8

const (
	ToRight Direction = iota
	ToLeft
)

func (d Direction) String() string {
	if d == ToLeft {
		return "left"
	}
	return "right"
}

// World stores a W×H grid of cells in row-major order.
type World struct {
	W, H int

	cells []Cell
	sweep Direction
}

// New allocates a World whose cells are empty and at the ambient temperature.
func New(w, h int, ambient float64) (*World, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrAllocation, w, h)
	}
	if w > MaxCells/h {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrAllocation, w, h, MaxCells)
	}
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i].Temperature = ambient
	}
	return &World{W: w, H: h, cells: cells}, nil
}

// Destroy releases the grid storage. Calling it twice panics.
func (w *World) Destroy() {
	if w.cells == nil {
		panic("world: Destroy called on a destroyed world")
	}
	w.cells = nil
}

// Alive reports whether Destroy has not been called yet.
func (w *World) Alive() bool { return w.cells != nil }

// Size returns the grid dimensions.
func (w *World) Size() (int, int) { return w.W, w.H }

// Direction reports the sweep order the next Simulate uses for interior rows.
func (w *World) Direction() Direction { return w.sweep }

// InBounds reports whether (x, y) addresses a cell.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.W && y >= 0 && y < w.H
}

func (w *World) index(x, y int) int {
	if w.cells == nil {
		panic("world: use of destroyed world")
	}
	if !w.InBounds(x, y) {
		panic(fmt.Sprintf("world: coordinate (%d,%d) outside %dx%d grid", x, y, w.W, w.H))
	}
	return y*w.W + x
}

func (w *World) at(x, y int) *Cell { return &w.cells[w.index(x, y)] }

// Cell returns a copy of the cell at (x, y).
func (w *World) Cell(x, y int) Cell { return *w.at(x, y) }

// Mat returns the material at (x, y).
func (w *World) Mat(x, y int) mat.Mat { return w.at(x, y).Mat }

// Temperature returns the temperature at (x, y).
func (w *World) Temperature(x, y int) float64 { return w.at(x, y).Temperature }

// Phase returns the cached phase at (x, y).
func (w *World) Phase(x, y int) mat.Phase { return w.at(x, y).Phase }

// Weight returns the cached weight at (x, y).
func (w *World) Weight(x, y int) float64 { return w.at(x, y).Weight }

// SetSpawner flags (x, y) to emit m on every Update.
func (w *World) SetSpawner(x, y int, m mat.Mat) {
	c := w.at(x, y)
	c.Spawner = true
	c.SpawnerMat = m
}

// ClearSpawner removes the spawner flag at (x, y).
func (w *World) ClearSpawner(x, y int) { w.at(x, y).Spawner = false }

// Cells exposes the backing buffer in row-major order. The slice is only
// valid while the world is alive.
func (w *World) Cells() []Cell {
	if w.cells == nil {
		panic("world: use of destroyed world")
	}
	return w.cells
}

// Materials copies the material ids into dst in row-major order, growing it
// when needed.
func (w *World) Materials(dst []mat.Mat) []mat.Mat {
	cells := w.Cells()
	if cap(dst) < len(cells) {
		dst = make([]mat.Mat, len(cells))
	}
	dst = dst[:len(cells)]
	for i := range cells {
		dst[i] = cells[i].Mat
	}
	return dst
}
