package world

import "dotsim/internal/mat"

// Simulate advances the grid by one tick: thermal conduction, oxidation and
// gravity. Update must run first so cached weights match temperatures.
//
// Cells are visited in a fixed order and every visit sees the changes made
// by earlier visits in the same tick: the bottom row, then the interior rows
// from the bottom up, then the top row, then the left and right columns.
// Interior rows are swept in the World's current direction, which flips at
// the end of every call.
func (w *World) Simulate() {
	w.Cells()
	last := w.W - 1
	bottom := w.H - 1

	for x := 1; x < last; x++ {
		w.stepBottom(x, bottom)
	}

	for y := bottom - 1; y > 0; y-- {
		if w.sweep == ToRight {
			for x := 1; x < last; x++ {
				w.stepInterior(x, y)
			}
		} else {
			for x := last - 1; x > 0; x-- {
				w.stepInterior(x, y)
			}
		}
	}

	if bottom > 0 {
		for x := 1; x < last; x++ {
			w.stepTop(x, 0)
		}
	}

	for y := bottom - 1; y > 0; y-- {
		w.stepColumn(0, y, 1)
	}
	if last > 0 {
		for y := bottom - 1; y > 0; y-- {
			w.stepColumn(last, y, last-1)
		}
	}

	if w.sweep == ToRight {
		w.sweep = ToLeft
	} else {
		w.sweep = ToRight
	}
}

func (w *World) stepBottom(x, y int) {
	if w.at(x, y).Mat == mat.None {
		return
	}
	w.conduct(x, y, x-1, y)
	w.conduct(x, y, x+1, y)
	w.react(x, y, x-1, y)
	w.react(x, y, x+1, y)
	w.react(x, y, x, y-1)
}

func (w *World) stepInterior(x, y int) {
	if w.at(x, y).Mat == mat.None {
		return
	}
	w.conduct(x, y, x, y+1)
	w.conduct(x, y, x-1, y)
	w.conduct(x, y, x+1, y)
	w.react(x, y, x, y+1)
	w.react(x, y, x, y-1)
	w.react(x, y, x-1, y)
	w.react(x, y, x+1, y)
	w.fall(x, y)
}

func (w *World) stepTop(x, y int) {
	if w.at(x, y).Mat == mat.None {
		return
	}
	w.conduct(x, y, x, y+1)
	w.conduct(x, y, x-1, y)
	w.conduct(x, y, x+1, y)
	w.react(x, y, x, y+1)
	w.react(x, y, x-1, y)
	w.react(x, y, x+1, y)
}

// stepColumn visits an edge column cell; nx is its only horizontal neighbor.
func (w *World) stepColumn(x, y, nx int) {
	if w.at(x, y).Mat == mat.None {
		return
	}
	w.conduct(x, y, x, y+1)
	w.react(x, y, x, y+1)
	w.react(x, y, nx, y)
	w.fall(x, y)
}

// conduct exchanges heat between two cells. Each side moves toward the other
// by the temperature difference scaled with the mean conductivity.
func (w *World) conduct(x, y, x2, y2 int) {
	if !w.InBounds(x2, y2) {
		return
	}
	a, b := w.at(x, y), w.at(x2, y2)
	if b.Mat == mat.None {
		return
	}
	k := (mat.Props(a.Mat).Conductivity + mat.Props(b.Mat).Conductivity) / 2
	da := (b.Temperature - a.Temperature) * k
	db := (a.Temperature - b.Temperature) * k
	a.Temperature += da
	b.Temperature += db
}

// oxidationSlack absorbs rounding so that a speed like 0.1 converts after
// exactly ceil(1/speed) reactions.
const oxidationSlack = 1e-9

// react oxidizes the cell at (x, y) against an oxidizer at (dx, dy).
func (w *World) react(x, y, dx, dy int) {
	if !w.InBounds(dx, dy) {
		return
	}
	a := w.at(x, y)
	p := mat.Props(a.Mat)
	if p.OxidationHeat <= 0 {
		return
	}
	b := w.at(dx, dy)
	if b.Mat != mat.Oxidizer || a.Temperature <= p.IgnitionPoint {
		return
	}

	heat := p.OxidationHeat * p.OxidationSpeed / 2
	a.Oxidation += p.OxidationSpeed
	a.Temperature += heat
	b.Temperature += heat

	if a.Oxidation >= 1-oxidationSlack {
		a.Mat = p.OxidationProducts[0]
		b.Mat = p.OxidationProducts[1]
		a.Oxidation = 0
	}
}

func (w *World) fall(x, y int) {
	switch w.at(x, y).Phase {
	case mat.Grain:
		w.dropGrain(x, y)
	case mat.Liquid, mat.Gas:
		// Gas sinks with the liquid rule; it is not buoyant.
		w.dropFluid(x, y)
	}
}

func (w *World) dropGrain(x, y int) {
	below := y + 1
	if w.CanDisplace(x, y, x, below) {
		w.swap(x, y, x, below)
		return
	}
	if x-1 >= 0 && w.CanDisplace(x, y, x-1, below) {
		w.swap(x, y, x-1, below)
		return
	}
	if x+1 < w.W && w.CanDisplace(x, y, x+1, below) {
		w.swap(x, y, x+1, below)
	}
}

// dropFluid moves a liquid or gas straight down, or else scans the row below
// leftward and then rightward. A scan swaps with every displaceable cell it
// passes and only stops at a solid.
func (w *World) dropFluid(x, y int) {
	below := y + 1
	if w.CanDisplace(x, y, x, below) {
		w.swap(x, y, x, below)
		return
	}
	for dx := x - 1; dx >= 0; dx-- {
		if w.collapse(x, y, dx, below) {
			break
		}
	}
	for dx := x + 1; dx < w.W; dx++ {
		if w.collapse(x, y, dx, below) {
			break
		}
	}
}

// collapse swaps (x, y) into (dx, dy) when allowed and reports whether the
// scan has hit a solid.
func (w *World) collapse(x, y, dx, dy int) bool {
	if w.CanDisplace(x, y, dx, dy) {
		w.swap(x, y, dx, dy)
		return false
	}
	ph := w.at(dx, dy).Phase
	return ph == mat.Static || ph == mat.Grain
}

// CanDisplace reports whether the cell at (x, y) may swap into (dx, dy).
// Empty cells are always displaceable, rigid solids never, everything else
// only when lighter than the source.
func (w *World) CanDisplace(x, y, dx, dy int) bool {
	src, dst := w.at(x, y), w.at(dx, dy)
	if dst.Mat == mat.None {
		return true
	}
	if dst.Phase == mat.Static {
		return false
	}
	return dst.Weight < src.Weight
}

// swap exchanges material, oxidation, phase and temperature. Weight stays
// with the position until the next Update.
func (w *World) swap(x, y, x2, y2 int) {
	a, b := w.at(x, y), w.at(x2, y2)
	a.Mat, b.Mat = b.Mat, a.Mat
	a.Oxidation, b.Oxidation = b.Oxidation, a.Oxidation
	a.Phase, b.Phase = b.Phase, a.Phase
	a.Temperature, b.Temperature = b.Temperature, a.Temperature
}
