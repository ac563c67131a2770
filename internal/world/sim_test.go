package world

import (
	"math"
	"slices"
	"testing"

	"dotsim/internal/mat"
)

func paint(w *World, m mat.Mat, temperature float64, cells ...[2]int) {
	for _, c := range cells {
		w.UseBrush(m, temperature, c[0], c[1], 0)
	}
}

func TestRigidGridDoesNotChange(t *testing.T) {
	w := newWorld(t, 6, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			switch (x*7 + y*3) % 3 {
			case 0:
				paint(w, mat.Iron, ambient, [2]int{x, y})
			case 1:
				paint(w, mat.Glass, ambient, [2]int{x, y})
			}
		}
	}
	w.Update(ambient)
	before := slices.Clone(w.Cells())

	for i := 0; i < 3; i++ {
		w.Simulate()
	}

	if !slices.Equal(before, w.Cells()) {
		t.Fatal("a grid of rigid solids must not change")
	}
}

func TestCanDisplace(t *testing.T) {
	w := newWorld(t, 5, 1)
	paint(w, mat.Water, 300, [2]int{0, 0})
	paint(w, mat.Iron, 300, [2]int{2, 0})
	paint(w, mat.Oxygen, 300, [2]int{3, 0})
	paint(w, mat.Sand, 300, [2]int{4, 0})
	w.Update(ambient)

	cases := []struct {
		name string
		dx   int
		want bool
	}{
		{"empty", 1, true},
		{"rigid", 2, false},
		{"lighter gas", 3, true},
		{"heavier grain", 4, false},
	}
	for _, tc := range cases {
		if got := w.CanDisplace(0, 0, tc.dx, 0); got != tc.want {
			t.Fatalf("%s: CanDisplace = %v, want %v", tc.name, got, tc.want)
		}
	}
	if w.CanDisplace(0, 0, 0, 0) {
		t.Fatal("a cell must not displace an equally heavy cell")
	}
}

func TestGrainFallsThenSlidesLeft(t *testing.T) {
	w := newWorld(t, 3, 4)
	paint(w, mat.Sand, ambient, [2]int{1, 1})

	tick(w)
	if w.Mat(1, 2) != mat.Sand || w.Mat(1, 1) != mat.None {
		t.Fatalf("sand should fall one cell, got %v at (1,2)", w.Mat(1, 2))
	}
	tick(w)
	if w.Mat(1, 3) != mat.Sand {
		t.Fatalf("sand should reach the bottom row, got %v", w.Mat(1, 3))
	}

	paint(w, mat.Sand, ambient, [2]int{1, 2})
	tick(w)
	if w.Mat(0, 3) != mat.Sand || w.Mat(1, 2) != mat.None {
		t.Fatalf("stacked sand should slide down-left first, got %v at (0,3)", w.Mat(0, 3))
	}
}

func TestTopRowHasNoGravity(t *testing.T) {
	w := newWorld(t, 3, 3)
	paint(w, mat.Sand, ambient, [2]int{1, 0})
	tick(w)
	if w.Mat(1, 0) != mat.Sand {
		t.Fatal("top row cells must not fall")
	}
}

func TestSwapLeavesWeightAtPosition(t *testing.T) {
	w := newWorld(t, 3, 3)
	paint(w, mat.Sand, ambient, [2]int{1, 1})
	tick(w)

	sand := mat.Props(mat.Sand).Weight
	if w.Mat(1, 2) != mat.Sand {
		t.Fatalf("sand did not fall, got %v", w.Mat(1, 2))
	}
	if w.Weight(1, 2) != 0 || w.Weight(1, 1) != sand {
		t.Fatalf("weights moved with the swap: below %f above %f", w.Weight(1, 2), w.Weight(1, 1))
	}

	w.Update(ambient)
	if w.Weight(1, 2) != sand || w.Weight(1, 1) != 0 {
		t.Fatalf("Update should refresh weights: below %f above %f", w.Weight(1, 2), w.Weight(1, 1))
	}
}

func TestLiquidScansLeftFirst(t *testing.T) {
	w := newWorld(t, 5, 3)
	paint(w, mat.Iron, ambient, [2]int{2, 2})
	paint(w, mat.Water, ambient, [2]int{2, 1})

	tick(w)

	if w.Mat(1, 2) != mat.Water || w.Mat(2, 1) != mat.None {
		t.Fatalf("water should flow down-left, got %v at (1,2) and %v at (2,1)", w.Mat(1, 2), w.Mat(2, 1))
	}
	if n := countRegion(w, func(c Cell) bool { return c.Mat == mat.Water }); n != 1 {
		t.Fatalf("water count = %d, want 1", n)
	}
}

func TestLiquidScansRightWhenLeftIsSolid(t *testing.T) {
	w := newWorld(t, 5, 3)
	paint(w, mat.Iron, ambient, [2]int{1, 2}, [2]int{2, 2})
	paint(w, mat.Water, ambient, [2]int{2, 1})

	tick(w)

	if w.Mat(3, 2) != mat.Water || w.Mat(2, 1) != mat.None {
		t.Fatalf("water should flow down-right, got %v at (3,2)", w.Mat(3, 2))
	}
}

func TestLiquidScansPastLiquid(t *testing.T) {
	w := newWorld(t, 5, 3)
	paint(w, mat.Iron, ambient, [2]int{2, 2}, [2]int{3, 2}, [2]int{4, 2})
	paint(w, mat.Water, ambient, [2]int{1, 2}, [2]int{2, 1})

	tick(w)

	if w.Mat(0, 2) != mat.Water || w.Mat(1, 2) != mat.Water || w.Mat(2, 1) != mat.None {
		t.Fatalf("water should pass the pooled water, row = %v %v, source %v", w.Mat(0, 2), w.Mat(1, 2), w.Mat(2, 1))
	}
}

func TestGasSinks(t *testing.T) {
	w := newWorld(t, 3, 3)
	paint(w, mat.Oxygen, ambient, [2]int{1, 1})
	tick(w)
	if w.Mat(1, 2) != mat.Oxygen {
		t.Fatalf("gas should sink into empty space, got %v at (1,2)", w.Mat(1, 2))
	}
}

// Two grains race for one gap. The one visited first takes it, and the later
// one swaps in on top because the gap still carries the empty cell's weight.
func TestSweepDirectionAlternatesBetweenTicks(t *testing.T) {
	setup := func(w *World) {
		paint(w, mat.Iron, ambient, [2]int{0, 2}, [2]int{1, 2}, [2]int{3, 2}, [2]int{4, 2})
		paint(w, mat.Sand, ambient, [2]int{1, 1}, [2]int{3, 1})
		w.Update(ambient)
	}

	right := newWorld(t, 5, 3)
	setup(right)
	right.Simulate()
	if right.Mat(1, 1) != mat.None || right.Mat(3, 1) != mat.Sand || right.Mat(2, 2) != mat.Sand {
		t.Fatalf("rightward sweep: (1,1)=%v (3,1)=%v (2,2)=%v", right.Mat(1, 1), right.Mat(3, 1), right.Mat(2, 2))
	}
	if right.Direction() != ToLeft {
		t.Fatalf("direction after one tick = %v, want left", right.Direction())
	}

	left := newWorld(t, 5, 3)
	left.Simulate()
	setup(left)
	left.Simulate()
	if left.Mat(3, 1) != mat.None || left.Mat(1, 1) != mat.Sand || left.Mat(2, 2) != mat.Sand {
		t.Fatalf("leftward sweep: (1,1)=%v (3,1)=%v (2,2)=%v", left.Mat(1, 1), left.Mat(3, 1), left.Mat(2, 2))
	}
	if left.Direction() != ToRight {
		t.Fatalf("direction after two ticks = %v, want right", left.Direction())
	}
}

func TestConductionIsSequential(t *testing.T) {
	w := newWorld(t, 3, 3)
	paint(w, mat.Iron, 1000, [2]int{1, 1})
	paint(w, mat.Iron, 0, [2]int{1, 2}, [2]int{2, 1})
	tick(w)

	k := mat.Props(mat.Iron).Conductivity
	exchange := func(a, b float64) (float64, float64) {
		return a + (b-a)*k, b + (a-b)*k
	}
	center, below := exchange(1000, 0)
	center, right := exchange(center, 0)

	check := func(x, y int, want float64) {
		t.Helper()
		if got := w.Temperature(x, y); math.Abs(got-want) > 1e-9 {
			t.Fatalf("temperature at (%d,%d) = %f, want %f", x, y, got, want)
		}
	}
	check(1, 1, center)
	check(1, 2, below)
	check(2, 1, right)
}

// combustion builds a 3x3 grid with an iron floor, a fuel cell at (1,1) and
// an oxygen cell at (2,1).
func combustion(t *testing.T, fuel mat.Mat, temperature float64) *World {
	t.Helper()
	w := newWorld(t, 3, 3)
	paint(w, mat.Iron, ambient, [2]int{0, 2}, [2]int{1, 2}, [2]int{2, 2})
	paint(w, fuel, temperature, [2]int{1, 1})
	paint(w, mat.Oxygen, ambient, [2]int{2, 1})
	return w
}

func ticksToOxidize(t *testing.T, w *World, fuel mat.Mat) int {
	t.Helper()
	for i := 1; i <= 50; i++ {
		tick(w)
		if got := w.Cell(1, 1).Oxidation; got >= 1 || got < 0 {
			t.Fatalf("oxidation progress out of range: %f", got)
		}
		if w.Mat(1, 1) != fuel {
			return i
		}
	}
	t.Fatalf("%s never oxidized", fuel)
	return 0
}

func TestOxidationTakesCeilInverseSpeedTicks(t *testing.T) {
	w := combustion(t, mat.Hydrogen, 1000)
	want := int(math.Ceil(1 / mat.Props(mat.Hydrogen).OxidationSpeed))

	if got := ticksToOxidize(t, w, mat.Hydrogen); got != want {
		t.Fatalf("hydrogen oxidized after %d ticks, want %d", got, want)
	}
	if w.Mat(1, 1) != mat.Water || w.Mat(2, 1) != mat.Water {
		t.Fatalf("products = %v, %v; want water, water", w.Mat(1, 1), w.Mat(2, 1))
	}
	if w.Cell(1, 1).Oxidation != 0 {
		t.Fatalf("oxidation progress should reset, got %f", w.Cell(1, 1).Oxidation)
	}
}

// Ten reactions at speed 0.1 sum to just under one in float64; conversion
// must still land on the tenth.
func TestOxidationToleratesRounding(t *testing.T) {
	w := combustion(t, mat.Magnesium, 900)
	if got := ticksToOxidize(t, w, mat.Magnesium); got != 10 {
		t.Fatalf("magnesium oxidized after %d ticks, want 10", got)
	}
	if w.Mat(1, 1) != mat.MagnesiumOxide || w.Mat(2, 1) != mat.Oxygen {
		t.Fatalf("products = %v, %v; want magnesium oxide, oxygen", w.Mat(1, 1), w.Mat(2, 1))
	}
}

func TestMethaneBurnsToWaterAndCarbonDioxide(t *testing.T) {
	w := combustion(t, mat.Methane, 1000)

	ticks := ticksToOxidize(t, w, mat.Methane)
	if want := int(math.Ceil(1 / mat.Props(mat.Methane).OxidationSpeed)); ticks != want {
		t.Fatalf("methane oxidized after %d ticks, want %d", ticks, want)
	}
	for i := 0; i < 5; i++ {
		tick(w)
	}
	if w.Mat(1, 1) != mat.Water || w.Mat(2, 1) != mat.CarbonDioxide {
		t.Fatalf("products = %v, %v; want water, carbon dioxide", w.Mat(1, 1), w.Mat(2, 1))
	}
}

func TestColdFuelDoesNotReact(t *testing.T) {
	w := combustion(t, mat.Hydrogen, ambient)
	for i := 0; i < 10; i++ {
		tick(w)
	}
	if w.Mat(1, 1) != mat.Hydrogen || w.Cell(1, 1).Oxidation != 0 {
		t.Fatalf("fuel below ignition reacted: %+v", w.Cell(1, 1))
	}
}

// Without a floor both gases sink on the first tick, so the reaction runs on
// the bottom row and the products land there.
func TestCombustionWithoutFloorBurnsOnBottomRow(t *testing.T) {
	w := newWorld(t, 3, 3)
	paint(w, mat.Methane, 1000, [2]int{1, 1})
	paint(w, mat.Oxygen, ambient, [2]int{2, 1})

	tick(w)
	if w.Mat(1, 2) != mat.Methane || w.Mat(2, 2) != mat.Oxygen {
		t.Fatalf("after tick 1 bottom row = %v, %v; want methane, oxygen", w.Mat(1, 2), w.Mat(2, 2))
	}
	for i := 2; i <= 5; i++ {
		tick(w)
	}
	want := map[[2]int]mat.Mat{
		{1, 1}: mat.None,
		{2, 1}: mat.None,
		{1, 2}: mat.Water,
		{2, 2}: mat.CarbonDioxide,
	}
	for c, m := range want {
		if got := w.Mat(c[0], c[1]); got != m {
			t.Fatalf("tick 5: (%d,%d) = %v, want %v", c[0], c[1], got, m)
		}
	}
}

func TestIronRustsNextToOxygen(t *testing.T) {
	w := newWorld(t, 3, 2)
	paint(w, mat.Iron, ambient, [2]int{1, 1})
	paint(w, mat.Oxygen, ambient, [2]int{1, 0})

	speed := mat.Props(mat.Iron).OxidationSpeed
	tick(w)
	if got := w.Cell(1, 1).Oxidation; math.Abs(got-speed) > 1e-12 {
		t.Fatalf("rust progress after one tick = %g, want %g", got, speed)
	}

	want := int(math.Ceil(1 / speed))
	for i := 2; i <= want+1; i++ {
		tick(w)
		if w.Mat(1, 1) != mat.Iron {
			if i != want {
				t.Fatalf("iron rusted after %d ticks, want %d", i, want)
			}
			break
		}
	}
	if w.Mat(1, 1) != mat.IronOxide || w.Mat(1, 0) != mat.Oxygen {
		t.Fatalf("products = %v, %v; want iron oxide, oxygen", w.Mat(1, 1), w.Mat(1, 0))
	}
}

// Corner cells are never visited. They only exchange heat or react when a
// visited neighbor reaches them.
func TestCornersOnlyActAsNeighbors(t *testing.T) {
	w := newWorld(t, 3, 3)
	paint(w, mat.Sand, ambient, [2]int{0, 0})
	paint(w, mat.Iron, 1000, [2]int{2, 0})
	paint(w, mat.Iron, ambient, [2]int{1, 0})

	tick(w)
	if w.Mat(0, 0) != mat.Sand || w.Mat(0, 1) != mat.None {
		t.Fatalf("corner grain moved: (0,0)=%v (0,1)=%v", w.Mat(0, 0), w.Mat(0, 1))
	}
	if w.Temperature(2, 0) >= 1000 {
		t.Fatalf("hot corner kept %f; its visited neighbor should draw heat", w.Temperature(2, 0))
	}

	w2 := newWorld(t, 3, 3)
	paint(w2, mat.Sand, ambient, [2]int{0, 1})
	tick(w2)
	if w2.Mat(0, 2) != mat.Sand {
		t.Fatalf("edge grain should fall, got %v at (0,2)", w2.Mat(0, 2))
	}
}

func TestBrushedWaterPhaseFollowsTemperature(t *testing.T) {
	cases := []struct {
		temperature float64
		want        mat.Phase
	}{
		{374.0, mat.Gas},
		{300.0, mat.Liquid},
	}
	for _, tc := range cases {
		w := newWorld(t, 10, 10)
		w.UseBrush(mat.Water, tc.temperature, 5, 5, 2)
		tick(w)

		water := 0
		for _, c := range w.Cells() {
			if c.Mat != mat.Water {
				continue
			}
			water++
			if c.Phase != tc.want {
				t.Fatalf("water at %.1fK has phase %v, want %v", tc.temperature, c.Phase, tc.want)
			}
		}
		if water != 25 {
			t.Fatalf("water at %.1fK: %d cells, want 25", tc.temperature, water)
		}
	}
}

func TestDegenerateGridsSimulate(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {1, 4}, {4, 1}, {2, 2}} {
		w := newWorld(t, dims[0], dims[1])
		w.UseBrush(mat.Water, ambient, 0, 0, 3)
		tick(w)
		tick(w)
	}
}
