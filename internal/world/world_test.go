package world

import (
	"errors"
	"testing"

	"dotsim/internal/mat"
)

const ambient = 293.15

func newWorld(t *testing.T, w, h int) *World {
	t.Helper()
	wld, err := New(w, h, ambient)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return wld
}

func tick(w *World) {
	w.Update(ambient)
	w.Simulate()
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestNewInitializesCells(t *testing.T) {
	w := newWorld(t, 4, 3)
	if gw, gh := w.Size(); gw != 4 || gh != 3 {
		t.Fatalf("Size() = %dx%d, want 4x3", gw, gh)
	}
	for _, c := range w.Cells() {
		if c.Mat != mat.None || c.Temperature != ambient || c.Oxidation != 0 || c.Spawner {
			t.Fatalf("unexpected initial cell %+v", c)
		}
	}
	if w.Direction() != ToRight {
		t.Fatalf("initial sweep should be to the right, got %v", w.Direction())
	}
}

func TestNewRejectsUnallocatableGrids(t *testing.T) {
	cases := [][2]int{{0, 4}, {4, 0}, {-1, 3}, {MaxCells, 2}}
	for _, dims := range cases {
		w, err := New(dims[0], dims[1], ambient)
		if !errors.Is(err, ErrAllocation) {
			t.Fatalf("New(%d, %d) error = %v, want ErrAllocation", dims[0], dims[1], err)
		}
		if w != nil {
			t.Fatalf("New(%d, %d) returned a world alongside an error", dims[0], dims[1])
		}
	}
}

func TestDestroy(t *testing.T) {
	w := newWorld(t, 2, 2)
	w.Destroy()
	if w.Alive() {
		t.Fatal("destroyed world reports alive")
	}
	mustPanic(t, "second Destroy", w.Destroy)
	mustPanic(t, "Simulate after Destroy", w.Simulate)
	mustPanic(t, "Mat after Destroy", func() { w.Mat(0, 0) })
}

func TestCoordinatesAreChecked(t *testing.T) {
	w := newWorld(t, 3, 3)
	mustPanic(t, "Mat(3,0)", func() { w.Mat(3, 0) })
	mustPanic(t, "Cell(0,-1)", func() { w.Cell(0, -1) })
	mustPanic(t, "CanDisplace out of range", func() { w.CanDisplace(1, 1, 1, 3) })
	mustPanic(t, "SetSpawner out of range", func() { w.SetSpawner(-1, 0, mat.Sand) })
}

func TestUpdateAppliesSpawners(t *testing.T) {
	w := newWorld(t, 3, 3)
	w.SetSpawner(1, 1, mat.Water)
	w.UseBrush(mat.Iron, 10, 1, 1, 0)

	w.Update(350)

	c := w.Cell(1, 1)
	if c.Mat != mat.Water || c.Temperature != 350 || c.Phase != mat.Liquid {
		t.Fatalf("spawner cell = %+v, want water at 350K", c)
	}

	w.ClearSpawner(1, 1)
	w.UseBrush(mat.Iron, 10, 1, 1, 0)
	w.Update(350)
	if got := w.Mat(1, 1); got != mat.Iron {
		t.Fatalf("cleared spawner still emits, got %v", got)
	}
}

func TestUpdateTurnsSandIntoGlass(t *testing.T) {
	w := newWorld(t, 1, 1)
	melt := mat.Props(mat.Sand).MeltPoint

	w.UseBrush(mat.Sand, melt-1, 0, 0, 0)
	w.Update(0)
	if w.Mat(0, 0) != mat.Sand || w.Phase(0, 0) != mat.Grain {
		t.Fatalf("sand one kelvin below melting = %v/%v", w.Mat(0, 0), w.Phase(0, 0))
	}

	w.UseBrush(mat.Sand, melt, 0, 0, 0)
	w.Update(0)
	if w.Mat(0, 0) != mat.Glass || w.Phase(0, 0) != mat.Liquid {
		t.Fatalf("sand at melting point = %v/%v, want liquid glass", w.Mat(0, 0), w.Phase(0, 0))
	}

	w.UseCooler(1000, 0, 0, 0)
	w.Update(0)
	if w.Mat(0, 0) != mat.Glass || w.Phase(0, 0) != mat.Static {
		t.Fatalf("cooled melt = %v/%v, want solid glass", w.Mat(0, 0), w.Phase(0, 0))
	}
}

func TestMaterialsCopiesRowMajor(t *testing.T) {
	w := newWorld(t, 3, 2)
	w.UseBrush(mat.Iron, ambient, 2, 0, 0)
	w.UseBrush(mat.Sand, ambient, 0, 1, 0)

	got := w.Materials(nil)
	want := []mat.Mat{mat.None, mat.None, mat.Iron, mat.Sand, mat.None, mat.None}
	if len(got) != len(want) {
		t.Fatalf("Materials length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Materials()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
