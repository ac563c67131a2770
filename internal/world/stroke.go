package world

import (
	"fmt"
	"strings"

	"dotsim/internal/mat"
)

// Tool selects which tool operation a Stroke performs.
type Tool uint8

const (
	Brush Tool = iota
	Spawner
	Eraser
	Heater
	Cooler

	ToolCount int = iota
)

var toolNames = [ToolCount]string{"brush", "spawner", "eraser", "heater", "cooler"}

func (t Tool) String() string {
	if int(t) < ToolCount {
		return toolNames[t]
	}
	return fmt.Sprintf("tool(%d)", t)
}

// ParseTool looks a tool up by name, ignoring case.
func ParseTool(name string) (Tool, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range toolNames {
		if n == name {
			return Tool(i), true
		}
	}
	return Brush, false
}

// Stroke is one tool application centred on (X, Y).
type Stroke struct {
	Tool   Tool
	X, Y   int
	Radius int

	// Mat is painted by Brush and emitted by Spawner.
	Mat mat.Mat
	// Temperature is used by Brush.
	Temperature float64
	// Delta is used by Heater and Cooler.
	Delta float64
}

// Apply performs the stroke's tool operation.
func (w *World) Apply(s Stroke) {
	switch s.Tool {
	case Brush:
		w.UseBrush(s.Mat, s.Temperature, s.X, s.Y, s.Radius)
	case Spawner:
		w.UseSpawner(s.Mat, s.X, s.Y, s.Radius)
	case Eraser:
		w.UseEraser(s.X, s.Y, s.Radius)
	case Heater:
		w.UseHeater(s.Delta, s.X, s.Y, s.Radius)
	case Cooler:
		w.UseCooler(s.Delta, s.X, s.Y, s.Radius)
	default:
		panic(fmt.Sprintf("world: unknown tool %d", s.Tool))
	}
}
