// Package scene loads YAML scene files that describe a starting grid as a
// list of tool strokes.
package scene

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"dotsim/internal/mat"
	"dotsim/internal/world"
)

// DefaultAmbient is used when a scene does not set an ambient temperature.
const DefaultAmbient = 293.15

// ErrInvalid reports a scene that fails validation.
var ErrInvalid = errors.New("scene: invalid")

//go:embed scene.schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("scene.schema.json", schemaSource)

// Scene is a decoded scene file.
type Scene struct {
	Name               string   `yaml:"name"`
	Width              int      `yaml:"width"`
	Height             int      `yaml:"height"`
	Ambient            *float64 `yaml:"ambient"`
	SpawnerTemperature *float64 `yaml:"spawner_temperature"`
	Strokes            []Stroke `yaml:"strokes"`

	strokes []world.Stroke
}

// Stroke is one tool application as written in a scene file. Brush strokes
// without a temperature paint at the scene's ambient temperature.
type Stroke struct {
	Tool        string   `yaml:"tool"`
	Material    string   `yaml:"material"`
	X           int      `yaml:"x"`
	Y           int      `yaml:"y"`
	Radius      int      `yaml:"radius"`
	Temperature *float64 `yaml:"temperature"`
	Delta       float64  `yaml:"delta"`
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse validates raw YAML against the scene schema and decodes it.
func Parse(raw []byte) (*Scene, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	// The validator expects JSON-shaped values.
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var generic any
	if err := json.Unmarshal(js, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var s Scene
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.resolve(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) resolve() error {
	s.strokes = make([]world.Stroke, 0, len(s.Strokes))
	for i, st := range s.Strokes {
		tool, ok := world.ParseTool(st.Tool)
		if !ok {
			return fmt.Errorf("%w: stroke %d: unknown tool %q", ErrInvalid, i, st.Tool)
		}
		out := world.Stroke{
			Tool:        tool,
			X:           st.X,
			Y:           st.Y,
			Radius:      st.Radius,
			Temperature: s.AmbientTemperature(),
			Delta:       st.Delta,
		}
		if st.Temperature != nil {
			out.Temperature = *st.Temperature
		}
		if tool == world.Brush || tool == world.Spawner {
			m, ok := mat.Parse(st.Material)
			if !ok {
				return fmt.Errorf("%w: stroke %d: unknown material %q", ErrInvalid, i, st.Material)
			}
			out.Mat = m
		}
		if st.X >= s.Width || st.Y >= s.Height {
			return fmt.Errorf("%w: stroke %d: (%d,%d) outside %dx%d", ErrInvalid, i, st.X, st.Y, s.Width, s.Height)
		}
		s.strokes = append(s.strokes, out)
	}
	return nil
}

// AmbientTemperature returns the scene's ambient temperature or DefaultAmbient.
func (s *Scene) AmbientTemperature() float64 {
	if s.Ambient == nil {
		return DefaultAmbient
	}
	return *s.Ambient
}

// SpawnerTemp returns the scene's spawner temperature, falling back to fallback.
func (s *Scene) SpawnerTemp(fallback float64) float64 {
	if s.SpawnerTemperature == nil {
		return fallback
	}
	return *s.SpawnerTemperature
}

// ToolStrokes returns the resolved strokes in file order.
func (s *Scene) ToolStrokes() []world.Stroke { return s.strokes }

// Apply paints the scene's strokes onto w. Strokes whose centre falls outside
// w are rejected before anything is painted.
func (s *Scene) Apply(w *world.World) error {
	for i, st := range s.strokes {
		if !w.InBounds(st.X, st.Y) {
			return fmt.Errorf("%w: stroke %d: (%d,%d) outside %dx%d world", ErrInvalid, i, st.X, st.Y, w.W, w.H)
		}
	}
	for _, st := range s.strokes {
		w.Apply(st)
	}
	return nil
}

// Build allocates a world of the scene's size and applies its strokes.
func (s *Scene) Build() (*world.World, error) {
	w, err := world.New(s.Width, s.Height, s.AmbientTemperature())
	if err != nil {
		return nil, err
	}
	if err := s.Apply(w); err != nil {
		w.Destroy()
		return nil, err
	}
	return w, nil
}
