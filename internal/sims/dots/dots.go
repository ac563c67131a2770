// Package dots wraps a world.World in a lockable session that the GUI,
// transports and registry drive.
package dots

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"dotsim/internal/core"
	"dotsim/internal/mat"
	"dotsim/internal/scene"
	"dotsim/internal/world"
)

// Layout fills a freshly allocated world.
type Layout func(w *world.World, rng *rand.Rand)

// Session owns a world and the tool state used to paint it. All methods are
// safe for concurrent use.
type Session struct {
	mu sync.Mutex

	name   string
	cfg    Config
	layout Layout
	scene  *scene.Scene

	world *world.World
	frame *core.Frame
	ticks uint64

	tool     world.Tool
	material mat.Mat
}

// New creates a session with an empty world.
func New(cfg Config) (*Session, error) {
	return open("sandbox", cfg, nil)
}

// NewDemo creates a session whose world starts with the demo layout.
func NewDemo(cfg Config) (*Session, error) {
	return open("demo", cfg, DemoLayout)
}

// Open builds the named registered variant ("sandbox" or "demo").
func Open(name string, cfg Config) (*Session, error) {
	switch name {
	case "sandbox":
		return New(cfg)
	case "demo":
		return NewDemo(cfg)
	}
	return nil, fmt.Errorf("dots: unknown variant %q", name)
}

func open(name string, cfg Config, layout Layout) (*Session, error) {
	s := &Session{
		name:     name,
		cfg:      cfg,
		layout:   layout,
		tool:     world.Brush,
		material: mat.Sand,
	}
	if cfg.Scene != "" {
		sc, err := scene.Load(cfg.Scene)
		if err != nil {
			return nil, fmt.Errorf("dots: %w", err)
		}
		s.scene = sc
		s.cfg.Width, s.cfg.Height = sc.Width, sc.Height
		s.cfg.Tuning.Ambient = sc.AmbientTemperature()
		s.cfg.Tuning.SpawnerTemperature = sc.SpawnerTemp(cfg.Tuning.SpawnerTemperature)
	}
	if err := s.rebuild(0); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild replaces the world. Callers hold mu or own s exclusively.
func (s *Session) rebuild(seed int64) error {
	w, err := world.New(s.cfg.Width, s.cfg.Height, s.cfg.Tuning.Ambient)
	if err != nil {
		return fmt.Errorf("dots: %w", err)
	}
	if seed == 0 {
		seed = s.cfg.Seed
	}
	if s.layout != nil {
		s.layout(w, core.NewRand(seed))
	}
	if s.scene != nil {
		if err := s.scene.Apply(w); err != nil {
			w.Destroy()
			return fmt.Errorf("dots: %w", err)
		}
	}
	if s.world != nil && s.world.Alive() {
		s.world.Destroy()
	}
	s.world = w
	s.ticks = 0
	if s.frame == nil || s.frame.W != w.W || s.frame.H != w.H {
		s.frame = core.NewFrame(w.W, w.H)
	}
	s.refresh()
	return nil
}

func (s *Session) refresh() {
	data := s.frame.Cells()
	for i, c := range s.world.Cells() {
		data[i] = uint8(c.Mat)
	}
}

// Name reports the registered variant.
func (s *Session) Name() string { return s.name }

// Size returns the world dimensions.
func (s *Session) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Config returns the session configuration.
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Reset rebuilds the world. A zero seed reuses the configured one.
func (s *Session) Reset(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rebuild(seed); err != nil {
		// The scene and size were already accepted by open.
		panic(err)
	}
}

// Step runs one tick: Update then Simulate.
func (s *Session) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world.Update(s.cfg.Tuning.SpawnerTemperature)
	s.world.Simulate()
	s.ticks++
	s.refresh()
}

// Ticks counts steps since the last Reset.
func (s *Session) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Cells returns a copy of the material ids in row-major order as of the last
// Step, Reset or Apply.
func (s *Session) Cells() []uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.frame.Cells())
}

// Snapshot copies every cell into dst, growing it when needed.
func (s *Session) Snapshot(dst []world.Cell) []world.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(dst[:0], s.world.Cells()...)
}

// ColumnMajor copies material ids into dst with x as the outer index.
func (s *Session) ColumnMajor(dst []uint8) []uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame.ColumnMajor(dst)
}

// Apply performs st if its centre lies inside the world and reports whether
// it did.
func (s *Session) Apply(st world.Stroke) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.world.InBounds(st.X, st.Y) {
		return false
	}
	s.world.Apply(st)
	s.refresh()
	return true
}

// Stroke builds a stroke at (x, y) from the current tool state.
func (s *Session) Stroke(x, y int) world.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	return world.Stroke{
		Tool:        s.tool,
		X:           x,
		Y:           y,
		Radius:      s.cfg.Tuning.Radius,
		Mat:         s.material,
		Temperature: s.cfg.Tuning.BrushTemperature,
		Delta:       s.cfg.Tuning.HeatDelta,
	}
}

// Paint applies the selected tool at (x, y).
func (s *Session) Paint(x, y int) bool { return s.Apply(s.Stroke(x, y)) }

// Tool returns the selected tool.
func (s *Session) Tool() world.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

// SetTool selects a tool.
func (s *Session) SetTool(t world.Tool) {
	if int(t) >= world.ToolCount {
		return
	}
	s.mu.Lock()
	s.tool = t
	s.mu.Unlock()
}

// Material returns the material painted by Brush and Spawner.
func (s *Session) Material() mat.Mat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.material
}

// SetMaterial selects the painted material. None is rejected; use the eraser.
func (s *Session) SetMaterial(m mat.Mat) bool {
	if m == mat.None || !m.Valid() {
		return false
	}
	s.mu.Lock()
	s.material = m
	s.mu.Unlock()
	return true
}

// CycleMaterial moves the selection by delta, wrapping and skipping None.
func (s *Session) CycleMaterial(delta int) mat.Mat {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := mat.Count - 1
	i := (int(s.material) - 1 + delta) % n
	if i < 0 {
		i += n
	}
	s.material = mat.Mat(i + 1)
	return s.material
}

// Radius returns the tool radius.
func (s *Session) Radius() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Tuning.Radius
}

// SetRadius clamps r into [0, MaxRadius].
func (s *Session) SetRadius(r int) {
	s.mu.Lock()
	s.cfg.Tuning.Radius = max(0, min(r, MaxRadius))
	s.mu.Unlock()
}

// Close releases the world. The session must not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world != nil && s.world.Alive() {
		s.world.Destroy()
	}
}

func mustOpen(name string) core.Factory {
	return func(cfg map[string]string) core.Sim {
		s, err := Open(name, FromMap(cfg))
		if err != nil {
			panic(err)
		}
		return s
	}
}

func init() {
	core.Register("sandbox", mustOpen("sandbox"))
	core.Register("demo", mustOpen("demo"))
}
