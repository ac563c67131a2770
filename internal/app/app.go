//go:build ebiten

package app

import (
	"fmt"

	"dotsim/internal/core"
	"dotsim/internal/render"
	"dotsim/internal/sims/dots"
	"dotsim/internal/ui"
	"dotsim/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var toolKeys = [world.ToolCount]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
}

// Game adapts a dots session to the ebiten.Game interface.
type Game struct {
	session *dots.Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	timer   *core.FixedStep

	cells    []world.Cell
	scale    int
	hudWidth int
	tickOnce bool
}

// New constructs a Game for the provided session.
func New(s *dots.Session, cfg *Config) *Game {
	size := s.Size()
	scale := max(1, cfg.Scale)
	return &Game{
		session:  s,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(scale),
		hud:      ui.NewHUD(s, cfg.HUD),
		timer:    core.NewFixedStep(cfg.TPS),
		scale:    scale,
		hudWidth: max(0, cfg.HUD),
	}
}

// Reset reinitializes the world with the configured seed.
func (g *Game) Reset() {
	g.session.Reset(0)
	g.tickOnce = false
}

// cursorCell maps the cursor to a world cell.
func (g *Game) cursorCell() (int, int, bool) {
	mx, my := ebiten.CursorPosition()
	size := g.session.Size()
	if mx < 0 || my < 0 || mx >= size.W*g.scale || my >= size.H*g.scale {
		return 0, 0, false
	}
	return mx / g.scale, my / g.scale, true
}

// Update handles input, painting and tick pacing.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.timer.SetPaused(!g.timer.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	for i, k := range toolKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.session.SetTool(world.Tool(i))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			g.session.CycleMaterial(-1)
		} else {
			g.session.CycleMaterial(1)
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		if dy > 0 {
			g.session.SetRadius(g.session.Radius() + 1)
		} else {
			g.session.SetRadius(g.session.Radius() - 1)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.session.SetRadius(g.session.Radius() - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.session.SetRadius(g.session.Radius() + 1)
	}

	g.overlay.Update()
	g.hud.SetStatus(g.status()...)
	g.hud.Update(g.session.Size().W * g.scale)

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if x, y, ok := g.cursorCell(); ok {
			g.session.Paint(x, y)
		}
	}

	if g.timer.ShouldStep() || g.tickOnce {
		g.session.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) status() []string {
	state := "running"
	if g.timer.Paused() {
		state = "paused"
	}
	opts := g.overlay.Options()
	return []string{
		fmt.Sprintf("tick %d (%s)", g.session.Ticks(), state),
		fmt.Sprintf("%s: %s r=%d", g.session.Tool(), g.session.Material(), g.session.Radius()),
		fmt.Sprintf("glow %v  phase %v", opts.Glow, opts.PhaseTint),
	}
}

// Draw renders the current world state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.cells = g.session.Snapshot(g.cells)
	g.painter.BlitCells(screen, g.cells, g.overlay.Options(), g.scale)
	if x, y, ok := g.cursorCell(); ok {
		g.overlay.Draw(screen, x, y, g.session.Radius())
	}
	g.hud.Draw(screen, g.session.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
