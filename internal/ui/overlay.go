//go:build ebiten

package ui

import (
	"image/color"

	"dotsim/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay owns the render layer toggles and draws the brush outline.
type Overlay struct {
	scale int
	opts  render.Options
	pixel *ebiten.Image
}

var outlineColor = color.RGBA{R: 255, G: 255, B: 255, A: 140}

// NewOverlay constructs an overlay with every render layer enabled.
func NewOverlay(scale int) *Overlay {
	o := &Overlay{scale: max(1, scale), opts: render.DefaultOptions}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Options returns the current render layers.
func (o *Overlay) Options() render.Options { return o.opts }

// Update handles the G (glow) and P (phase tint) toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.opts.Glow = !o.opts.Glow
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		o.opts.PhaseTint = !o.opts.PhaseTint
	}
}

// Draw outlines the square a tool of the given radius covers around cell
// (cx, cy).
func (o *Overlay) Draw(screen *ebiten.Image, cx, cy, radius int) {
	s := float64(o.scale)
	x0 := float64(cx-radius) * s
	y0 := float64(cy-radius) * s
	side := float64(2*radius+1) * s
	o.rect(screen, x0, y0, side, 1)
	o.rect(screen, x0, y0+side-1, side, 1)
	o.rect(screen, x0, y0, 1, side)
	o.rect(screen, x0+side-1, y0, 1, side)
}

func (o *Overlay) rect(screen *ebiten.Image, x, y, w, h float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(outlineColor)
	screen.DrawImage(o.pixel, op)
}
