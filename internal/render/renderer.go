//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"dotsim/internal/world"
)

// GridPainter uploads cell colors into a single image and draws it scaled.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// BlitCells colors full cell records, including glow and phase tint.
func (gp *GridPainter) BlitCells(dst *ebiten.Image, cells []world.Cell, opt Options, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillCellsRGBA(gp.buf, cells, opt)
	gp.draw(dst, scale)
}

// BlitPalette colors material ids, as received by stream viewers.
func (gp *GridPainter) BlitPalette(dst *ebiten.Image, ids []uint8, palette []color.RGBA, scale int) {
	if len(ids) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, ids, palette)
	gp.draw(dst, scale)
}

func (gp *GridPainter) draw(dst *ebiten.Image, scale int) {
	gp.img.WritePixels(gp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
