package render

import (
	"image/color"

	"dotsim/internal/mat"
	"dotsim/internal/world"
)

// Options selects the optional layers mixed into cell colors.
type Options struct {
	// Glow blends the temperature glow ramp over the material color.
	Glow bool
	// PhaseTint scales alpha by phase: liquid 0.8, gas 0.5.
	PhaseTint bool
}

// DefaultOptions enables every layer.
var DefaultOptions = Options{Glow: true, PhaseTint: true}

// PhaseAlpha is the alpha multiplier applied to a phase.
func PhaseAlpha(p mat.Phase) float64 {
	switch p {
	case mat.Liquid:
		return 0.8
	case mat.Gas:
		return 0.5
	}
	return 1
}

// CellColor returns the straight-alpha display color of c.
func CellColor(c world.Cell, opt Options) color.NRGBA {
	if c.Mat == mat.None {
		return color.NRGBA{}
	}
	base := mat.Props(c.Mat).Color
	out := color.NRGBA{R: base.R, G: base.G, B: base.B, A: base.A}
	if opt.Glow {
		if g := Glow(c.Temperature); g.A > 0 {
			a := float64(g.A) / 255
			mix := func(x, y uint8) uint8 { return uint8(float64(x)*(1-a) + float64(y)*a + 0.5) }
			out.R = mix(out.R, g.R)
			out.G = mix(out.G, g.G)
			out.B = mix(out.B, g.B)
			out.A = max(out.A, g.A)
		}
	}
	if opt.PhaseTint {
		out.A = uint8(float64(out.A)*PhaseAlpha(c.Phase) + 0.5)
	}
	return out
}

// fillCellsRGBA writes premultiplied RGBA pixels for cells into buf.
func fillCellsRGBA(buf []byte, cells []world.Cell, opt Options) {
	for i, c := range cells {
		putPremultiplied(buf[i*4:], CellColor(c, opt))
	}
}

// fillPaletteRGBA converts material ids into premultiplied RGBA pixels using
// a palette. When the palette is empty the buffer is cleared to transparent
// black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		col := palette[idx]
		if idx == int(mat.None) {
			col = color.RGBA{}
		}
		putPremultiplied(buf[i*4:], color.NRGBA(col))
	}
}

func putPremultiplied(px []byte, c color.NRGBA) {
	a := uint16(c.A)
	px[0] = uint8(uint16(c.R) * a / 255)
	px[1] = uint8(uint16(c.G) * a / 255)
	px[2] = uint8(uint16(c.B) * a / 255)
	px[3] = c.A
}
