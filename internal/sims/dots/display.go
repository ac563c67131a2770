package dots

import (
	"image/color"

	"dotsim/internal/mat"
)

var dotsPalette = buildPalette()

// Palette maps material ids (the values in Cells) to colors.
func (s *Session) Palette() []color.RGBA { return dotsPalette }

// DefaultPalette is the palette stream viewers use for material ids.
func DefaultPalette() []color.RGBA { return dotsPalette }

func buildPalette() []color.RGBA {
	palette := make([]color.RGBA, mat.Count)
	for _, m := range mat.All() {
		palette[m] = mat.Props(m).Color
	}
	return palette
}
