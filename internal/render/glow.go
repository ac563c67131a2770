package render

import "image/color"

// GlowBuckets is the number of 100 K temperature buckets with a glow color.
const GlowBuckets = 78

const glowMaxAlpha = 200

// glowStop pins the glow color at bucket i; buckets in between are linear.
type glowStop struct {
	i          int
	r, g, b, a float64
}

var glowStops = []glowStop{
	{0, 0, 0, 0, 0},
	{7, 255, 0, 0, 0}, // draper point
	{40, 255, 0, 0, glowMaxAlpha},
	{44, 255, 0, 0, glowMaxAlpha},
	{46, 255, 127, 0, glowMaxAlpha},
	{48, 255, 190, 0, glowMaxAlpha},
	{50, 255, 255, 0, glowMaxAlpha},
	{52, 0, 255, 0, glowMaxAlpha},
	{54, 0, 255, 0, glowMaxAlpha},
	{57, 0, 255, 255, glowMaxAlpha},
	{58, 0, 255, 255, glowMaxAlpha},
	{61, 0, 0, 255, glowMaxAlpha},
	{65, 0, 0, 255, glowMaxAlpha},
	{72, 127, 0, 255, glowMaxAlpha},
	{75, 127, 0, 255, glowMaxAlpha},
	{78, 127, 0, 255, 0},
}

var glowRamp = buildGlowRamp()

func buildGlowRamp() [GlowBuckets]color.NRGBA {
	var ramp [GlowBuckets]color.NRGBA
	for i := 1; i < GlowBuckets; i++ {
		s := 1
		for glowStops[s].i < i {
			s++
		}
		lo, hi := glowStops[s-1], glowStops[s]
		t := float64(i-lo.i) / float64(hi.i-lo.i)
		lerp := func(a, b float64) uint8 { return uint8(a + (b-a)*t + 0.5) }
		ramp[i] = color.NRGBA{
			R: lerp(lo.r, hi.r),
			G: lerp(lo.g, hi.g),
			B: lerp(lo.b, hi.b),
			A: lerp(lo.a, hi.a),
		}
	}
	return ramp
}

// Glow returns the incandescence color for a temperature in kelvin. Cold and
// very hot cells get a transparent color.
func Glow(temperature float64) color.NRGBA {
	if temperature < 0 {
		return color.NRGBA{}
	}
	i := int(temperature / 100)
	if i >= GlowBuckets {
		return color.NRGBA{}
	}
	return glowRamp[i]
}
