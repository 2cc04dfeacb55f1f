package spawn

import (
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// NewRand returns a deterministic source for the given seed. A zero seed draws
// one from the runtime so unseeded runs differ.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// uniform returns a value in [lo, hi).
func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// randomColorHSV picks hue, saturation and value uniformly, fully opaque.
func randomColorHSV(r *rand.Rand) color.Color {
	c := colorful.Hsv(r.Float64()*360, r.Float64(), r.Float64())
	red, green, blue := c.Clamped().RGB255()
	return color.NRGBA{R: red, G: green, B: blue, A: 255}
}
