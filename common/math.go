package common

import (
	"math"
	"time"
)

const (
	// TPS matches ebiten's default update rate.
	TPS = 60

	// Gravity in world units per second squared, pulling toward -Y.
	Gravity = -9.81

	// PixelsPerUnit converts world units to screen pixels at zoom 1.
	PixelsPerUnit = 40.0

	// DepthSkew is how far one unit of Z shifts a point up and right on screen.
	DepthSkew = 0.35
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// FramesFor converts a duration to whole update ticks, rounding up so a
// positive delay never fires on the tick it was scheduled.
func FramesFor(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds() * TPS))
}

// Project maps a world point to screen space. The origin lands on (cx, cy);
// Y grows up in the world but down on screen, and Z recedes diagonally.
func Project(x, y, z, cx, cy, zoom float64) (float64, float64) {
	ppu := PixelsPerUnit * zoom
	sx := cx + (x+z*DepthSkew)*ppu
	sy := cy - (y+z*DepthSkew)*ppu
	return sx, sy
}
