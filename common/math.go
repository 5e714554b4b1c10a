package common

import "math"

const (
	// FixedDelta is the fixed-timestep tick used for movement and gravity integration.
	FixedDelta = 1.0 / 60.0
	// Gravity is the world gravity along y. The simulation is y-up.
	Gravity = -9.8
	// PixelsPerUnit scales world units to screen pixels.
	PixelsPerUnit = 32.0
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi]. NaN collapses to zero.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

