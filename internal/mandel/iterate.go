package mandel

import "math"

// EscapeRadius is the orbit magnitude past which a point is known to diverge.
const EscapeRadius = 2.0

// Iterate returns the number of recurrence steps z = z*z + c applied before
// |z| exceeded EscapeRadius, or maxIterations if the orbit stayed bounded.
//
// The magnitude is tested before each update. z starts at 0, so the count
// is at least 1 for any positive budget, and a point with |c| > 2 returns 1.
func Iterate(c Point, maxIterations int) int {
	var zr, zi float64
	for n := 0; n < maxIterations; n++ {
		if math.Hypot(zr, zi) > EscapeRadius {
			return n
		}
		// Explicit conversions keep each product rounded on its own.
		zr, zi = float64(zr*zr)-float64(zi*zi)+c.Re, float64(zr*zi)+float64(zi*zr)+c.Im
	}
	return maxIterations
}

// Intensity converts an escape count into an RGB triple. Points that never
// escaped are black; every other count is replicated across the channels.
func Intensity(count, maxIterations int) [3]byte {
	if count >= maxIterations {
		return [3]byte{}
	}
	g := byte(count)
	return [3]byte{g, g, g}
}
