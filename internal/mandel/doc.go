// Package mandel provides the numeric core of the escape-time renderer.
//
// The package maps raster coordinates into the complex plane and runs the
// Mandelbrot recurrence on each sample point:
//
//   - [Params]: immutable image parameters (raster size, plane bounds, budget)
//   - [Point]: a complex sample point held as an explicit (Re, Im) pair
//   - [MapInclusiveRanges]: linear interpolation between inclusive ranges
//   - [Iterate]: escape-time count for one sample point
//   - [Intensity]: grayscale RGB triple for an escape count
//
// # Example
//
//	p := mandel.DefaultParams()
//	if err := p.Validate(); err != nil {
//		return err
//	}
//	n := mandel.Iterate(p.PixelPoint(7, 15), p.MaxIterations)
//	rgb := mandel.Intensity(n, p.MaxIterations)
//
// # Determinism
//
// Every function in this package is pure. The recurrence rounds each
// product explicitly, so results do not depend on whether the target
// architecture has fused multiply-add instructions.
package mandel
