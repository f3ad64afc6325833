package mandel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultWidth         = 2048
	DefaultHeight        = 2048
	DefaultXMin          = -2.0
	DefaultXMax          = 1.0
	DefaultYMin          = -1.5
	DefaultYMax          = 1.5
	DefaultMaxIterations = 255

	// MaxChannel is the largest value a P6 byte channel holds.
	MaxChannel = 255

	filenamePrefix = "mandelbrot_"
	filenameSuffix = ".ppm"
)

// Point is a sample point in the complex plane.
type Point struct {
	Re float64
	Im float64
}

// Params fixes everything a render depends on.
type Params struct {
	Width         int
	Height        int
	XMin          float64
	XMax          float64
	YMin          float64
	YMax          float64
	MaxIterations int
}

func DefaultParams() Params {
	return Params{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		XMin:          DefaultXMin,
		XMax:          DefaultXMax,
		YMin:          DefaultYMin,
		YMax:          DefaultYMax,
		MaxIterations: DefaultMaxIterations,
	}
}

func (p Params) Validate() error {
	if p.Width < 2 || p.Height < 2 {
		return fmt.Errorf("%w: got %dx%d", ErrDegenerateDimension, p.Width, p.Height)
	}
	for _, v := range []float64{p.XMin, p.XMax, p.YMin, p.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bound %v", ErrInvalidBounds, v)
		}
	}
	if p.XMin >= p.XMax {
		return fmt.Errorf("%w: x_min %v must be below x_max %v", ErrInvalidBounds, p.XMin, p.XMax)
	}
	if p.YMin >= p.YMax {
		return fmt.Errorf("%w: y_min %v must be below y_max %v", ErrInvalidBounds, p.YMin, p.YMax)
	}
	if p.MaxIterations < 1 || p.MaxIterations > MaxChannel {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrIterationRange, p.MaxIterations, MaxChannel)
	}
	return nil
}

// Pixels returns the number of pixels in the raster.
func (p Params) Pixels() int {
	return p.Width * p.Height
}

// PixelPoint maps a raster coordinate to its sample point. Column 0 lands on
// XMin and column Width-1 on XMax; rows map onto [YMin, YMax] the same way.
func (p Params) PixelPoint(col, row int) Point {
	return Point{
		Re: MapInclusiveRanges(0, p.Width-1, p.XMin, p.XMax, col),
		Im: MapInclusiveRanges(0, p.Height-1, p.YMin, p.YMax, row),
	}
}

// Filename encodes every parameter into the output file name, e.g.
// mandelbrot_2048x2048_-2_1_-1.5_1.5_255.ppm.
func (p Params) Filename() string {
	return fmt.Sprintf("%s%dx%d_%s_%s_%s_%s_%d%s",
		filenamePrefix,
		p.Width, p.Height,
		FormatReal(p.XMin), FormatReal(p.XMax),
		FormatReal(p.YMin), FormatReal(p.YMax),
		p.MaxIterations,
		filenameSuffix,
	)
}

// ParseFilename recovers the parameters encoded by Filename. The result is
// not validated.
func ParseFilename(name string) (Params, error) {
	var p Params
	if !strings.HasPrefix(name, filenamePrefix) || !strings.HasSuffix(name, filenameSuffix) {
		return p, fmt.Errorf("%w: %q", ErrBadFilename, name)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(name, filenamePrefix), filenameSuffix)
	fields := strings.Split(body, "_")
	if len(fields) != 6 {
		return p, fmt.Errorf("%w: %q has %d fields", ErrBadFilename, name, len(fields))
	}

	w, h, ok := strings.Cut(fields[0], "x")
	if !ok {
		return p, fmt.Errorf("%w: %q has no size", ErrBadFilename, name)
	}
	var err error
	if p.Width, err = strconv.Atoi(w); err != nil {
		return p, fmt.Errorf("%w: width: %v", ErrBadFilename, err)
	}
	if p.Height, err = strconv.Atoi(h); err != nil {
		return p, fmt.Errorf("%w: height: %v", ErrBadFilename, err)
	}

	bounds := []*float64{&p.XMin, &p.XMax, &p.YMin, &p.YMax}
	for i, dst := range bounds {
		if *dst, err = strconv.ParseFloat(fields[i+1], 64); err != nil {
			return p, fmt.Errorf("%w: bound: %v", ErrBadFilename, err)
		}
	}

	if p.MaxIterations, err = strconv.Atoi(fields[5]); err != nil {
		return p, fmt.Errorf("%w: iterations: %v", ErrBadFilename, err)
	}
	return p, nil
}

// FormatReal prints v in its shortest round-trip form. Whole numbers carry
// no decimal point and magnitudes outside [1e-4, 1e16) use a two-digit
// exponent (1e-05).
func FormatReal(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FitAspect returns real-axis bounds centered on xCenter whose width keeps
// the raster's aspect ratio for the given imaginary range.
func FitAspect(width, height int, yMin, yMax, xCenter float64) (xMin, xMax float64) {
	aspect := float64(width) / float64(height)
	xWidth := aspect * (yMax - yMin)
	return xCenter - xWidth/2, xCenter + xWidth/2
}
