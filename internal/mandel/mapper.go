package mandel

// MapInclusiveRanges linearly maps srcVal from the inclusive integer range
// [srcMin, srcMax] onto the real range [destMin, destMax].
//
// srcMax must differ from srcMin; Params.Validate guarantees this for
// pixel coordinates.
func MapInclusiveRanges(srcMin, srcMax int, destMin, destMax float64, srcVal int) float64 {
	fraction := float64(srcVal-srcMin) / float64(srcMax-srcMin)
	return float64((destMax-destMin)*fraction) + destMin
}
