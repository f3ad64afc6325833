// Package viz provides terminal presentation for renders.
//
// It does not display images. It styles the summary printed after a
// render and, when requested, runs a small Bubble Tea program that shows
// row progress while the render proceeds:
//
//	res, err := viz.RunWithProgress(ctx, renderer, path)
//
// The render itself keeps running on a single goroutine; the program only
// receives row notifications and quits once the render returns.
//
// Thumbnail is a render.Metric that sketches the set on a braille Canvas
// from the escape counts it observes.
package viz
