// Package render drives the per-pixel pipeline and writes the P6 stream.
//
// Rows are emitted top to bottom and columns left to right, one pixel at a
// time, on the calling goroutine. A Renderer holds no state between runs
// other than its parameters and the metrics and observers attached to it.
package render

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/san-kum/escapetime/internal/mandel"
	"github.com/san-kum/escapetime/internal/ppm"
)

type Renderer struct {
	params    mandel.Params
	metrics   []Metric
	observers []Observer
}

func New(p mandel.Params) *Renderer {
	return &Renderer{
		params:    p,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Renderer) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Renderer) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Renderer) Params() mandel.Params { return r.params }

// Render writes the full image to w. The context is checked between rows;
// on cancellation the rows already emitted are flushed and ctx.Err() is
// returned together with a partial Result, joined with the flush error if
// that flush fails.
func (r *Renderer) Render(ctx context.Context, w io.Writer) (*Result, error) {
	p := r.params
	if err := p.Validate(); err != nil {
		return nil, err
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	start := time.Now()
	result := &Result{
		Params:  p,
		Metrics: make(map[string]float64),
	}

	pw := ppm.NewWriter(w)
	if err := pw.WriteHeader(p.Width, p.Height); err != nil {
		return result, err
	}

	for row := 0; row < p.Height; row++ {
		select {
		case <-ctx.Done():
			flushErr := pw.Flush()
			result.BytesWritten = pw.Written()
			result.Elapsed = time.Since(start)
			if flushErr != nil {
				return result, errors.Join(ctx.Err(), flushErr)
			}
			return result, ctx.Err()
		default:
		}

		for col := 0; col < p.Width; col++ {
			n := mandel.Iterate(p.PixelPoint(col, row), p.MaxIterations)
			if n == p.MaxIterations {
				result.InSet++
			}
			for _, m := range r.metrics {
				m.Observe(n)
			}

			if err := pw.WritePixel(mandel.Intensity(n, p.MaxIterations)); err != nil {
				result.BytesWritten = pw.Written()
				return result, &mandel.PixelError{Row: row, Col: col, Wrapped: err}
			}
			result.Pixels++
		}

		for _, obs := range r.observers {
			obs.OnRow(row, p.Height)
		}
	}

	if err := pw.Flush(); err != nil {
		return result, err
	}

	result.BytesWritten = pw.Written()
	result.Elapsed = time.Since(start)
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RenderFile creates or truncates path and renders into it. The file is
// closed on every return path; a close error is reported when nothing
// failed earlier.
func (r *Renderer) RenderFile(ctx context.Context, path string) (result *Result, err error) {
	if err := r.params.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	result, err = r.Render(ctx, f)
	if result != nil {
		result.Path = path
	}
	return result, err
}
