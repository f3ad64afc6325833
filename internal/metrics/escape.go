package metrics

import "github.com/san-kum/escapetime/internal/render"

// InSetFraction is the share of pixels whose orbit never escaped.
type InSetFraction struct {
	name          string
	maxIterations int
	inSet         int
	samples       int
}

func NewInSetFraction(maxIterations int) *InSetFraction {
	return &InSetFraction{
		name:          "in_set_fraction",
		maxIterations: maxIterations,
	}
}

func (f *InSetFraction) Name() string { return f.name }

func (f *InSetFraction) Observe(count int) {
	if count >= f.maxIterations {
		f.inSet++
	}
	f.samples++
}

func (f *InSetFraction) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.inSet) / float64(f.samples)
}

func (f *InSetFraction) Reset() {
	f.inSet = 0
	f.samples = 0
}

// MeanEscape averages the counts of escaping pixels only.
type MeanEscape struct {
	name          string
	maxIterations int
	total         int64
	samples       int
}

func NewMeanEscape(maxIterations int) *MeanEscape {
	return &MeanEscape{
		name:          "mean_escape",
		maxIterations: maxIterations,
	}
}

func (m *MeanEscape) Name() string { return m.name }

func (m *MeanEscape) Observe(count int) {
	if count >= m.maxIterations {
		return
	}
	m.total += int64(count)
	m.samples++
}

func (m *MeanEscape) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples)
}

func (m *MeanEscape) Reset() {
	m.total = 0
	m.samples = 0
}

// MaxEscape is the slowest escape seen, i.e. the brightest pixel.
type MaxEscape struct {
	name          string
	maxIterations int
	max           int
}

func NewMaxEscape(maxIterations int) *MaxEscape {
	return &MaxEscape{
		name:          "max_escape",
		maxIterations: maxIterations,
	}
}

func (m *MaxEscape) Name() string { return m.name }

func (m *MaxEscape) Observe(count int) {
	if count < m.maxIterations && count > m.max {
		m.max = count
	}
}

func (m *MaxEscape) Value() float64 { return float64(m.max) }

func (m *MaxEscape) Reset() { m.max = 0 }

// Default returns the metrics reported after every render.
func Default(maxIterations int) []render.Metric {
	return []render.Metric{
		NewInSetFraction(maxIterations),
		NewMeanEscape(maxIterations),
		NewMaxEscape(maxIterations),
	}
}
