package metrics

// Histogram counts pixels per escape value, in-set pixels included in the
// last bin. Its Value is the most common escape count.
type Histogram struct {
	name  string
	bins  []int64
	total int64
}

func NewHistogram(maxIterations int) *Histogram {
	return &Histogram{
		name: "mode_escape",
		bins: make([]int64, maxIterations+1),
	}
}

func (h *Histogram) Name() string { return h.name }

func (h *Histogram) Observe(count int) {
	if count < 0 {
		return
	}
	if count >= len(h.bins) {
		count = len(h.bins) - 1
	}
	h.bins[count]++
	h.total++
}

func (h *Histogram) Value() float64 {
	mode := 0
	for i, c := range h.bins {
		if c > h.bins[mode] {
			mode = i
		}
	}
	return float64(mode)
}

func (h *Histogram) Reset() {
	for i := range h.bins {
		h.bins[i] = 0
	}
	h.total = 0
}

func (h *Histogram) Total() int64 { return h.total }

// Bins returns a copy of the per-count totals.
func (h *Histogram) Bins() []int64 {
	out := make([]int64, len(h.bins))
	copy(out, h.bins)
	return out
}

// Escaped returns the bins for counts below the iteration budget.
func (h *Histogram) Escaped() []int64 {
	return h.Bins()[:len(h.bins)-1]
}

// Buckets sums the escaped bins into n equal-width buckets for plotting.
func (h *Histogram) Buckets(n int) []float64 {
	escaped := h.Escaped()
	if n <= 0 || len(escaped) == 0 {
		return nil
	}
	if n > len(escaped) {
		n = len(escaped)
	}

	out := make([]float64, n)
	for i, c := range escaped {
		out[i*n/len(escaped)] += float64(c)
	}
	return out
}
