package viz

// Thumbnail draws in-set pixels onto a braille canvas as a render runs.
// Pixel positions are recovered from the observation order, which is
// row-major, so it must observe every pixel of exactly one render.
type Thumbnail struct {
	canvas        *Canvas
	width         int
	height        int
	maxIterations int
	index         int
	lit           int
}

// NewThumbnail sizes the canvas to cols x rows characters for a
// width x height render.
func NewThumbnail(cols, rows, width, height, maxIterations int) *Thumbnail {
	return &Thumbnail{
		canvas:        NewCanvas(cols, rows),
		width:         width,
		height:        height,
		maxIterations: maxIterations,
	}
}

func (t *Thumbnail) Name() string { return "thumbnail_dots" }

func (t *Thumbnail) Observe(count int) {
	col := t.index % t.width
	row := t.index / t.width
	t.index++

	if count < t.maxIterations || row >= t.height {
		return
	}

	x := col * t.canvas.Width * 2 / t.width
	y := row * t.canvas.Height * 4 / t.height
	if !t.canvas.IsSet(x, y) {
		t.canvas.Set(x, y)
		t.lit++
	}
}

// Value is the number of lit dots.
func (t *Thumbnail) Value() float64 { return float64(t.lit) }

func (t *Thumbnail) Reset() {
	t.canvas.Clear()
	t.index = 0
	t.lit = 0
}

func (t *Thumbnail) String() string { return t.canvas.String() }
