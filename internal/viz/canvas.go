package viz

import "strings"

// Dot bits of a braille cell, indexed [y%4][x%2]. The Unicode layout is
// column-major for the first three rows, with the bottom row added later.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a cols x rows grid of braille characters addressed in dots:
// Width*2 dots across and Height*4 dots down.
type Canvas struct {
	Width, Height int
	cells         []uint8
}

func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{
		Width:  cols,
		Height: rows,
		cells:  make([]uint8, cols*rows),
	}
}

func (c *Canvas) cell(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return 0, false
	}
	return (y/4)*c.Width + x/2, true
}

// Set lights the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if i, ok := c.cell(x, y); ok {
		c.cells[i] |= dotBits[y%4][x%2]
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	i, ok := c.cell(x, y)
	return ok && c.cells[i]&dotBits[y%4][x%2] != 0
}

// Cell returns the character at column col, row row.
func (c *Canvas) Cell(col, row int) rune {
	return brailleBlank + rune(c.cells[row*c.Width+col])
}

func (c *Canvas) Clear() {
	clear(c.cells)
}

func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.Height * (c.Width*3 + 1))
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			sb.WriteRune(c.Cell(col, row))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
