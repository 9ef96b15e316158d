package viz

import (
	"math"
	"strings"
)

// dotBits maps a dot inside a braille cell, indexed [row][col], to its bit
// in the pattern. Cells are 2 dots wide and 4 tall; the glyph is
// brailleBase plus the OR of the lit bits.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a grid of braille cells addressed in dots. Dot (0, 0) is the
// top left and (2*cols-1, 4*rows-1) the bottom right.
type Canvas struct {
	cols, rows int
	cells      []uint8
}

func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{cols: cols, rows: rows, cells: make([]uint8, cols*rows)}
}

// Dots is the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return 2 * c.cols, 4 * c.rows }

// cell returns the index of the cell holding dot (x, y) and the dot's bit.
func (c *Canvas) cell(x, y int) (int, uint8, bool) {
	if x < 0 || y < 0 || x >= 2*c.cols || y >= 4*c.rows {
		return 0, 0, false
	}
	return (y/4)*c.cols + x/2, dotBits[y%4][x%2], true
}

// Set lights a dot. Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if i, bit, ok := c.cell(x, y); ok {
		c.cells[i] |= bit
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	i, bit, ok := c.cell(x, y)
	return ok && c.cells[i]&bit != 0
}

func (c *Canvas) Clear() { clear(c.cells) }

// Line lights the dots between two points, one per step along the longer
// axis.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	n := max(absInt(dx), absInt(dy))
	if n == 0 {
		c.Set(x0, y0)
		return
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		c.Set(x0+int(math.Round(t*float64(dx))), y0+int(math.Round(t*float64(dy))))
	}
}

// Circle draws an outline of radius r dots; r below one is a single dot.
func (c *Canvas) Circle(cx, cy int, r float64) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	n := max(8, int(2*math.Pi*r))
	for i := range n {
		th := 2 * math.Pi * float64(i) / float64(n)
		c.Set(cx+int(math.Round(r*math.Cos(th))), cy+int(math.Round(r*math.Sin(th))))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.rows * (3*c.cols + 1))
	for row := range c.rows {
		for _, bits := range c.cells[row*c.cols : (row+1)*c.cols] {
			b.WriteRune(brailleBase + rune(bits))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
