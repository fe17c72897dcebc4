package viz

import (
	"strings"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a Braille dot grid of Width x Height cells, i.e.
// (Width*2) x (Height*4) addressable dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Trace plots values left to right, scaled so that [lo, hi] covers the
// middle of the canvas and overscroll stays visible above and below.
// Dotted guides mark lo and hi.
func (c *Canvas) Trace(values []float64, lo, hi float64) {
	w, h := c.Width*2, c.Height*4
	if len(values) == 0 || w == 0 || h == 0 {
		return
	}

	span := hi - lo
	if span <= 0 {
		span = 1
	}
	pad := span / 4
	top, bottom := lo-pad, hi+pad
	y := func(v float64) int {
		f := (v - top) / (bottom - top)
		return int(f * float64(h-1))
	}

	for x := 0; x < w; x += 3 {
		c.Set(x, y(lo))
		c.Set(x, y(hi))
	}

	step := float64(len(values)) / float64(w)
	if step < 1 {
		step = 1
	}
	px, py := -1, 0
	for x := 0; x < w; x++ {
		i := int(float64(x) * step)
		if i >= len(values) {
			break
		}
		vy := y(values[i])
		if px >= 0 {
			c.DrawLine(px, py, x, vy)
		} else {
			c.Set(x, vy)
		}
		px, py = x, vy
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
