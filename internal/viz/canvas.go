package viz

import "strings"

// Canvas is a rune grid with a world-to-cell mapping. World X spans the
// width symmetrically around zero; world Y starts at the floor and grows
// upward, so row zero of the grid is the highest world row.
type Canvas struct {
	w, h   int
	cells  [][]rune
	worldW float64
	worldH float64
}

func NewCanvas(w, h int, worldW, worldH float64) *Canvas {
	c := &Canvas{w: w, h: h, worldW: worldW, worldH: worldH}
	c.cells = make([][]rune, h)
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = ' '
		}
	}
}

func (c *Canvas) cell(wx, wy float64) (int, int, bool) {
	x := int((wx/c.worldW + 0.5) * float64(c.w-1))
	y := c.h - 1 - int(wy/c.worldH*float64(c.h-1))
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return 0, 0, false
	}
	return x, y, true
}

// Plot draws a rune at world coordinates; off-canvas points are dropped.
func (c *Canvas) Plot(wx, wy float64, r rune) {
	if x, y, ok := c.cell(wx, wy); ok {
		c.cells[y][x] = r
	}
}

// HLine draws a horizontal run of runes centered on a world point.
func (c *Canvas) HLine(wx, wy, halfExtent float64, r rune) {
	step := c.worldW / float64(c.w-1)
	for x := wx - halfExtent; x <= wx+halfExtent; x += step {
		c.Plot(x, wy, r)
	}
}

// Line draws a straight segment between two world points.
func (c *Canvas) Line(x0, y0, x1, y1 float64, r rune) {
	const segments = 24
	for i := 0; i <= segments; i++ {
		t := float64(i) / segments
		c.Plot(x0+(x1-x0)*t, y0+(y1-y0)*t, r)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for y := range c.cells {
		b.WriteString(string(c.cells[y]))
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
