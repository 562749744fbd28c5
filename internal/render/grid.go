// Package render draws glucose history as plain text charts.
package render

import "strings"

// Grid is a fixed-size canvas of runes with row 0 at the top.
type Grid struct {
	Width  int
	Height int
	cells  []rune
}

// NewGrid creates a blank grid.
func NewGrid(width, height int) *Grid {
	cells := make([]rune, width*height)
	for i := range cells {
		cells[i] = ' '
	}
	return &Grid{Width: width, Height: height, cells: cells}
}

// Set writes r at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.cells[y*g.Width+x] = r
}

// At returns the rune at (x, y), or a space when out of bounds.
func (g *Grid) At(x, y int) rune {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return ' '
	}
	return g.cells[y*g.Width+x]
}

// Row returns row y as a string.
func (g *Grid) Row(y int) string {
	if y < 0 || y >= g.Height {
		return ""
	}
	return string(g.cells[y*g.Width : (y+1)*g.Width])
}

// String renders every row, one per line.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.Height; y++ {
		b.WriteString(g.Row(y))
		b.WriteByte('\n')
	}
	return b.String()
}
