// Package text renders exports as delimited text, one line per row.
package text

import (
	"io"
	"strings"
)

// Grid is a sparse table of strings addressed by row and column. Missing
// cells render as empty strings.
type Grid struct {
	cells  map[[2]int]string
	maxRow int
	maxCol int
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{cells: make(map[[2]int]string), maxRow: -1, maxCol: -1}
}

// Set stores value at row, col, replacing any previous value.
func (g *Grid) Set(row, col int, value string) {
	g.cells[[2]int{row, col}] = value
	g.maxRow = max(g.maxRow, row)
	g.maxCol = max(g.maxCol, col)
}

// Get returns the value at row, col or "".
func (g *Grid) Get(row, col int) string {
	return g.cells[[2]int{row, col}]
}

// Rows is one past the highest row set.
func (g *Grid) Rows() int {
	return g.maxRow + 1
}

// Cols is one past the highest column set.
func (g *Grid) Cols() int {
	return g.maxCol + 1
}

// Render writes every row from 0 to the last, each with Cols cells joined
// by sep and terminated by lineEnd. An empty grid renders nothing.
func (g *Grid) Render(w io.Writer, sep, lineEnd string) (int64, error) {
	var b strings.Builder
	for row := 0; row <= g.maxRow; row++ {
		for col := 0; col <= g.maxCol; col++ {
			if col > 0 {
				b.WriteString(sep)
			}
			b.WriteString(g.Get(row, col))
		}
		b.WriteString(lineEnd)
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
