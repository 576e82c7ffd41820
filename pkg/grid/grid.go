// Package grid models the letter board: a fixed rows x cols arrangement of
// uppercase letters with an 8-way adjacency relation.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/wordhunt/internal/utils"
)

// Blank marks a cell that has not been filled in yet.
const Blank byte = '.'

var (
	// ErrMalformedGrid is returned for ragged, empty or non-letter input.
	ErrMalformedGrid = errors.New("malformed grid")
	// ErrIncompleteGrid is returned when a search is asked for while cells are blank.
	ErrIncompleteGrid = errors.New("incomplete grid")
)

// Coord addresses one cell.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// offsets is the fixed neighbour enumeration order. The search visits
// neighbours in exactly this order, which keeps discovery deterministic.
var offsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid is immutable after construction.
type Grid struct {
	rows      int
	cols      int
	cells     []byte
	neighbors [][]int
}

// FromRows builds a grid from equal-length rows. Letters are uppercased,
// and '.', '_', '?' and ' ' are read as Blank.
func FromRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedGrid)
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: empty row", ErrMalformedGrid)
	}

	cells := make([]byte, 0, len(rows)*width)
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrMalformedGrid, r, len(row), width)
		}
		for c := 0; c < len(row); c++ {
			cell, ok := normalizeCell(row[c])
			if !ok {
				return nil, fmt.Errorf("%w: invalid character %q at %v", ErrMalformedGrid, row[c], Coord{r, c})
			}
			cells = append(cells, cell)
		}
	}
	return newGrid(len(rows), width, cells), nil
}

// Parse reads a grid of the given size from free-form text. Rows may be
// separated by '/', whitespace or newlines, or the letters may be given as a
// single run of rows*cols characters.
func Parse(s string, rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrMalformedGrid, rows, cols)
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ',' || r == '\n' || r == '\t' || r == ' ' || r == '\r'
	})
	if len(fields) == 1 {
		flat := fields[0]
		if len(flat) != rows*cols {
			return nil, fmt.Errorf("%w: got %d cells, expected %d", ErrMalformedGrid, len(flat), rows*cols)
		}
		fields = make([]string, rows)
		for r := range rows {
			fields[r] = flat[r*cols : (r+1)*cols]
		}
	}
	if len(fields) != rows {
		return nil, fmt.Errorf("%w: got %d rows, expected %d", ErrMalformedGrid, len(fields), rows)
	}
	g, err := FromRows(fields)
	if err != nil {
		return nil, err
	}
	if g.cols != cols {
		return nil, fmt.Errorf("%w: got %d columns, expected %d", ErrMalformedGrid, g.cols, cols)
	}
	return g, nil
}

func normalizeCell(c byte) (byte, bool) {
	switch c {
	case Blank, '_', '?', ' ':
		return Blank, true
	}
	return utils.NormalizeLetter(c)
}

func newGrid(rows, cols int, cells []byte) *Grid {
	g := &Grid{
		rows:      rows,
		cols:      cols,
		cells:     cells,
		neighbors: make([][]int, len(cells)),
	}
	for i := range cells {
		r, c := i/cols, i%cols
		adj := make([]int, 0, len(offsets))
		for _, off := range offsets {
			nr, nc := r+off[0], c+off[1]
			if nr >= 0 && nr < rows && nc >= 0 && nc < cols {
				adj = append(adj, nr*cols+nc)
			}
		}
		g.neighbors[i] = adj
	}
	return g
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// Size returns the number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether c addresses a cell.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Index converts c to its row-major cell index.
func (g *Grid) Index(c Coord) int {
	return c.Row*g.cols + c.Col
}

// CoordOf converts a row-major cell index back to a Coord.
func (g *Grid) CoordOf(i int) Coord {
	return Coord{Row: i / g.cols, Col: i % g.cols}
}

// LetterAt returns the cell's letter, or Blank. It panics out of bounds.
func (g *Grid) LetterAt(c Coord) byte {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("grid: %v out of bounds for %dx%d", c, g.rows, g.cols))
	}
	return g.cells[g.Index(c)]
}

// Letter returns the letter at a row-major index.
func (g *Grid) Letter(i int) byte {
	return g.cells[i]
}

// Neighbors returns the in-bounds cells adjacent to c, diagonals included,
// in the fixed order the search uses.
func (g *Grid) Neighbors(c Coord) []Coord {
	if !g.InBounds(c) {
		return nil
	}
	adj := g.neighbors[g.Index(c)]
	out := make([]Coord, len(adj))
	for i, n := range adj {
		out[i] = g.CoordOf(n)
	}
	return out
}

// NeighborIndexes is Neighbors on row-major indexes. The returned slice is
// shared and must not be modified.
func (g *Grid) NeighborIndexes(i int) []int {
	return g.neighbors[i]
}

// Complete returns ErrIncompleteGrid if any cell is still blank.
func (g *Grid) Complete() error {
	blanks := 0
	for _, c := range g.cells {
		if c == Blank {
			blanks++
		}
	}
	if blanks > 0 {
		return fmt.Errorf("%w: %d of %d cells blank", ErrIncompleteGrid, blanks, len(g.cells))
	}
	return nil
}

// RowStrings returns the grid as one string per row.
func (g *Grid) RowStrings() []string {
	out := make([]string, g.rows)
	for r := range g.rows {
		out[r] = string(g.cells[r*g.cols : (r+1)*g.cols])
	}
	return out
}

func (g *Grid) String() string {
	return strings.Join(g.RowStrings(), "/")
}
