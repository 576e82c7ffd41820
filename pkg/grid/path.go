package grid

// Path is a sequence of cells traced across the grid.
type Path []Coord

// Valid reports whether p is a simple path in g: every cell in bounds,
// none repeated, and each adjacent to the one before it.
func (p Path) Valid(g *Grid) bool {
	seen := make(map[Coord]bool, len(p))
	for i, c := range p {
		if !g.InBounds(c) || seen[c] {
			return false
		}
		seen[c] = true
		if i > 0 && !Adjacent(p[i-1], c) {
			return false
		}
	}
	return true
}

// Spell returns the letters along p.
func (p Path) Spell(g *Grid) string {
	buf := make([]byte, len(p))
	for i, c := range p {
		buf[i] = g.LetterAt(c)
	}
	return string(buf)
}

// Adjacent reports whether a and b touch horizontally, vertically or diagonally.
func Adjacent(a, b Coord) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	if a == b {
		return false
	}
	return dr >= -1 && dr <= 1 && dc >= -1 && dc <= 1
}
