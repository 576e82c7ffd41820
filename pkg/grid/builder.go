package grid

import "github.com/bastiangx/wordhunt/internal/utils"

// Builder fills a grid one letter at a time in row-major order, the way the
// letters are typed in from the keyboard.
type Builder struct {
	rows, cols int
	letters    []byte
}

// NewBuilder returns an empty builder for a rows x cols grid.
func NewBuilder(rows, cols int) *Builder {
	return &Builder{
		rows:    rows,
		cols:    cols,
		letters: make([]byte, 0, rows*cols),
	}
}

// Add appends a letter. Non-letters and input past the last cell are
// ignored; the return value reports whether the letter was taken.
func (b *Builder) Add(c byte) bool {
	if b.Full() {
		return false
	}
	letter, ok := utils.NormalizeLetter(c)
	if !ok {
		return false
	}
	b.letters = append(b.letters, letter)
	return true
}

// AddString feeds every byte of s to Add and returns how many were taken.
func (b *Builder) AddString(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if b.Add(s[i]) {
			n++
		}
	}
	return n
}

// Delete clears the most recently filled cell.
func (b *Builder) Delete() {
	if len(b.letters) > 0 {
		b.letters = b.letters[:len(b.letters)-1]
	}
}

// Reset clears every cell.
func (b *Builder) Reset() {
	b.letters = b.letters[:0]
}

// Len returns the number of filled cells.
func (b *Builder) Len() int { return len(b.letters) }

// Full reports whether every cell has a letter.
func (b *Builder) Full() bool { return len(b.letters) == b.rows*b.cols }

// Letters returns the letters typed so far.
func (b *Builder) Letters() string { return string(b.letters) }

// Grid snapshots the current state; unfilled cells are Blank.
func (b *Builder) Grid() *Grid {
	cells := make([]byte, b.rows*b.cols)
	n := copy(cells, b.letters)
	for i := n; i < len(cells); i++ {
		cells[i] = Blank
	}
	return newGrid(b.rows, b.cols, cells)
}
