// Package display draws a solved board and as many ranked words as the
// terminal has room for.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/wordhunt/internal/utils"
	"github.com/bastiangx/wordhunt/pkg/grid"
	"github.com/bastiangx/wordhunt/pkg/rank"
	"github.com/bastiangx/wordhunt/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// fallback viewport when stdout is not a terminal
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Fit returns how many of total results fit in height lines once reserved
// lines are set aside.
func Fit(total, height, reserved int) int {
	room := height - reserved
	if room < 0 {
		return 0
	}
	if room > total {
		return total
	}
	return room
}

// Viewport returns the size of the terminal on stdout, or 80x24.
func Viewport() (width, height int) {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return defaultWidth, defaultHeight
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}
	return w, h
}

// Styles are the lipgloss styles used by the Renderer.
type Styles struct {
	Board  lipgloss.Style
	Cell   lipgloss.Style
	Header lipgloss.Style
	Word   lipgloss.Style
	Points lipgloss.Style
	Path   lipgloss.Style
	Muted  lipgloss.Style
}

// DefaultStyles matches the colours of the version banner.
func DefaultStyles() Styles {
	text := lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}
	accent := lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}
	muted := lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"}

	return Styles{
		Board:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Bold(true).Foreground(text),
		Header: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Word:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Points: lipgloss.NewStyle().Foreground(text),
		Path:   lipgloss.NewStyle().Italic(true).Foreground(muted),
		Muted:  lipgloss.NewStyle().Foreground(muted),
	}
}

// Renderer draws boards and result lists.
type Renderer struct {
	Scorer        Scorer
	Styles        Styles
	ShowPaths     bool
	ReservedLines int
}

// NewRenderer returns a Renderer with the default styles.
func NewRenderer(scorer Scorer, showPaths bool, reservedLines int) *Renderer {
	return &Renderer{
		Scorer:        scorer,
		Styles:        DefaultStyles(),
		ShowPaths:     showPaths,
		ReservedLines: reservedLines,
	}
}

// Board renders the grid as a bordered panel.
func (r *Renderer) Board(g *grid.Grid) string {
	lines := make([]string, g.Rows())
	for row := range g.Rows() {
		cells := make([]string, g.Cols())
		for col := range g.Cols() {
			cells[col] = r.Styles.Cell.Render(string(g.LetterAt(grid.Coord{Row: row, Col: col})))
		}
		lines[row] = strings.Join(cells, " ")
	}
	return r.Styles.Board.Render(strings.Join(lines, "\n"))
}

// Render writes the board, a summary line and the ranked words that fit in
// height lines. ranked is read, never reordered. It returns how many words
// were shown.
func (r *Renderer) Render(w io.Writer, g *grid.Grid, ranked []solver.FoundWord, height int) (int, error) {
	board := r.Board(g)
	used := lipgloss.Height(board) + 1
	shown := rank.Top(ranked, Fit(len(ranked), height-used, r.ReservedLines))

	header := r.Styles.Header.Render(fmt.Sprintf("%d words, %s points", len(ranked), utils.FormatWithCommas(r.Scorer.Total(ranked))))
	if len(shown) < len(ranked) {
		header += r.Styles.Muted.Render(fmt.Sprintf("  (showing %d)", len(shown)))
	}

	var b strings.Builder
	b.WriteString(board)
	b.WriteByte('\n')
	b.WriteString(header)
	b.WriteByte('\n')
	for i, fw := range shown {
		b.WriteString(r.line(i, fw))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return len(shown), err
}

func (r *Renderer) line(i int, fw solver.FoundWord) string {
	s := fmt.Sprintf("%3d. %s %s", i+1,
		r.Styles.Word.Render(fmt.Sprintf("%-16s", fw.Word)),
		r.Styles.Points.Render(fmt.Sprintf("%6s", utils.FormatWithCommas(r.Scorer.Points(fw.Word)))))
	if r.ShowPaths {
		s += "  " + r.Styles.Path.Render(FormatPath(fw.Path))
	}
	return s
}

// FormatPath renders a path as space-separated (row,col) pairs.
func FormatPath(p grid.Path) string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
