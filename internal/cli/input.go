// Package cli reads board letters from the keyboard and prints the words
// found once every cell is filled.
package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordhunt/internal/display"
	"github.com/bastiangx/wordhunt/internal/utils"
	"github.com/bastiangx/wordhunt/pkg/grid"
	"github.com/bastiangx/wordhunt/pkg/rank"
	"github.com/bastiangx/wordhunt/pkg/solver"
	"github.com/charmbracelet/log"
)

// Commands recognised on a line of their own.
const (
	cmdQuit  = ":q"
	cmdClear = ":clear"
	cmdSolve = ":solve"
	cmdPaths = ":paths"
)

// InputHandler fills a board from typed lines. Letters go into the next
// empty cell, a line of dashes deletes that many cells, and the board is
// solved as soon as it is full.
type InputHandler struct {
	solver   *solver.Solver
	renderer *display.Renderer
	builder  *grid.Builder
	height   func() int

	in  io.Reader
	out io.Writer

	solveCount int
}

// NewInputHandler returns a handler for a rows x cols board. height reports
// the number of terminal lines available for output.
func NewInputHandler(s *solver.Solver, r *display.Renderer, rows, cols int, height func() int, in io.Reader, out io.Writer) *InputHandler {
	if height == nil {
		height = func() int {
			_, h := display.Viewport()
			return h
		}
	}
	return &InputHandler{
		solver:   s,
		renderer: r,
		builder:  grid.NewBuilder(rows, cols),
		height:   height,
		in:       in,
		out:      out,
	}
}

// Start runs the input loop until :q, end of input or ctx is cancelled.
func (h *InputHandler) Start(ctx context.Context) error {
	log.Print("WordHunt CLI")
	log.Print("type the board letters row by row, '-' deletes, :solve, :clear, :paths, :q to exit")

	scanner := bufio.NewScanner(h.in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		h.prompt()
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == cmdQuit {
			return nil
		}
		h.handleInput(ctx, line)
	}
}

// handleInput applies a single line to the board.
func (h *InputHandler) handleInput(ctx context.Context, line string) {
	switch {
	case line == cmdClear:
		h.builder.Reset()
		return
	case line == cmdSolve:
		h.solve(ctx)
		return
	case line == cmdPaths:
		h.renderer.ShowPaths = !h.renderer.ShowPaths
		log.Infof("paths: %v", h.renderer.ShowPaths)
		return
	case strings.Trim(line, "-") == "":
		for range len(line) {
			h.builder.Delete()
		}
		return
	case strings.HasPrefix(line, ":"):
		log.Warnf("Unknown command: %s", line)
		return
	}

	h.builder.AddString(line)
	if skipped := nonLetters(line); skipped > 0 {
		log.Debugf("Ignored %d characters in %q", skipped, line)
	}
	if h.builder.Full() {
		h.solve(ctx)
	}
}

// solve searches the current board and prints the results. A full board is
// cleared afterwards so the next one can be typed.
func (h *InputHandler) solve(ctx context.Context) {
	g := h.builder.Grid()

	start := time.Now()
	rs, err := h.solver.Search(ctx, g)
	if err != nil {
		if errors.Is(err, grid.ErrIncompleteGrid) {
			log.Warnf("%d cells are still blank", g.Size()-h.builder.Len())
			return
		}
		log.Errorf("Search failed: %v", err)
		return
	}
	ranked := rank.Rank(rs)
	log.Debugf("Took [ %v ] for board %s", time.Since(start), g)

	h.solveCount++
	if len(ranked) == 0 {
		log.Warnf("No words found on %s", g)
	}
	if _, err := h.renderer.Render(h.out, g, ranked, h.height()); err != nil {
		log.Errorf("Writing results: %v", err)
	}
	h.builder.Reset()
}

// nonLetters counts the characters of line that can never become a cell.
func nonLetters(line string) int {
	n := 0
	for i := 0; i < len(line); i++ {
		if _, ok := utils.NormalizeLetter(line[i]); !ok {
			n++
		}
	}
	return n
}
