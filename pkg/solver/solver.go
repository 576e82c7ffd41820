// Package solver finds every dictionary word that can be traced through a grid.
//
// The search is a depth-first walk from every cell. It carries a cursor into
// the lexicon trie alongside the path, so each step costs one child lookup and
// a branch is dropped the moment no word continues with its letters. The
// prefix buffer and visited marks belong to the branch being walked and are
// restored on the way back up rather than copied.
//
// Starting cells are independent, so they can be spread over a bounded set of
// goroutines. Each start collects into its own ResultSet and the sets are
// merged by discovery order, which gives exactly the answer a sequential walk
// would.
package solver

import (
	"context"
	"runtime"
	"sync"

	"github.com/bastiangx/wordhunt/internal/logger"
	"github.com/bastiangx/wordhunt/pkg/grid"
	"github.com/bastiangx/wordhunt/pkg/lexicon"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// solverLog is created on first use, after main has set the log level.
var solverLog = sync.OnceValue(func() *log.Logger {
	return logger.New("solver")
})

// DefaultMinLength is the shortest word reported unless told otherwise.
const DefaultMinLength = 3

// how many steps a walker takes between cancellation checks
const checkInterval = 1 << 10

// Options tune a Solver.
type Options struct {
	// MinLength is the shortest word to report. Values below 1 mean 1.
	MinLength int
	// Workers bounds the goroutines used per search. 0 means one per CPU,
	// 1 runs on the calling goroutine.
	Workers int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{MinLength: DefaultMinLength, Workers: 1}
}

// Solver searches grids against one lexicon. It holds no per-search state
// and may be used from several goroutines at once.
type Solver struct {
	lex  *lexicon.Lexicon
	opts Options
}

// New returns a Solver over lex.
func New(lex *lexicon.Lexicon, opts Options) *Solver {
	if opts.MinLength < 1 {
		opts.MinLength = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Solver{lex: lex, opts: opts}
}

// Search returns every word of at least MinLength letters traceable in g.
// Grids with blank cells are rejected with grid.ErrIncompleteGrid before any
// work is done. If ctx is cancelled mid-search the partial results are
// dropped and ctx.Err() is returned.
func (s *Solver) Search(ctx context.Context, g *grid.Grid) (*ResultSet, error) {
	if err := g.Complete(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rs  *ResultSet
		err error
	)
	if s.opts.Workers == 1 || g.Size() == 1 {
		rs, err = s.searchSequential(ctx, g)
	} else {
		rs, err = s.searchParallel(ctx, g)
	}
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (s *Solver) searchSequential(ctx context.Context, g *grid.Grid) (*ResultSet, error) {
	rs := NewResultSet()
	w := newWalker(ctx, g, s.lex, s.opts.MinLength, rs)
	for start := 0; start < g.Size(); start++ {
		if err := w.run(start); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

func (s *Solver) searchParallel(ctx context.Context, g *grid.Grid) (*ResultSet, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.opts.Workers)

	partial := make([]*ResultSet, g.Size())
	for start := 0; start < g.Size(); start++ {
		eg.Go(func() error {
			rs := NewResultSet()
			if err := newWalker(egCtx, g, s.lex, s.opts.MinLength, rs).run(start); err != nil {
				return err
			}
			partial[start] = rs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged := NewResultSet()
	for _, rs := range partial {
		merged.Merge(rs)
	}
	solverLog().Debugf("merged %d partial sets into %d words", len(partial), merged.Len())
	return merged, nil
}

// walker is the mutable state of one depth-first walk. A walker is owned by a
// single goroutine.
type walker struct {
	ctx     context.Context
	g       *grid.Grid
	lex     *lexicon.Lexicon
	minLen  int
	out     *ResultSet
	prefix  []byte
	path    []int
	visited []bool
	start   int
	seq     int
	steps   int
	err     error
}

func newWalker(ctx context.Context, g *grid.Grid, lex *lexicon.Lexicon, minLen int, out *ResultSet) *walker {
	return &walker{
		ctx:     ctx,
		g:       g,
		lex:     lex,
		minLen:  minLen,
		out:     out,
		prefix:  make([]byte, 0, g.Size()),
		path:    make([]int, 0, g.Size()),
		visited: make([]bool, g.Size()),
	}
}

// run walks every path beginning at the start cell.
func (w *walker) run(start int) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	w.start = start
	w.seq = 0
	w.visit(start, w.lex.Root())
	return w.err
}

func (w *walker) visit(cell int, parent *lexicon.Node) {
	if w.err != nil {
		return
	}
	w.steps++
	if w.steps%checkInterval == 0 {
		if err := w.ctx.Err(); err != nil {
			w.err = err
			return
		}
	}

	node := parent.Child(w.g.Letter(cell))
	if node == nil {
		return
	}

	w.visited[cell] = true
	w.prefix = append(w.prefix, w.g.Letter(cell))
	w.path = append(w.path, cell)

	if node.Terminal() && len(w.prefix) >= w.minLen {
		w.record()
	}

	for _, next := range w.g.NeighborIndexes(cell) {
		if !w.visited[next] {
			w.visit(next, node)
		}
	}

	w.path = w.path[:len(w.path)-1]
	w.prefix = w.prefix[:len(w.prefix)-1]
	w.visited[cell] = false
}

func (w *walker) record() {
	word := string(w.prefix)
	if _, ok := w.out.Get(word); ok {
		return
	}
	path := make(grid.Path, len(w.path))
	for i, cell := range w.path {
		path[i] = w.g.CoordOf(cell)
	}
	w.out.add(FoundWord{Word: word, Path: path}, ordinal{start: w.start, seq: w.seq})
	w.seq++
}
