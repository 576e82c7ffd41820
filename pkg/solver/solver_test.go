package solver

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/wordhunt/pkg/grid"
	"github.com/bastiangx/wordhunt/pkg/lexicon"
)

func mustGrid(t testing.TB, rows ...string) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows(rows)
	if err != nil {
		t.Fatalf("bad test grid: %v", err)
	}
	return g
}

func words(rs *ResultSet) []string {
	var out []string
	for _, fw := range rs.Words() {
		out = append(out, fw.Word)
	}
	sort.Strings(out)
	return out
}

func TestSearchCatGrid(t *testing.T) {
	lex := lexicon.Build([]string{"CAT", "CATS", "AT"})
	g := mustGrid(t, "CA", "TS")

	rs, err := New(lex, Options{MinLength: 2, Workers: 1}).Search(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"AT", "CAT", "CATS"}
	if got := words(rs); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
	for _, fw := range rs.Words() {
		if !fw.Path.Valid(g) || fw.Path.Spell(g) != fw.Word {
			t.Errorf("%s has a bad path %v", fw.Word, fw.Path)
		}
	}
}

func TestSearchMinLengthFilters(t *testing.T) {
	lex := lexicon.Build([]string{"CAT", "CATS", "AT"})
	g := mustGrid(t, "CA", "TS")

	rs, _ := New(lex, DefaultOptions()).Search(context.Background(), g)
	if _, ok := rs.Get("AT"); ok {
		t.Error("AT is shorter than the default minimum")
	}
	if rs.Len() != 2 {
		t.Errorf("expected CAT and CATS, got %v", words(rs))
	}
}

func TestSearchNoWords(t *testing.T) {
	lex := lexicon.Build([]string{"DOG", "BIRD", "FISH"})
	g := mustGrid(t, "XQ", "ZJ")

	rs, err := New(lex, DefaultOptions()).Search(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Len() != 0 {
		t.Errorf("expected no words, got %v", words(rs))
	}
}

func TestSearchIncompleteGrid(t *testing.T) {
	lex := lexicon.Build([]string{"CAT"})
	g := mustGrid(t, "CA", "T.")

	rs, err := New(lex, DefaultOptions()).Search(context.Background(), g)
	if !errors.Is(err, grid.ErrIncompleteGrid) {
		t.Errorf("expected ErrIncompleteGrid, got %v", err)
	}
	if rs != nil {
		t.Error("rejected search should not return results")
	}
}

func TestSearchSmallGrids(t *testing.T) {
	lex := lexicon.Build([]string{"A", "AB", "ABC"})

	testCases := []struct {
		rows        []string
		minLength   int
		expected    []string
		description string
	}{
		{[]string{"a"}, 1, []string{"A"}, "single cell"},
		{[]string{"a"}, 3, nil, "single cell under minimum"},
		{[]string{"ab"}, 3, nil, "fewer cells than minimum"},
		{[]string{"ab"}, 0, []string{"A", "AB"}, "zero minimum treated as one"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			rs, err := New(lex, Options{MinLength: tc.minLength, Workers: 1}).Search(context.Background(), mustGrid(t, tc.rows...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := words(rs); !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

// cells may be reused across branches, never within one path
func TestSearchVisitedIsPerBranch(t *testing.T) {
	lex := lexicon.Build([]string{"ABA", "ABAB", "BAB"})
	g := mustGrid(t, "ab")

	rs, _ := New(lex, Options{MinLength: 3, Workers: 1}).Search(context.Background(), g)
	if rs.Len() != 0 {
		t.Errorf("two cells cannot spell three letters, got %v", words(rs))
	}

	g = mustGrid(t, "ab", "ba")
	rs, _ = New(lex, Options{MinLength: 3, Workers: 1}).Search(context.Background(), g)
	expected := []string{"ABA", "ABAB", "BAB"}
	if got := words(rs); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestSearchFirstPathWins(t *testing.T) {
	lex := lexicon.Build([]string{"AAA"})
	g := mustGrid(t, "aa", "aa")

	rs, _ := New(lex, Options{MinLength: 3, Workers: 1}).Search(context.Background(), g)
	fw, ok := rs.Get("AAA")
	if !ok {
		t.Fatal("AAA not found")
	}
	expected := grid.Path{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}}
	if !reflect.DeepEqual(fw.Path, expected) {
		t.Errorf("expected first path %v, got %v", expected, fw.Path)
	}
}

func TestSearchCancelled(t *testing.T) {
	lex := lexicon.Build([]string{"CAT"})
	g := mustGrid(t, "CA", "TS")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		rs, err := New(lex, Options{MinLength: 3, Workers: workers}).Search(ctx, g)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("workers=%d: expected context.Canceled, got %v", workers, err)
		}
		if rs != nil {
			t.Errorf("workers=%d: partial results leaked", workers)
		}
	}
	if !lex.IsWord("CAT") {
		t.Error("lexicon changed by an aborted search")
	}
}

func TestSearchAbortsMidWalk(t *testing.T) {
	// every self-avoiding path through the board is a live prefix, so the
	// walk cannot finish on its own
	lex := lexicon.Build([]string{strings.Repeat("A", 36)})
	rows := make([]string, 6)
	for i := range rows {
		rows[i] = strings.Repeat("A", 6)
	}
	g := mustGrid(t, rows...)

	for _, workers := range []int{1, 4} {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		start := time.Now()
		rs, err := New(lex, Options{MinLength: 3, Workers: workers}).Search(ctx, g)
		cancel()

		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("workers=%d: expected context.DeadlineExceeded, got %v", workers, err)
		}
		if rs != nil {
			t.Errorf("workers=%d: partial results leaked", workers)
		}
		if took := time.Since(start); took > 5*time.Second {
			t.Errorf("workers=%d: abort took %v", workers, took)
		}
	}
}

// randomSetup returns a grid and a dictionary that mixes words traced from
// the grid with random strings that mostly are not.
func randomSetup(t testing.TB, rng *rand.Rand, rows, cols, dictSize int) (*grid.Grid, []string) {
	t.Helper()
	const alphabet = "AEIOURSTLNCDP"
	raw := make([]string, rows)
	for r := range raw {
		b := make([]byte, cols)
		for c := range b {
			b[c] = alphabet[rng.Intn(len(alphabet))]
		}
		raw[r] = string(b)
	}
	g := mustGrid(t, raw...)

	dict := make([]string, 0, dictSize)
	for len(dict) < dictSize {
		length := 2 + rng.Intn(6)
		if rng.Intn(2) == 0 {
			b := make([]byte, length)
			for i := range b {
				b[i] = alphabet[rng.Intn(len(alphabet))]
			}
			dict = append(dict, string(b))
			continue
		}
		// random walk
		cur := rng.Intn(g.Size())
		seen := map[int]bool{cur: true}
		b := []byte{g.Letter(cur)}
		for len(b) < length {
			var options []int
			for _, n := range g.NeighborIndexes(cur) {
				if !seen[n] {
					options = append(options, n)
				}
			}
			if len(options) == 0 {
				break
			}
			cur = options[rng.Intn(len(options))]
			seen[cur] = true
			b = append(b, g.Letter(cur))
		}
		dict = append(dict, string(b))
	}
	return g, dict
}

// bruteForce enumerates every simple path with no pruning at all.
func bruteForce(g *grid.Grid, dict map[string]bool, minLen int) map[string]bool {
	found := make(map[string]bool)
	visited := make([]bool, g.Size())
	var walk func(cell int, prefix []byte)
	walk = func(cell int, prefix []byte) {
		visited[cell] = true
		prefix = append(prefix, g.Letter(cell))
		if len(prefix) >= minLen && dict[string(prefix)] {
			found[string(prefix)] = true
		}
		for _, n := range g.NeighborIndexes(cell) {
			if !visited[n] {
				walk(n, prefix)
			}
		}
		visited[cell] = false
	}
	for start := 0; start < g.Size(); start++ {
		walk(start, nil)
	}
	return found
}

func TestSearchMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		g, dict := randomSetup(t, rng, 3, 3, 200)
		lex := lexicon.Build(dict)
		set := make(map[string]bool, len(dict))
		for _, w := range dict {
			set[w] = true
		}

		expected := bruteForce(g, set, 3)
		rs, err := New(lex, Options{MinLength: 3, Workers: 1}).Search(context.Background(), g)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}

		if rs.Len() != len(expected) {
			t.Errorf("round %d (%s): expected %d words, got %d", round, g, len(expected), rs.Len())
		}
		for _, fw := range rs.Words() {
			if !expected[fw.Word] {
				t.Errorf("round %d: unexpected word %s", round, fw.Word)
			}
			if !fw.Path.Valid(g) || fw.Path.Spell(g) != fw.Word {
				t.Errorf("round %d: %s has bad path %v", round, fw.Word, fw.Path)
			}
		}
	}
}

func TestSearchParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 5; round++ {
		g, dict := randomSetup(t, rng, 4, 4, 2000)
		lex := lexicon.Build(dict)

		seq, err := New(lex, Options{MinLength: 3, Workers: 1}).Search(context.Background(), g)
		if err != nil {
			t.Fatalf("sequential: %v", err)
		}
		for _, workers := range []int{2, 3, 8} {
			par, err := New(lex, Options{MinLength: 3, Workers: workers}).Search(context.Background(), g)
			if err != nil {
				t.Fatalf("parallel: %v", err)
			}
			if !reflect.DeepEqual(seq.Words(), par.Words()) {
				t.Errorf("round %d workers=%d: parallel result differs from sequential", round, workers)
			}
		}

		again, _ := New(lex, Options{MinLength: 3, Workers: 1}).Search(context.Background(), g)
		if !reflect.DeepEqual(seq.Words(), again.Words()) {
			t.Errorf("round %d: repeated search is not deterministic", round)
		}
	}
}

func TestResultSetMergeKeepsEarliest(t *testing.T) {
	early := NewResultSet()
	early.add(FoundWord{Word: "CAT", Path: grid.Path{{Row: 0, Col: 0}}}, ordinal{start: 0, seq: 3})
	late := NewResultSet()
	late.add(FoundWord{Word: "CAT", Path: grid.Path{{Row: 1, Col: 1}}}, ordinal{start: 2, seq: 0})
	late.add(FoundWord{Word: "DOG", Path: grid.Path{{Row: 1, Col: 0}}}, ordinal{start: 2, seq: 1})

	a := NewResultSet()
	a.Merge(late)
	a.Merge(early)
	b := NewResultSet()
	b.Merge(early)
	b.Merge(late)

	if !reflect.DeepEqual(a.Words(), b.Words()) {
		t.Error("merge depends on order")
	}
	fw, _ := a.Get("CAT")
	if fw.Path[0] != (grid.Coord{Row: 0, Col: 0}) {
		t.Errorf("expected the earlier CAT path, got %v", fw.Path)
	}
	if a.Len() != 2 {
		t.Errorf("expected 2 words, got %d", a.Len())
	}
}

func BenchmarkSearch4x4(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	g, dict := randomSetup(b, rng, 4, 4, 20000)
	s := New(lexicon.Build(dict), Options{MinLength: 3, Workers: 1})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Search(context.Background(), g); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearch5x5Parallel(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	g, dict := randomSetup(b, rng, 5, 5, 20000)
	s := New(lexicon.Build(dict), Options{MinLength: 3, Workers: 0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Search(context.Background(), g); err != nil {
			b.Fatal(err)
		}
	}
}

func TestSolverLoggerShared(t *testing.T) {
	if solverLog() != solverLog() {
		t.Error("expected one solver logger per process")
	}
}
