package rank

import (
	"context"
	"reflect"
	"testing"

	"github.com/bastiangx/wordhunt/pkg/grid"
	"github.com/bastiangx/wordhunt/pkg/lexicon"
	"github.com/bastiangx/wordhunt/pkg/solver"
)

func search(t *testing.T, dict []string, rows ...string) *solver.ResultSet {
	t.Helper()
	g, err := grid.FromRows(rows)
	if err != nil {
		t.Fatalf("bad grid: %v", err)
	}
	rs, err := solver.New(lexicon.Build(dict), solver.Options{MinLength: 3, Workers: 1}).Search(context.Background(), g)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	return rs
}

func wordsOf(fws []solver.FoundWord) []string {
	out := make([]string, len(fws))
	for i, fw := range fws {
		out[i] = fw.Word
	}
	return out
}

func TestRankOrder(t *testing.T) {
	dict := []string{"TEA", "TEAR", "RATE", "EAT", "ATE", "TAR", "RAT", "ART", "TREAT"}
	rs := search(t, dict, "TEA", "RTX")

	ranked := Rank(rs)
	got := wordsOf(ranked)

	for i := 1; i < len(got); i++ {
		if Less(got[i], got[i-1]) {
			t.Errorf("inversion at %d: %s before %s", i, got[i-1], got[i])
		}
		if got[i] == got[i-1] {
			t.Errorf("duplicate %s", got[i])
		}
	}
	if len(got) == 0 || len(got[0]) < len(got[len(got)-1]) {
		t.Errorf("expected longest words first, got %v", got)
	}
}

func TestLess(t *testing.T) {
	testCases := []struct {
		a, b     string
		expected bool
	}{
		{"CATS", "CAT", true},
		{"CAT", "CATS", false},
		{"ACT", "CAT", true},
		{"CAT", "ACT", false},
		{"CAT", "CAT", false},
	}

	for _, tc := range testCases {
		if got := Less(tc.a, tc.b); got != tc.expected {
			t.Errorf("Less(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestRankIsPure(t *testing.T) {
	rs := search(t, []string{"CAT", "CATS", "ACT", "SAT", "TAS"}, "CA", "TS")

	first := Rank(rs)
	second := Rank(rs)
	if !reflect.DeepEqual(first, second) {
		t.Error("ranking the same set twice gave different sequences")
	}
	if !reflect.DeepEqual(Sort(first), first) {
		t.Error("re-sorting a ranked sequence changed it")
	}
	expected := []string{"CATS", "ACT", "CAT", "SAT", "TAS"}
	if got := wordsOf(first); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestSortLeavesInputAlone(t *testing.T) {
	in := []solver.FoundWord{{Word: "AB"}, {Word: "ABC"}}
	Sort(in)
	if in[0].Word != "AB" {
		t.Error("Sort modified its input")
	}
}

func TestTop(t *testing.T) {
	ranked := []solver.FoundWord{{Word: "CATS"}, {Word: "ACT"}, {Word: "CAT"}}

	testCases := []struct {
		n        int
		expected []string
	}{
		{0, []string{}},
		{2, []string{"CATS", "ACT"}},
		{10, []string{"CATS", "ACT", "CAT"}},
		{-1, []string{}},
	}

	for _, tc := range testCases {
		view := Top(ranked, tc.n)
		if got := wordsOf(view); !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("Top(%d) = %v, want %v", tc.n, got, tc.expected)
		}
	}

	view := Top(ranked, 2)
	_ = append(view, solver.FoundWord{Word: "ZZZ"})
	if ranked[2].Word != "CAT" {
		t.Error("appending to a view overwrote the ranked slice")
	}
}
