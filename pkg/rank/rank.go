// Package rank orders search results for presentation: longest words first,
// ties broken alphabetically. The order is total, so the output depends only
// on which words were found.
package rank

import (
	"sort"

	"github.com/bastiangx/wordhunt/pkg/solver"
)

// Rank returns the words of rs in presentation order. It always allocates a
// new slice and never modifies rs.
func Rank(rs *solver.ResultSet) []solver.FoundWord {
	return Sort(rs.Words())
}

// Sort orders a copy of words by length descending, then lexically.
func Sort(words []solver.FoundWord) []solver.FoundWord {
	out := make([]solver.FoundWord, len(words))
	copy(out, words)
	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i].Word, out[j].Word)
	})
	return out
}

// Less is the ranking order on bare words.
func Less(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a < b
}

// Top returns the first n ranked words. The result shares the backing array
// of ranked, so it is a view rather than a copy; n beyond the end is clamped.
func Top(ranked []solver.FoundWord, n int) []solver.FoundWord {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n:n]
}
