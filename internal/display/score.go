package display

import "github.com/bastiangx/wordhunt/pkg/solver"

// Scorer turns word lengths into points. It is presentation only: the
// ranking never looks at it.
type Scorer struct {
	points []int
	extra  int
}

// NewScorer uses points[n] for an n-letter word, and for longer words the
// last entry plus extra per additional letter.
func NewScorer(points []int, extra int) Scorer {
	return Scorer{points: append([]int(nil), points...), extra: extra}
}

// Points returns the value of a single word.
func (s Scorer) Points(word string) int {
	n := len(word)
	if len(s.points) == 0 {
		return 0
	}
	if n < len(s.points) {
		return s.points[n]
	}
	last := len(s.points) - 1
	return s.points[last] + s.extra*(n-last)
}

// Total sums the points of every word.
func (s Scorer) Total(words []solver.FoundWord) int {
	total := 0
	for _, fw := range words {
		total += s.Points(fw.Word)
	}
	return total
}
