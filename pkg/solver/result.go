package solver

import (
	"sort"

	"github.com/bastiangx/wordhunt/pkg/grid"
)

// FoundWord is a dictionary word together with one path that spells it.
type FoundWord struct {
	Word string
	Path grid.Path
}

// ordinal is the position of a discovery in the fixed enumeration order:
// start cell first, then the order hits were made from that start.
type ordinal struct {
	start int
	seq   int
}

func (o ordinal) before(p ordinal) bool {
	if o.start != p.start {
		return o.start < p.start
	}
	return o.seq < p.seq
}

type entry struct {
	found FoundWord
	ord   ordinal
}

// ResultSet maps each word to the first path found for it.
type ResultSet struct {
	entries map[string]entry
}

// NewResultSet returns an empty set.
func NewResultSet() *ResultSet {
	return &ResultSet{entries: make(map[string]entry)}
}

// add keeps fw unless an earlier discovery of the same word is present.
func (rs *ResultSet) add(fw FoundWord, ord ordinal) bool {
	if prev, ok := rs.entries[fw.Word]; ok && !ord.before(prev.ord) {
		return false
	}
	rs.entries[fw.Word] = entry{found: fw, ord: ord}
	return true
}

// Merge folds other into rs with the same first-discovery rule a single
// sequential search applies, so the merge order does not matter.
func (rs *ResultSet) Merge(other *ResultSet) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		rs.add(e.found, e.ord)
	}
}

// Len returns the number of distinct words.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.entries)
}

// Get returns the entry for word.
func (rs *ResultSet) Get(word string) (FoundWord, bool) {
	if rs == nil {
		return FoundWord{}, false
	}
	e, ok := rs.entries[word]
	return e.found, ok
}

// Words returns the found words in discovery order.
func (rs *ResultSet) Words() []FoundWord {
	if rs == nil {
		return nil
	}
	all := make([]entry, 0, len(rs.entries))
	for _, e := range rs.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ord.before(all[j].ord)
	})
	out := make([]FoundWord, len(all))
	for i, e := range all {
		out[i] = e.found
	}
	return out
}
