/*
Package dictionary loads the word list the lexicon is built from.

Words are normalised to uppercase and kept once each in a patricia trie,
with the line they first appeared on as the item. The store is the
deduplicated source of truth for the list: the lexicon is built from
Words(), and WithPrefix answers dictionary probes from the IPC server
without touching the search index.
*/
package dictionary

import (
	"sort"

	"github.com/bastiangx/wordhunt/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Store is the normalised, deduplicated word list.
type Store struct {
	trie  *patricia.Trie
	count int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{trie: patricia.NewTrie()}
}

// add inserts an already normalised word, reporting false for duplicates.
func (s *Store) add(word string, line int) bool {
	if !s.trie.Insert(patricia.Prefix(word), line) {
		return false
	}
	s.count++
	return true
}

// Add normalises and inserts word. It reports whether the word was new.
func (s *Store) Add(word string) bool {
	norm, ok := utils.NormalizeWord(word)
	if !ok {
		return false
	}
	return s.add(norm, 0)
}

// Len returns the number of distinct words.
func (s *Store) Len() int {
	return s.count
}

// Contains reports whether word is in the list, ignoring case.
func (s *Store) Contains(word string) bool {
	norm, ok := utils.NormalizeWord(word)
	return ok && s.trie.Match(patricia.Prefix(norm))
}

// Line returns the line a word was first read from, 0 if added directly.
func (s *Store) Line(word string) (int, bool) {
	norm, ok := utils.NormalizeWord(word)
	if !ok {
		return 0, false
	}
	item := s.trie.Get(patricia.Prefix(norm))
	if item == nil {
		return 0, false
	}
	line, ok := item.(int)
	return line, ok
}

// Words returns every word in lexical order.
func (s *Store) Words() []string {
	words := make([]string, 0, s.count)
	err := s.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		words = append(words, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting dictionary trie: %v", err)
	}
	sort.Strings(words)
	return words
}

// WithPrefix returns up to limit words starting with prefix, longest first
// and alphabetical within a length, the same order search results use.
// A limit below 1 returns every match.
func (s *Store) WithPrefix(prefix string, limit int) []string {
	var matches []string
	collect := func(p patricia.Prefix, _ patricia.Item) error {
		matches = append(matches, string(p))
		return nil
	}

	var err error
	if prefix == "" {
		err = s.trie.Visit(collect)
	} else {
		norm, ok := utils.NormalizeWord(prefix)
		if !ok {
			return nil
		}
		err = s.trie.VisitSubtree(patricia.Prefix(norm), collect)
	}
	if err != nil {
		log.Errorf("Error visiting dictionary subtree: %v", err)
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if len(matches[i]) != len(matches[j]) {
			return len(matches[i]) > len(matches[j])
		}
		return matches[i] < matches[j]
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
