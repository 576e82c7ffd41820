// Package lexicon is the prefix index the grid search walks.
//
// Words are stored uppercase in a plain 26-way trie. Every node knows whether
// the letters on the way down to it spell a whole word, so the search can
// advance one letter at a time and stop as soon as a branch leaves the tree.
// A Lexicon is immutable once built and safe to share between goroutines.
package lexicon

import "github.com/bastiangx/wordhunt/internal/utils"

// Node is one prefix position in the trie.
type Node struct {
	children [26]*Node
	terminal bool
}

// Child returns the node reached by appending letter, or nil if no word
// continues that way. letter must be an uppercase ASCII letter.
func (n *Node) Child(letter byte) *Node {
	if n == nil || letter < 'A' || letter > 'Z' {
		return nil
	}
	return n.children[letter-'A']
}

// Terminal reports whether the prefix ending at n is itself a word.
func (n *Node) Terminal() bool {
	return n != nil && n.terminal
}

// Lexicon owns the root node of the trie.
type Lexicon struct {
	root    *Node
	words   int
	nodes   int
	skipped int
}

// Build inserts every word into a new Lexicon. Words are trimmed and
// uppercased; empty or non-alphabetic entries are skipped and counted.
func Build(words []string) *Lexicon {
	l := &Lexicon{root: &Node{}, nodes: 1}
	for _, w := range words {
		norm, ok := utils.NormalizeWord(w)
		if !ok {
			l.skipped++
			continue
		}
		l.insert(norm)
	}
	return l
}

func (l *Lexicon) insert(word string) {
	node := l.root
	for i := 0; i < len(word); i++ {
		idx := word[i] - 'A'
		next := node.children[idx]
		if next == nil {
			next = &Node{}
			node.children[idx] = next
			l.nodes++
		}
		node = next
	}
	if !node.terminal {
		node.terminal = true
		l.words++
	}
}

// Root returns the node for the empty prefix.
func (l *Lexicon) Root() *Node {
	return l.root
}

// find walks s from the root, normalising case as it goes.
func (l *Lexicon) find(s string) *Node {
	node := l.root
	for i := 0; i < len(s) && node != nil; i++ {
		c, ok := utils.NormalizeLetter(s[i])
		if !ok {
			return nil
		}
		node = node.Child(c)
	}
	return node
}

// HasPrefix reports whether some word starts with s. The empty prefix is
// always true, even for an empty lexicon.
func (l *Lexicon) HasPrefix(s string) bool {
	return l.find(s) != nil
}

// IsWord reports whether s was inserted.
func (l *Lexicon) IsWord(s string) bool {
	return len(s) > 0 && l.find(s).Terminal()
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int {
	return l.words
}

// Nodes returns the number of trie nodes, root included.
func (l *Lexicon) Nodes() int {
	return l.nodes
}

// Skipped returns how many inputs Build rejected as malformed.
func (l *Lexicon) Skipped() int {
	return l.skipped
}
