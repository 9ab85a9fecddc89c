package suggest

import (
	"sort"
	"strings"

	"github.com/bastiangx/snipserve/pkg/syntax"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Trie is a dictionary of bare words answering suffix completion queries.
type Trie struct {
	trie  *patricia.Trie
	count int
}

// NewTrie returns an empty trie.
func NewTrie() *Trie {
	return &Trie{trie: patricia.NewTrie()}
}

// NewSyntaxTrie builds the keyword dictionary of a language. Lower cased
// copies are added for case insensitive languages.
func NewSyntaxTrie(s syntax.Syntax) *Trie {
	t := NewTrie()
	for _, word := range s.Words() {
		t.Push(word)
	}
	if !s.CaseSensitive {
		for _, word := range s.Words() {
			t.Push(strings.ToLower(word))
		}
	}
	log.Debugf("Built %s dictionary with %d words", s.Language, t.Len())
	return t
}

// Push inserts word. Pushing a word twice is a no-op.
func (t *Trie) Push(word string) {
	if word == "" {
		return
	}
	if t.trie.Insert(patricia.Prefix(word), true) {
		t.count++
	}
}

// Clear removes every word.
func (t *Trie) Clear() {
	t.trie = patricia.NewTrie()
	t.count = 0
}

// Len is the number of distinct words.
func (t *Trie) Len() int {
	return t.count
}

// FindCompletions returns, in lexicographic order, the suffixes that turn
// prefix into a stored word. An exact match yields the empty suffix. An
// empty prefix yields nothing; callers are expected not to ask.
func (t *Trie) FindCompletions(prefix string) []string {
	if prefix == "" {
		return nil
	}

	var suffixes []string
	err := t.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		suffixes = append(suffixes, string(p[len(prefix):]))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	sort.Strings(suffixes)
	return suffixes
}
