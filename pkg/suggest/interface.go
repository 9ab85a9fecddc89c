// Package suggest is the word side of completion: prefix tries over bare
// words and the merge of their matches with registry matches.
package suggest

// WordSource is a dictionary of bare words queried by prefix.
type WordSource interface {
	// FindCompletions returns the suffixes completing prefix into a word.
	FindCompletions(prefix string) []string
}

var _ WordSource = (*Trie)(nil)
