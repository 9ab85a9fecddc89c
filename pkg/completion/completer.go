/*
Package completion drives an autocomplete popup for a code editor.

A Completer is fed the document text and cursor after every keystroke. It
resolves the prefix being typed, merges matches from the language
dictionary, the words learned from the document and the custom type
registry, and keeps track of the selected candidate.

	c := completion.NewCompleter(syntax.JavaScript(), completion.WithLearnedWords(tok))
	c.Registry().RegisterGlobalSnippet("foreach", "for (const $item of items) {\n}")

	c.DocumentChanged(text)     // on edits only
	c.Update(text, selection)   // on every keystroke or cursor move
	c.Next()                    // arrow down
	if edit, ok := c.Confirm(); ok {
		edit.Apply(buffer)      // tab or enter
	}

# States

A completer is Idle without a prefix, Suggesting when candidates exist and
Navigating once the selection was moved. Confirm and Dismiss return it to
Idle. Dismiss keeps the popup closed until the cursor moves.

A Completer is not safe for concurrent use.
*/
package completion

import (
	"github.com/bastiangx/snipserve/pkg/prefix"
	"github.com/bastiangx/snipserve/pkg/registry"
	"github.com/bastiangx/snipserve/pkg/suggest"
	"github.com/bastiangx/snipserve/pkg/syntax"
	"github.com/charmbracelet/log"
)

// Tokenizer splits a document into classified tokens.
type Tokenizer interface {
	Tokenize(text string) ([]syntax.Token, error)
}

// State is the popup state.
type State int

const (
	Idle State = iota
	Suggesting
	Navigating
)

func (s State) String() string {
	switch s {
	case Suggesting:
		return "suggesting"
	case Navigating:
		return "navigating"
	default:
		return "idle"
	}
}

// Option configures a Completer.
type Option func(*Completer)

// WithLearnedWords enables the dictionary of words seen in the document,
// harvested with tok on every DocumentChanged.
func WithLearnedWords(tok Tokenizer) Option {
	return func(c *Completer) {
		c.tokenizer = tok
		c.learned = suggest.NewTrie()
	}
}

// WithRegistry uses reg instead of a fresh registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(c *Completer) {
		c.registry = reg
	}
}

// Completer owns the dictionaries, the registry and the popup state.
type Completer struct {
	syntax    *suggest.Trie
	learned   *suggest.Trie
	tokenizer Tokenizer
	registry  *registry.Registry

	cursor     int
	ignore     int
	ignoreSet  bool
	ctx        prefix.Context
	candidates []registry.Completion
	selected   int
	state      State
}

// NewCompleter returns a completer seeded with the vocabulary of s.
func NewCompleter(s syntax.Syntax, opts ...Option) *Completer {
	c := &Completer{
		syntax:   suggest.NewSyntaxTrie(s),
		registry: registry.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the custom type registry for registration.
func (c *Completer) Registry() *registry.Registry {
	return c.registry
}

// PushWord adds a word to the language dictionary.
func (c *Completer) PushWord(word string) {
	c.syntax.Push(word)
}

// LearnsWords reports whether the learned dictionary is enabled.
func (c *Completer) LearnsWords() bool {
	return c.learned != nil
}

// DocumentChanged rebuilds the learned dictionary from text. It is a no-op
// unless WithLearnedWords was given.
func (c *Completer) DocumentChanged(text string) {
	if c.learned == nil {
		return
	}
	c.learned.Clear()
	tokens, err := c.tokenizer.Tokenize(text)
	if err != nil {
		log.Warnf("Failed to tokenize document, learned words cleared: %v", err)
		return
	}
	for _, tok := range tokens {
		if tok.Harvestable() {
			c.learned.Push(tok.Text)
		}
	}
	log.Debugf("Learned %d words from document", c.learned.Len())
}

func (c *Completer) reset() {
	c.ctx = prefix.Context{Start: c.cursor, End: c.cursor}
	c.candidates = nil
	c.selected = 0
	c.ignoreSet = false
	c.state = Idle
}

// Reset forgets the popup state and any pending dismissal, as when the
// host switches documents.
func (c *Completer) Reset() {
	c.reset()
}

// Update recomputes the prefix and candidates for text and sel.
func (c *Completer) Update(text string, sel prefix.Selection) {
	if sel.Cursor != c.cursor {
		c.cursor = sel.Cursor
		c.reset()
	}
	if c.ignoreSet && c.ignore == c.cursor {
		return
	}
	c.ignoreSet = false

	c.ctx = prefix.ResolveWith(text, sel, c.registry)
	if c.ctx.Empty() {
		c.candidates = nil
		c.selected = 0
		c.state = Idle
		return
	}

	c.candidates = suggest.Merge(c.ctx, c.registry, c.sources()...)
	switch {
	case len(c.candidates) == 0:
		c.selected = 0
		c.state = Idle
	case c.selected >= len(c.candidates):
		c.selected = 0
		c.state = Suggesting
	case c.state == Idle:
		c.state = Suggesting
	}
}

func (c *Completer) sources() []suggest.WordSource {
	sources := []suggest.WordSource{c.syntax}
	if c.learned != nil {
		sources = append(sources, c.learned)
	}
	return sources
}

// Candidates returns the current candidates in display order.
func (c *Completer) Candidates() []registry.Completion {
	return c.candidates
}

// Selected returns the index of the selected candidate.
func (c *Completer) Selected() int {
	return c.selected
}

// Current returns the selected candidate.
func (c *Completer) Current() (registry.Completion, bool) {
	if len(c.candidates) == 0 {
		return registry.Completion{}, false
	}
	return c.candidates[c.selected], true
}

// Context returns the resolved prefix, for positioning the popup.
func (c *Completer) Context() prefix.Context {
	return c.ctx
}

// State returns the popup state.
func (c *Completer) State() State {
	return c.state
}

// Next selects the following candidate, wrapping to the first.
func (c *Completer) Next() {
	if len(c.candidates) == 0 {
		return
	}
	c.selected = (c.selected + 1) % len(c.candidates)
	c.state = Navigating
}

// Prev selects the preceding candidate, wrapping to the last.
func (c *Completer) Prev() {
	if len(c.candidates) == 0 {
		return
	}
	c.selected = (c.selected - 1 + len(c.candidates)) % len(c.candidates)
	c.state = Navigating
}

// Dismiss closes the popup until the cursor moves.
func (c *Completer) Dismiss() {
	c.ignore = c.cursor
	c.ignoreSet = true
	c.candidates = nil
	c.selected = 0
	c.state = Idle
	log.Debug("Completion dismissed", "cursor", c.cursor)
}

// Confirm plans the edit for the selected candidate and returns to Idle.
// The cursor the edit leaves behind is ignored, so the completed word does
// not reopen the popup. It reports false when there is nothing to confirm.
func (c *Completer) Confirm() (Edit, bool) {
	cand, ok := c.Current()
	if !ok {
		return Edit{}, false
	}
	edit := Plan(cand, c.ctx)

	c.cursor = edit.CursorAfter(c.ctx.End)
	c.reset()
	c.ignore = c.cursor
	c.ignoreSet = true

	log.Debug("Completion confirmed", "display", cand.Display, "delete", edit.Delete, "back", edit.CursorBack)
	return edit, true
}
