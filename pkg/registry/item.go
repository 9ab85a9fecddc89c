package registry

import (
	"strings"
	"unicode/utf8"
)

// CursorMarker marks where the cursor lands after a snippet is inserted.
const CursorMarker = '$'

// Category tags an item for presentation only.
type Category string

const (
	CategoryGlobal   Category = "global"
	CategoryField    Category = "field"
	CategoryFunction Category = "function"
	CategorySnippet  Category = "snippet"
	CategoryType     Category = "type"
	CategoryWord     Category = "word"
)

// CompletionItem is a single completion with optional snippet and docs.
// An empty Snippet or Documentation means the field is absent.
type CompletionItem struct {
	Display       string   `msgpack:"d" json:"display"`
	Snippet       string   `msgpack:"s,omitempty" json:"snippet,omitempty"`
	Documentation string   `msgpack:"doc,omitempty" json:"documentation,omitempty"`
	Category      Category `msgpack:"k,omitempty" json:"category,omitempty"`
}

// NewItem returns a bare item for display.
func NewItem(display string, category Category) CompletionItem {
	return CompletionItem{Display: display, Category: category}
}

// InsertText is the snippet if present, otherwise the display text.
func (i CompletionItem) InsertText() string {
	if i.Snippet != "" {
		return i.Snippet
	}
	return i.Display
}

// HasCursorMarker reports whether the insert text carries a cursor marker.
func (i CompletionItem) HasCursorMarker() bool {
	return strings.ContainsRune(i.InsertText(), CursorMarker)
}

// CursorInfo returns the insert text without markers and the rune offset of
// the first marker.
func (i CompletionItem) CursorInfo() (string, int, bool) {
	return StripCursorMarker(i.InsertText())
}

// StripCursorMarker removes every cursor marker from text. The offset is
// counted in runes and refers to the first marker only.
func StripCursorMarker(text string) (string, int, bool) {
	idx := strings.IndexRune(text, CursorMarker)
	if idx < 0 {
		return text, 0, false
	}
	pos := utf8.RuneCountInString(text[:idx])
	return strings.ReplaceAll(text, string(CursorMarker), ""), pos, true
}
