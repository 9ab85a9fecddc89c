// Package prefix finds the text being completed around the cursor.
package prefix

import (
	"unicode"

	"github.com/bastiangx/snipserve/pkg/registry"
)

// Selection is the host cursor. Anchor is the other end of the selection
// and equals Cursor when nothing is selected. Offsets count characters.
type Selection struct {
	Cursor int `msgpack:"cursor"`
	Anchor int `msgpack:"anchor"`
}

// At returns a selection with the cursor at offset and nothing selected.
func At(offset int) Selection {
	return Selection{Cursor: offset, Anchor: offset}
}

// Forward reports whether the selection extends past the cursor.
func (s Selection) Forward() bool {
	return s.Anchor > s.Cursor
}

// Context is the prefix being completed. Start and End are character
// offsets into the document, End being the cursor. Access is set when Raw
// is a member access on a registered type.
type Context struct {
	Raw    string           `msgpack:"raw"`
	Start  int              `msgpack:"start"`
	End    int              `msgpack:"end"`
	Access *registry.Access `msgpack:"access,omitempty"`
}

// Empty reports whether there is nothing to complete.
func (c Context) Empty() bool {
	return c.Raw == ""
}

// Len is the prefix length in characters.
func (c Context) Len() int {
	return c.End - c.Start
}

// IsWordRune reports whether r can be part of an identifier.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isPrefixRune(r rune, colon bool) bool {
	return IsWordRune(r) || r == '.' || (colon && r == ':')
}

// Resolve returns the prefix ending at the cursor. It walks back over word
// characters, dots and, when colon is set, colons.
//
// No prefix is returned while the cursor sits in front of a word character,
// unless a selection extends forward from the cursor.
func Resolve(text string, sel Selection, colon bool) Context {
	runes := []rune(text)
	cursor := min(max(sel.Cursor, 0), len(runes))
	empty := Context{Start: cursor, End: cursor}

	if cursor < len(runes) && IsWordRune(runes[cursor]) && !sel.Forward() {
		return empty
	}

	start := cursor
	for start > 0 && isPrefixRune(runes[start-1], colon) {
		start--
	}
	if start == cursor {
		return empty
	}
	return Context{Raw: string(runes[start:cursor]), Start: start, End: cursor}
}

// ResolveWith resolves the prefix against reg, filling in Access when the
// prefix is a member access on a registered type.
func ResolveWith(text string, sel Selection, reg *registry.Registry) Context {
	if reg == nil {
		return Resolve(text, sel, false)
	}
	ctx := Resolve(text, sel, reg.HasColonSyntax())
	if ctx.Empty() {
		return ctx
	}
	if access, ok := reg.Split(ctx.Raw); ok {
		ctx.Access = &access
	}
	return ctx
}
