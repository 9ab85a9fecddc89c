// Package editor is a minimal in-memory text buffer standing in for a host
// editor widget.
package editor

import (
	"strings"

	"github.com/bastiangx/snipserve/pkg/completion"
	"github.com/bastiangx/snipserve/pkg/prefix"
)

// CursorMark marks the cursor in Parse input.
const CursorMark = '|'

// Buffer is a rune buffer with a cursor and a selection anchor.
type Buffer struct {
	text   []rune
	cursor int
	anchor int
}

var _ completion.Buffer = (*Buffer)(nil)

// New returns a buffer holding text with the cursor at the end.
func New(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text, len([]rune(text)))
	return b
}

// Parse builds a buffer from text where the first '|' marks the cursor.
// Without a mark the cursor goes to the end.
func Parse(marked string) *Buffer {
	idx := strings.IndexRune(marked, CursorMark)
	if idx < 0 {
		return New(marked)
	}
	b := &Buffer{}
	b.SetText(marked[:idx]+marked[idx+1:], len([]rune(marked[:idx])))
	return b
}

// SetText replaces the content and places the cursor, clamped to the text.
func (b *Buffer) SetText(text string, cursor int) {
	b.text = []rune(text)
	b.cursor = b.clamp(cursor)
	b.anchor = b.cursor
}

// Select sets the cursor and the selection anchor.
func (b *Buffer) Select(sel prefix.Selection) {
	b.cursor = b.clamp(sel.Cursor)
	b.anchor = b.clamp(sel.Anchor)
}

func (b *Buffer) clamp(n int) int {
	return min(max(n, 0), len(b.text))
}

// Text returns the buffer content.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Cursor returns the cursor offset in characters.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Selection returns the cursor and anchor.
func (b *Buffer) Selection() prefix.Selection {
	return prefix.Selection{Cursor: b.cursor, Anchor: b.anchor}
}

// String renders the content with the cursor mark.
func (b *Buffer) String() string {
	return string(b.text[:b.cursor]) + string(CursorMark) + string(b.text[b.cursor:])
}

func (b *Buffer) DeleteBackward(n int) {
	n = min(max(n, 0), b.cursor)
	b.text = append(b.text[:b.cursor-n], b.text[b.cursor:]...)
	b.cursor -= n
	b.anchor = b.cursor
}

func (b *Buffer) InsertText(s string) {
	ins := []rune(s)
	out := make([]rune, 0, len(b.text)+len(ins))
	out = append(out, b.text[:b.cursor]...)
	out = append(out, ins...)
	out = append(out, b.text[b.cursor:]...)
	b.text = out
	b.cursor += len(ins)
	b.anchor = b.cursor
}

func (b *Buffer) MoveCursor(delta int) {
	b.cursor = b.clamp(b.cursor + delta)
	b.anchor = b.cursor
}
