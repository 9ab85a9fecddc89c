package completion

import (
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/snipserve/pkg/prefix"
	"github.com/bastiangx/snipserve/pkg/registry"
)

// Buffer is the host text buffer. Counts are in characters.
type Buffer interface {
	// DeleteBackward removes n characters before the cursor.
	DeleteBackward(n int)
	// InsertText inserts s at the cursor and leaves the cursor after it.
	InsertText(s string)
	// MoveCursor moves the cursor by delta, negative moves left.
	MoveCursor(delta int)
}

// Edit replaces the completed prefix with a candidate.
type Edit struct {
	Delete     int    `msgpack:"del"`
	Insert     string `msgpack:"ins"`
	CursorBack int    `msgpack:"back"`
}

// Apply performs the edit on b: delete, insert, then move left.
func (e Edit) Apply(b Buffer) {
	if e.Delete > 0 {
		b.DeleteBackward(e.Delete)
	}
	if e.Insert != "" {
		b.InsertText(e.Insert)
	}
	if e.CursorBack > 0 {
		b.MoveCursor(-e.CursorBack)
	}
}

// CursorAfter returns where the cursor lands when the edit is applied with
// the cursor at from.
func (e Edit) CursorAfter(from int) int {
	return from - e.Delete + utf8.RuneCountInString(e.Insert) - e.CursorBack
}

// Plan computes the edit inserting c in place of the prefix in ctx.
//
// A member candidate only replaces the member part typed after the
// separator, so "self.mo" keeps "self." and replaces "mo". When the prefix
// was typed with a different separator than the type uses, the whole prefix
// is rewritten in the type's style, and the member's snippet is still
// inserted after the separator: "player.ju" becomes "player:jump($height)"
// with markers handled as usual, not the bare display "player:jump".
func Plan(c registry.Completion, ctx prefix.Context) Edit {
	var del int
	var text string

	if a := c.Access; a != nil {
		sep := a.Separator.String()
		if idx := strings.LastIndex(ctx.Raw, sep); idx >= 0 {
			del = utf8.RuneCountInString(ctx.Raw[idx+len(sep):])
			text = c.Item.InsertText()
		} else {
			del = ctx.Len()
			text = a.Type + sep + c.Item.InsertText()
		}
	} else {
		del = ctx.Len()
		text = c.Item.InsertText()
	}

	stripped, pos, ok := registry.StripCursorMarker(text)
	edit := Edit{Delete: del, Insert: stripped}
	if ok {
		edit.CursorBack = utf8.RuneCountInString(stripped) - pos
	}
	return edit
}
