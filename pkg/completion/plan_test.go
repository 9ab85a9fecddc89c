package completion_test

import (
	"testing"

	"github.com/bastiangx/snipserve/internal/editor"
	"github.com/bastiangx/snipserve/pkg/completion"
	"github.com/bastiangx/snipserve/pkg/prefix"
	"github.com/bastiangx/snipserve/pkg/registry"
	"github.com/stretchr/testify/assert"
)

func member(typeName string, sep registry.Separator, name, snippet string) registry.Completion {
	item := registry.CompletionItem{Display: name, Snippet: snippet, Category: registry.CategoryFunction}
	return registry.Completion{
		Display: typeName + sep.String() + name,
		Item:    item,
		Access:  &registry.Access{Type: typeName, Member: name, Separator: sep},
	}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		cand   registry.Completion
		ctx    prefix.Context
		want   completion.Edit
		after  string
	}{
		{
			name:   "member snippet keeps type",
			buffer: "self.mo|",
			cand:   member("self", registry.Dot, "move_to", "move_to($x, y)"),
			ctx:    prefix.Context{Raw: "self.mo", Start: 0, End: 7},
			want:   completion.Edit{Delete: 2, Insert: "move_to(x, y)", CursorBack: 5},
			after:  "self.move_to(|x, y)",
		},
		{
			name:   "typed separator differs",
			buffer: "self:mo|",
			cand:   member("self", registry.Dot, "move_to", "move_to($x, y)"),
			ctx:    prefix.Context{Raw: "self:mo", Start: 0, End: 7},
			want:   completion.Edit{Delete: 7, Insert: "self.move_to(x, y)", CursorBack: 5},
			after:  "self.move_to(|x, y)",
		},
		{
			name:   "colon member",
			buffer: "x = player:ju|",
			cand:   member("player", registry.Colon, "jump", "jump($height)"),
			ctx:    prefix.Context{Raw: "player:ju", Start: 4, End: 13},
			want:   completion.Edit{Delete: 2, Insert: "jump(height)", CursorBack: 7},
			after:  "x = player:jump(|height)",
		},
		{
			name:   "plain word",
			buffer: "let x = con|",
			cand: registry.Completion{
				Display: "console",
				Item:    registry.NewItem("console", registry.CategoryWord),
			},
			ctx:   prefix.Context{Raw: "con", Start: 8, End: 11},
			want:  completion.Edit{Delete: 3, Insert: "console"},
			after: "let x = console|",
		},
		{
			name:   "global snippet without marker",
			buffer: "fo|",
			cand: registry.Completion{
				Display: "foreach",
				Item:    registry.CompletionItem{Display: "foreach", Snippet: "for (;;) {}"},
			},
			ctx:   prefix.Context{Raw: "fo", End: 2},
			want:  completion.Edit{Delete: 2, Insert: "for (;;) {}"},
			after: "for (;;) {}|",
		},
		{
			name:   "only the first marker counts",
			buffer: "lo|",
			cand: registry.Completion{
				Display: "log",
				Item:    registry.CompletionItem{Display: "log", Snippet: "log($a, $b)"},
			},
			ctx:   prefix.Context{Raw: "lo", End: 2},
			want:  completion.Edit{Delete: 2, Insert: "log(a, b)", CursorBack: 5},
			after: "log(|a, b)",
		},
		{
			name:   "multibyte prefix",
			buffer: "é|",
			cand: registry.Completion{
				Display: "été",
				Item:    registry.NewItem("été", registry.CategoryWord),
			},
			ctx:   prefix.Context{Raw: "é", End: 1},
			want:  completion.Edit{Delete: 1, Insert: "été"},
			after: "été|",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edit := completion.Plan(tt.cand, tt.ctx)
			assert.Equal(t, tt.want, edit)

			buf := editor.Parse(tt.buffer)
			from := buf.Cursor()
			edit.Apply(buf)
			assert.Equal(t, tt.after, buf.String())
			assert.Equal(t, buf.Cursor(), edit.CursorAfter(from))
		})
	}
}

func TestEditApplyNoop(t *testing.T) {
	buf := editor.Parse("abc|")
	completion.Edit{}.Apply(buf)
	assert.Equal(t, "abc|", buf.String())
}
