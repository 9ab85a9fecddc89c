package prefix

import (
	"testing"

	"github.com/bastiangx/snipserve/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		sel   Selection
		colon bool
		raw   string
		start int
	}{
		{"start of document", "fore", At(4), false, "fore", 0},
		{"after space", "let x = con", At(11), false, "con", 8},
		{"member access", "  self.mo", At(9), false, "self.mo", 2},
		{"trailing dot", "(self.", At(6), false, "self.", 1},
		{"colon disabled", "self:mo", At(7), false, "mo", 5},
		{"colon enabled", "self:mo", At(7), true, "self:mo", 0},
		{"cursor mid document", "foo bar", At(3), false, "foo", 0},
		{"after punctuation", "f(", At(2), false, "", 2},
		{"empty document", "", At(0), false, "", 0},
		{"unicode", "x = défi", At(8), false, "défi", 4},
		{"cursor past end clamps", "ab", At(10), false, "ab", 0},
		{"superscript digit", "y = x²", At(6), false, "x²", 4},
		{"roman numeral", "Ⅻx", At(2), false, "Ⅻx", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Resolve(tt.text, tt.sel, tt.colon)
			assert.Equal(t, tt.raw, ctx.Raw)
			assert.Equal(t, tt.start, ctx.Start)
			assert.Equal(t, min(tt.sel.Cursor, len([]rune(tt.text))), ctx.End)
		})
	}
}

func TestIsWordRune(t *testing.T) {
	for _, r := range "aZ_9é²½Ⅻ" {
		assert.True(t, IsWordRune(r), "%q", r)
	}
	for _, r := range ".:( -$" {
		assert.False(t, IsWordRune(r), "%q", r)
	}
}

func TestResolveClosedInsideWord(t *testing.T) {
	ctx := Resolve("foobar", At(3), false)
	assert.True(t, ctx.Empty())
	assert.Equal(t, 3, ctx.Start)
	assert.Equal(t, 3, ctx.End)

	ctx = Resolve("foo_bar", At(3), false)
	assert.True(t, ctx.Empty())

	ctx = Resolve("foo.bar", At(3), false)
	assert.Equal(t, "foo", ctx.Raw)
}

func TestResolveForwardSelectionWaivesClosedRule(t *testing.T) {
	ctx := Resolve("foobar", Selection{Cursor: 3, Anchor: 6}, false)
	assert.Equal(t, "foo", ctx.Raw)

	ctx = Resolve("foobar", Selection{Cursor: 3, Anchor: 1}, false)
	assert.True(t, ctx.Empty())
}

func TestResolveWith(t *testing.T) {
	reg := registry.New()
	reg.RegisterTypeSimple("player", registry.Colon, "jump")

	ctx := ResolveWith("player:ju", At(9), reg)
	assert.Equal(t, "player:ju", ctx.Raw)
	require.NotNil(t, ctx.Access)
	assert.Equal(t, registry.Access{Type: "player", Member: "ju", Separator: registry.Colon}, *ctx.Access)

	ctx = ResolveWith("enemy:ju", At(8), reg)
	assert.Equal(t, "enemy:ju", ctx.Raw)
	assert.Nil(t, ctx.Access)

	ctx = ResolveWith("x:y", At(3), nil)
	assert.Equal(t, "y", ctx.Raw)
}
