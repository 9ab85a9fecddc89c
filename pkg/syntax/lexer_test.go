package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func harvested(tokens []Token) []string {
	var words []string
	for _, tok := range tokens {
		if tok.Harvestable() {
			words = append(words, tok.Text)
		}
	}
	return words
}

func TestTokenizeJavaScript(t *testing.T) {
	tok, err := NewTokenizer(JavaScript())
	require.NoError(t, err)

	src := `// helper comment
const total = computeTotal (items, 3.5);
/* block
   ignored */ let label = "not a word";`

	tokens, err := tok.Tokenize(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"total", "computeTotal", "items", "label"}, harvested(tokens))

	kinds := map[string]Kind{}
	for _, tk := range tokens {
		kinds[tk.Text] = tk.Kind
	}
	assert.Equal(t, KindKeyword, kinds["const"])
	assert.Equal(t, KindFunction, kinds["computeTotal"])
	assert.Equal(t, KindNumber, kinds["3.5"])
	assert.Equal(t, KindString, kinds[`"not a word"`])
}

func TestTokenizeLuaComments(t *testing.T) {
	tok, err := NewTokenizer(Lua())
	require.NoError(t, err)

	tokens, err := tok.Tokenize("--[[ long\ncomment ]] local hero = nil -- trailing\nhero:jump(2)")
	require.NoError(t, err)
	assert.Equal(t, []string{"hero", "hero", "jump"}, harvested(tokens))

	kinds := map[string]Kind{}
	for _, tk := range tokens {
		kinds[tk.Text] = tk.Kind
	}
	assert.Equal(t, KindKeyword, kinds["local"])
	assert.Equal(t, KindSpecial, kinds["nil"])
	assert.Equal(t, KindFunction, kinds["jump"])
	assert.Equal(t, KindComment, tokens[0].Kind)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	tok, err := NewTokenizer(JavaScript())
	require.NoError(t, err)

	tokens, err := tok.Tokenize(`let s = "open`)
	require.NoError(t, err)
	assert.Equal(t, []string{"s", "open"}, harvested(tokens))
}

func TestByName(t *testing.T) {
	s, err := ByName("JS")
	require.NoError(t, err)
	assert.Equal(t, "JavaScript", s.Language)

	_, err = ByName("cobol")
	assert.Error(t, err)
}

func TestCaseInsensitiveLookup(t *testing.T) {
	s := Syntax{Keywords: []string{"SELECT"}}
	assert.False(t, s.IsKeyword("select"))
	s.CaseSensitive = false
	assert.True(t, s.IsKeyword("select"))
}
