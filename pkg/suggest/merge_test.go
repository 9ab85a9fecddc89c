package suggest

import (
	"testing"

	"github.com/bastiangx/snipserve/pkg/prefix"
	"github.com/bastiangx/snipserve/pkg/registry"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spySource records the prefixes it was queried with.
type spySource struct {
	words   []string
	queries []string
}

func (s *spySource) FindCompletions(p string) []string {
	s.queries = append(s.queries, p)
	var out []string
	for _, w := range s.words {
		if len(w) >= len(p) && w[:len(p)] == p {
			out = append(out, w[len(p):])
		}
	}
	return out
}

func mergedDisplays(cs []registry.Completion) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Display)
	}
	return out
}

func TestMergeRegistryWins(t *testing.T) {
	trie := NewTrie()
	trie.Push("foreach")
	trie.Push("for")

	reg := registry.New()
	reg.RegisterGlobal("foreach", "for $item in items {\n}", "Iterates over items")
	reg.RegisterGlobalSimple("format")

	got := Merge(prefix.Context{Raw: "fo", Start: 0, End: 2}, reg, trie)

	want := []string{"for", "foreach", "format"}
	if diff := cmp.Diff(want, mergedDisplays(got)); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}

	var count int
	for _, c := range got {
		if c.Display == "foreach" {
			count++
			assert.Equal(t, "for $item in items {\n}", c.Item.Snippet)
			assert.Equal(t, "Iterates over items", c.Item.Documentation)
		}
	}
	assert.Equal(t, 1, count)
}

func TestMergeDedupAcrossSources(t *testing.T) {
	syntaxWords := &spySource{words: []string{"console", "const"}}
	learned := &spySource{words: []string{"const", "constant"}}

	got := Merge(prefix.Context{Raw: "con", End: 3}, nil, syntaxWords, learned)
	assert.Equal(t, []string{"console", "const", "constant"}, mergedDisplays(got))
	assert.Equal(t, registry.CategoryWord, got[0].Item.Category)
}

func TestMergeEmptyPrefixSkipsWordSources(t *testing.T) {
	src := &spySource{words: []string{"anything"}}
	reg := registry.New()
	reg.RegisterGlobalSimple("global")

	got := Merge(prefix.Context{}, reg, src)
	assert.Empty(t, src.queries)
	assert.Equal(t, []string{"global"}, mergedDisplays(got))
}

func TestMergeMemberAccess(t *testing.T) {
	reg := registry.New()
	reg.RegisterType("self", registry.Dot, registry.Member{Name: "move_to", Snippet: "move_to($x, y)"})
	trie := NewTrie()
	trie.Push("self")

	got := Merge(prefix.Context{Raw: "self.m", End: 6}, reg, trie)
	require.Len(t, got, 1)
	assert.Equal(t, "self.move_to", got[0].Display)
	require.NotNil(t, got[0].Access)
}

func TestMergeKeepsWordEqualToPrefix(t *testing.T) {
	trie := NewTrie()
	trie.Push("con")
	trie.Push("const")
	learned := NewTrie()
	learned.Push("con")

	got := Merge(prefix.Context{Raw: "con", End: 3}, nil, trie, learned)
	assert.Equal(t, []string{"con", "const"}, mergedDisplays(got))

	reg := registry.New()
	reg.RegisterGlobalDocs("con", "Opens a connection.")
	got = Merge(prefix.Context{Raw: "con", End: 3}, reg, trie, learned)
	require.Equal(t, []string{"con", "const"}, mergedDisplays(got))
	assert.Equal(t, "Opens a connection.", got[0].Item.Documentation)
}
