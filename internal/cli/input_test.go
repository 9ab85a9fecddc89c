package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/snipserve/pkg/completion"
	"github.com/bastiangx/snipserve/pkg/config"
	"github.com/bastiangx/snipserve/pkg/registry"
	"github.com/bastiangx/snipserve/pkg/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, input string) string {
	t.Helper()
	c := completion.NewCompleter(syntax.JavaScript())
	c.Registry().RegisterType("self", registry.Dot,
		registry.Member{Name: "move_to", Snippet: "move_to($x, y)", Documentation: "Moves the actor."},
		registry.Member{Name: "get_position", Snippet: "get_position()"},
	)

	var out bytes.Buffer
	h := NewInputHandler(c, config.DefaultConfig().CLI)
	require.NoError(t, h.Run(strings.NewReader(input), &out))
	return out.String()
}

func TestCandidatesAndConfirm(t *testing.T) {
	out := run(t, "self.|\n>\n!\n")

	assert.Contains(t, out, "2 suggestions for 'self.'")
	assert.Contains(t, out, "self.get_position")
	assert.Contains(t, out, "Moves the actor.")
	assert.Contains(t, out, "self.move_to(|x, y)")
}

func TestConfirmByNumber(t *testing.T) {
	out := run(t, "self.|\n!1\n")
	assert.Contains(t, out, "self.get_position()|")
}

func TestDismissAndTypes(t *testing.T) {
	out := run(t, "con|\n~\n:types\n")
	assert.Contains(t, out, "suggestions for 'con'")
	assert.Contains(t, out, "No suggestions (idle)")
	assert.Contains(t, out, "self. (2 members)")
}

func TestVisibleWindowFollowsSelection(t *testing.T) {
	c := completion.NewCompleter(syntax.JavaScript())
	var out bytes.Buffer
	h := NewInputHandler(c, config.CliConfig{MaxVisible: 1})
	require.NoError(t, h.Run(strings.NewReader("con|\n>\n"), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	last := lines[len(lines)-1]
	assert.Contains(t, last, "const")
	assert.NotContains(t, out.String(), "continue")
}
