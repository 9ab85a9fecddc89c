// Package cli is an interactive loop for debugging completions from a terminal.
//
// Each line is a document with '|' marking the cursor, or a command:
//
//	self.mo|        show candidates for the cursor after "self.mo"
//	>  <            select the next or previous candidate
//	!  !3           confirm the selection, or candidate 3
//	~               dismiss, like pressing Escape
//	:types          list registered custom types
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/snipserve/internal/editor"
	"github.com/bastiangx/snipserve/pkg/completion"
	"github.com/bastiangx/snipserve/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	memberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"})
	docStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#797593", Dark: "#908caa"})
	bufferStyle = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
)

// InputHandler drives a completer from line input.
type InputHandler struct {
	completer *completion.Completer
	buffer    *editor.Buffer
	config    config.CliConfig
	out       *log.Logger
}

// NewInputHandler returns a handler with an empty document.
func NewInputHandler(c *completion.Completer, cfg config.CliConfig) *InputHandler {
	return &InputHandler{
		completer: c,
		buffer:    editor.New(""),
		config:    cfg,
	}
}

// Start runs the loop on stdin and stdout.
func (h *InputHandler) Start() error {
	return h.Run(os.Stdin, os.Stdout)
}

// Run reads lines from r until it is exhausted.
func (h *InputHandler) Run(r io.Reader, w io.Writer) error {
	h.out = log.NewWithOptions(w, log.Options{})
	h.out.Print("SnipServe CLI")
	h.out.Print("type code with '|' as the cursor, then > < ! ~ (Ctrl+C to exit):")

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		h.handleInput(line)
	}
	return scanner.Err()
}

func (h *InputHandler) handleInput(line string) {
	switch cmd := strings.TrimSpace(line); {
	case cmd == ">":
		h.completer.Next()
	case cmd == "<":
		h.completer.Prev()
	case cmd == "~":
		h.completer.Dismiss()
	case cmd == ":types":
		h.listTypes()
		return
	case strings.HasPrefix(cmd, "!"):
		h.confirm(strings.TrimPrefix(cmd, "!"))
		return
	default:
		h.setDocument(line)
	}
	h.printCandidates()
}

func (h *InputHandler) setDocument(line string) {
	h.buffer = editor.Parse(line)
	h.completer.Reset()
	start := time.Now()
	h.completer.DocumentChanged(h.buffer.Text())
	h.completer.Update(h.buffer.Text(), h.buffer.Selection())
	log.Debugf("Took [ %v ] for %q", time.Since(start), h.completer.Context().Raw)
}

func (h *InputHandler) confirm(arg string) {
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(h.completer.Candidates()) {
			log.Errorf("No candidate %q", arg)
			return
		}
		for h.completer.Selected() != n-1 {
			h.completer.Next()
		}
	}

	edit, ok := h.completer.Confirm()
	if !ok {
		log.Warn("Nothing to confirm")
		return
	}
	edit.Apply(h.buffer)
	h.completer.DocumentChanged(h.buffer.Text())
	log.Debug("Applied edit", "delete", edit.Delete, "insert", edit.Insert, "back", edit.CursorBack)
	h.out.Print(bufferStyle.Render(h.buffer.String()))
}

func (h *InputHandler) printCandidates() {
	cands := h.completer.Candidates()
	if len(cands) == 0 {
		h.out.Printf("No suggestions (%s)", h.completer.State())
		return
	}

	ctx := h.completer.Context()
	h.out.Printf("%d suggestions for '%s' [%d..%d]:", len(cands), ctx.Raw, ctx.Start, ctx.End)

	sel := h.completer.Selected()
	first := 0
	if limit := h.config.MaxVisible; limit > 0 && sel >= limit {
		first = sel - limit + 1
	}
	for i := first; i < len(cands) && (h.config.MaxVisible <= 0 || i < first+h.config.MaxVisible); i++ {
		c := cands[i]
		marker := "  "
		label := c.Display
		switch {
		case i == sel:
			marker = "> "
			label = selectedStyle.Render(label)
		case c.Access != nil:
			label = memberStyle.Render(label)
		}
		line := fmt.Sprintf("%s%2d. %-32s %s", marker, i+1, label, c.Item.Category)
		if h.config.ShowDocs && c.Item.Documentation != "" {
			line += "  " + docStyle.Render(c.Item.Documentation)
		}
		h.out.Print(line)
	}
}

func (h *InputHandler) listTypes() {
	reg := h.completer.Registry()
	types := reg.Types()
	if len(types) == 0 {
		h.out.Print("No custom types registered")
		return
	}
	for _, name := range types {
		info, _ := reg.Type(name)
		h.out.Printf("%s%s (%d members)", name, info.Separator(), info.Len())
	}
}
