//go:build test

package completion_test

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/bastiangx/snipserve/internal/editor"
	"github.com/bastiangx/snipserve/pkg/registry"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// typing replays keystrokes of a small script, one prefix at a time.
var typing = []string{
	"c", "co", "con", "cons", "const",
	"self.", "self.m", "self.mo", "self.mov",
	"r", "re", "ret", "retu", "return",
	"f", "fo", "for", "fore", "forea", "foreach",
}

func TestMemoryStableAcrossRebuilds(t *testing.T) {
	for _, iterations := range []int{100, 500, 1000} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			runTypingMemoryTest(t, iterations)
		})
	}
}

func runTypingMemoryTest(t *testing.T, iterations int) {
	c := newJS(t)
	c.Registry().RegisterType("self", registry.Dot,
		registry.Member{Name: "move_to", Snippet: "move_to($x, y)"},
		registry.Member{Name: "get_position", Snippet: "get_position()"},
	)
	c.Registry().RegisterGlobalSnippet("foreach", "for (const $item of items) {\n}")
	doc := strings.Repeat("let counter = items.map(item => item.value)\n", 50)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	for range iterations {
		for _, p := range typing {
			buf := editor.New(doc + p)
			c.DocumentChanged(buf.Text())
			c.Update(buf.Text(), buf.Selection())
			if edit, ok := c.Confirm(); ok {
				edit.Apply(buf)
			}
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.HeapAlloc) - int64(baseline.HeapAlloc)
	goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
	totalOps := iterations * len(typing)
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive retained memory per operation: %.2f bytes", memPerOp)
	}
	if goroutineDelta > 0 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func BenchmarkUpdate(b *testing.B) {
	c := newJS(b)
	doc := strings.Repeat("let counter = items.map(item => item.value)\n", 50)
	c.DocumentChanged(doc)

	b.ResetTimer()
	for i := range b.N {
		buf := editor.New(doc + typing[i%len(typing)])
		c.Update(buf.Text(), buf.Selection())
	}
}

func BenchmarkDocumentChanged(b *testing.B) {
	c := newJS(b)
	doc := strings.Repeat("let counter = items.map(item => item.value)\n", 50)

	b.ResetTimer()
	for range b.N {
		c.DocumentChanged(doc)
	}
}
