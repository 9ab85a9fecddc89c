package suggest

import (
	"github.com/bastiangx/snipserve/pkg/prefix"
	"github.com/bastiangx/snipserve/pkg/registry"
)

// Merge combines the word sources and the registry matches for ctx.
//
// Words come first, in source order, followed by registry matches. When a
// display text repeats, the later entry replaces the earlier one in place,
// so a registry item with a snippet wins over the bare word it shadows. An
// empty prefix only consults the registry.
func Merge(ctx prefix.Context, reg *registry.Registry, sources ...WordSource) []registry.Completion {
	var merged []registry.Completion
	seen := make(map[string]int)

	add := func(c registry.Completion) {
		if i, ok := seen[c.Display]; ok {
			merged[i] = c
			return
		}
		seen[c.Display] = len(merged)
		merged = append(merged, c)
	}

	if ctx.Raw != "" {
		for _, src := range sources {
			if src == nil {
				continue
			}
			for _, suffix := range src.FindCompletions(ctx.Raw) {
				word := ctx.Raw + suffix
				add(registry.Completion{
					Display: word,
					Item:    registry.NewItem(word, registry.CategoryWord),
				})
			}
		}
	}

	if reg != nil {
		for _, c := range reg.GetCompletions(ctx.Raw) {
			add(c)
		}
	}

	return merged
}
