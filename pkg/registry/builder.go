package registry

// Builder accumulates entries for one type, or for the globals, and
// registers them in a single Commit.
//
//	registry.NewTypeBuilder("player").
//		Separator(registry.Colon).
//		Method("jump", "jump($height)", "Makes the player jump").
//		Field("health", "Current health").
//		Commit(reg)
type Builder struct {
	typeName  string
	separator Separator
	entries   []Member
}

// NewTypeBuilder starts a builder for typeName using Dot.
func NewTypeBuilder(typeName string) *Builder {
	return &Builder{typeName: typeName, separator: Dot}
}

// NewGlobalBuilder starts a builder whose entries become globals.
func NewGlobalBuilder() *Builder {
	return &Builder{}
}

// Separator sets the member access separator.
func (b *Builder) Separator(sep Separator) *Builder {
	b.separator = sep
	return b
}

// Add appends an entry.
func (b *Builder) Add(m Member) *Builder {
	b.entries = append(b.entries, m)
	return b
}

// Method adds a function entry.
func (b *Builder) Method(name, snippet, documentation string) *Builder {
	return b.Add(Member{Name: name, Snippet: snippet, Documentation: documentation, Category: CategoryFunction})
}

// Field adds a field entry without snippet.
func (b *Builder) Field(name, documentation string) *Builder {
	return b.Add(Member{Name: name, Documentation: documentation, Category: CategoryField})
}

// Snippet adds a snippet entry.
func (b *Builder) Snippet(name, snippet, documentation string) *Builder {
	return b.Add(Member{Name: name, Snippet: snippet, Documentation: documentation, Category: CategorySnippet})
}

// Describe returns the accumulated type description.
func (b *Builder) Describe() TypeSpec {
	members := make([]Member, len(b.entries))
	copy(members, b.entries)
	return TypeSpec{Name: b.typeName, Separator: b.separator, Members: members}
}

// Commit registers the accumulated entries. A type builder replaces the
// type; a global builder adds or overwrites each global.
func (b *Builder) Commit(r *Registry) {
	if b.typeName == "" {
		for _, m := range b.entries {
			item := m.item()
			if item.Category == "" {
				item.Category = CategoryGlobal
			}
			r.RegisterGlobalItem(item)
		}
		return
	}
	r.RegisterDescriptor(b)
}
