package registry

// Member describes one method or field of a custom type, or a global.
// Snippet and Documentation are optional.
type Member struct {
	Name          string
	Snippet       string
	Documentation string
	Category      Category
}

func (m Member) item() CompletionItem {
	return CompletionItem{
		Display:       m.Name,
		Snippet:       m.Snippet,
		Documentation: m.Documentation,
		Category:      m.Category,
	}
}

// TypeSpec is a declarative description of a whole type.
type TypeSpec struct {
	Name      string
	Separator Separator
	Members   []Member
}

// Describe lets a TypeSpec be registered as a Descriptor.
func (s TypeSpec) Describe() TypeSpec {
	return s
}

// Descriptor is implemented by anything that can describe its own
// completions, such as a game object exposing its scripting API.
type Descriptor interface {
	Describe() TypeSpec
}

// RegisterDescriptor registers the type described by d, replacing any type
// with the same name.
func (r *Registry) RegisterDescriptor(d Descriptor) {
	spec := d.Describe()
	r.RegisterType(spec.Name, spec.Separator, spec.Members...)
}

// RegisterType registers typeName with the given members.
func (r *Registry) RegisterType(typeName string, sep Separator, members ...Member) {
	info := newTypeInfo(sep)
	for _, m := range members {
		if m.Name == "" {
			continue
		}
		info.put(m)
	}
	r.putType(typeName, info)
}

// RegisterTypeSimple registers a type whose members are bare names.
func (r *Registry) RegisterTypeSimple(typeName string, sep Separator, names ...string) {
	members := make([]Member, 0, len(names))
	for _, n := range names {
		members = append(members, Member{Name: n})
	}
	r.RegisterType(typeName, sep, members...)
}

// RegisterTypeSnippets registers a type from member name to snippet.
func (r *Registry) RegisterTypeSnippets(typeName string, sep Separator, snippets map[string]string) {
	members := make([]Member, 0, len(snippets))
	for name, snippet := range snippets {
		members = append(members, Member{Name: name, Snippet: snippet, Category: CategoryFunction})
	}
	r.RegisterType(typeName, sep, members...)
}

// RegisterTypeDocs registers a type from member name to documentation.
func (r *Registry) RegisterTypeDocs(typeName string, sep Separator, docs map[string]string) {
	members := make([]Member, 0, len(docs))
	for name, doc := range docs {
		members = append(members, Member{Name: name, Documentation: doc})
	}
	r.RegisterType(typeName, sep, members...)
}

// AddMember adds or overwrites a single member. An unknown type is created
// with the Dot separator.
func (r *Registry) AddMember(typeName string, m Member) {
	info, ok := r.Type(typeName)
	if !ok {
		info = newTypeInfo(Dot)
		r.putType(typeName, info)
	}
	if m.Name == "" {
		return
	}
	info.put(m)
}

// RegisterGlobal registers a global completion. Empty snippet or
// documentation means none.
func (r *Registry) RegisterGlobal(name, snippet, documentation string) {
	category := CategoryGlobal
	if snippet != "" {
		category = CategorySnippet
	}
	r.RegisterGlobalItem(CompletionItem{
		Display:       name,
		Snippet:       snippet,
		Documentation: documentation,
		Category:      category,
	})
}

// RegisterGlobalSimple registers a global without snippet or docs.
func (r *Registry) RegisterGlobalSimple(name string) {
	r.RegisterGlobal(name, "", "")
}

// RegisterGlobalSnippet registers a global with only a snippet.
func (r *Registry) RegisterGlobalSnippet(name, snippet string) {
	r.RegisterGlobal(name, snippet, "")
}

// RegisterGlobalDocs registers a global with only documentation.
func (r *Registry) RegisterGlobalDocs(name, documentation string) {
	r.RegisterGlobal(name, "", documentation)
}

// RegisterGlobalItem registers item as a global under its display text.
func (r *Registry) RegisterGlobalItem(item CompletionItem) {
	if item.Display == "" {
		return
	}
	r.putGlobal(item)
}
