/*
Package registry holds user registered "custom types" and global completions.

A custom type is a name such as "self" or "player" with a set of members
(methods and fields). Each type carries its own member access separator, so
a Lua style type can be completed as "player:jump" while a JavaScript style
one completes as "console.log". Globals are completions not tied to any type,
usually snippets such as "foreach".

Members and globals are stored in sorted maps, so every lookup returns its
matches in key order regardless of registration order.

	reg := registry.New()
	reg.RegisterType("self", registry.Dot,
		registry.Member{Name: "move_to", Snippet: "move_to($x, y)"},
		registry.Member{Name: "get_position", Snippet: "get_position()"},
	)
	reg.GetCompletions("self.mo") // [self.move_to]

Registering a type again replaces the whole type. Registering a member or a
global again overwrites that entry. Nothing is ever removed automatically.
*/
package registry

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/emirpasic/gods/maps/treemap"
)

// Separator joins a type to its members.
type Separator rune

const (
	Dot   Separator = '.'
	Colon Separator = ':'
)

func (s Separator) String() string {
	return string(rune(s))
}

// Valid reports whether s is one of the supported separators.
func (s Separator) Valid() bool {
	return s == Dot || s == Colon
}

// Access is the decomposition of a member access prefix or candidate.
type Access struct {
	Type      string    `msgpack:"type"`
	Member    string    `msgpack:"member"`
	Separator Separator `msgpack:"sep"`
}

// Completion is a candidate as shown in the popup. Access is set when the
// candidate was produced by a member access lookup.
type Completion struct {
	Display string
	Item    CompletionItem
	Access  *Access
}

// TypeInfo holds the members of one registered type.
type TypeInfo struct {
	separator Separator
	members   *treemap.Map
}

func newTypeInfo(sep Separator) *TypeInfo {
	if !sep.Valid() {
		sep = Dot
	}
	return &TypeInfo{separator: sep, members: treemap.NewWithStringComparator()}
}

// Separator returns the separator the type was registered with.
func (t *TypeInfo) Separator() Separator {
	return t.separator
}

// Member returns the item registered under name.
func (t *TypeInfo) Member(name string) (CompletionItem, bool) {
	v, ok := t.members.Get(name)
	if !ok {
		return CompletionItem{}, false
	}
	return v.(CompletionItem), true
}

// Members returns all members in name order.
func (t *TypeInfo) Members() []CompletionItem {
	out := make([]CompletionItem, 0, t.members.Size())
	it := t.members.Iterator()
	for it.Next() {
		out = append(out, it.Value().(CompletionItem))
	}
	return out
}

// Len is the number of members.
func (t *TypeInfo) Len() int {
	return t.members.Size()
}

func (t *TypeInfo) put(m Member) {
	t.members.Put(m.Name, m.item())
}

// Registry maps type names to their members and holds global completions.
// It is not safe for concurrent use.
type Registry struct {
	types   *treemap.Map
	globals *treemap.Map
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		types:   treemap.NewWithStringComparator(),
		globals: treemap.NewWithStringComparator(),
	}
}

// Type returns the registered type with the given name.
func (r *Registry) Type(name string) (*TypeInfo, bool) {
	v, ok := r.types.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*TypeInfo), true
}

// Types returns the registered type names in order.
func (r *Registry) Types() []string {
	names := make([]string, 0, r.types.Size())
	for _, k := range r.types.Keys() {
		names = append(names, k.(string))
	}
	return names
}

// Globals returns the registered global items in name order.
func (r *Registry) Globals() []CompletionItem {
	out := make([]CompletionItem, 0, r.globals.Size())
	it := r.globals.Iterator()
	for it.Next() {
		out = append(out, it.Value().(CompletionItem))
	}
	return out
}

// HasColonSyntax reports whether any registered type uses Colon.
func (r *Registry) HasColonSyntax() bool {
	it := r.types.Iterator()
	for it.Next() {
		if it.Value().(*TypeInfo).separator == Colon {
			return true
		}
	}
	return false
}

// SetSeparator changes the separator of an existing type.
func (r *Registry) SetSeparator(typeName string, sep Separator) bool {
	info, ok := r.Type(typeName)
	if !ok || !sep.Valid() {
		return false
	}
	info.separator = sep
	return true
}

// separators returns the separators eligible for splitting, in the order
// they are tried. Colon only takes part once a colon style type exists.
func (r *Registry) separators() []Separator {
	if r.HasColonSyntax() {
		return []Separator{Dot, Colon}
	}
	return []Separator{Dot}
}

// Split decomposes prefix into a known type and a member prefix. The split
// happens at the last occurrence of the first eligible separator found whose
// left hand side names a registered type. The returned separator is the
// type's configured one, not necessarily the one typed.
func (r *Registry) Split(prefix string) (Access, bool) {
	for _, sep := range r.separators() {
		idx := strings.LastIndex(prefix, sep.String())
		if idx < 0 {
			continue
		}
		typeName := strings.TrimSpace(prefix[:idx])
		info, ok := r.Type(typeName)
		if !ok {
			continue
		}
		return Access{
			Type:      typeName,
			Member:    prefix[idx+1:],
			Separator: info.separator,
		}, true
	}
	return Access{}, false
}

// GetCompletions returns the registry matches for prefix.
//
// A member access prefix ("self.mo") yields the matching members of that
// type and nothing else, even when no member matches. Any other prefix
// yields the type names starting with it followed by the matching globals.
// An empty prefix matches every type and global.
func (r *Registry) GetCompletions(prefix string) []Completion {
	var results []Completion

	if access, ok := r.Split(prefix); ok {
		info, _ := r.Type(access.Type)
		it := info.members.Iterator()
		for it.Next() {
			name := it.Key().(string)
			if !strings.HasPrefix(name, access.Member) {
				continue
			}
			results = append(results, Completion{
				Display: access.Type + access.Separator.String() + name,
				Item:    it.Value().(CompletionItem),
				Access: &Access{
					Type:      access.Type,
					Member:    name,
					Separator: access.Separator,
				},
			})
		}
		return results
	}

	for _, k := range r.types.Keys() {
		name := k.(string)
		if strings.HasPrefix(name, prefix) {
			results = append(results, Completion{
				Display: name,
				Item:    NewItem(name, CategoryType),
			})
		}
	}

	it := r.globals.Iterator()
	for it.Next() {
		name := it.Key().(string)
		if strings.HasPrefix(name, prefix) {
			results = append(results, Completion{
				Display: name,
				Item:    it.Value().(CompletionItem),
			})
		}
	}

	return results
}

func (r *Registry) putType(name string, info *TypeInfo) {
	if _, exists := r.types.Get(name); exists {
		log.Debugf("Replacing custom type %q", name)
	}
	r.types.Put(name, info)
	log.Debug("Registered custom type", "type", name, "sep", info.separator, "members", info.Len())
}

func (r *Registry) putGlobal(item CompletionItem) {
	if item.Category == "" {
		item.Category = CategoryGlobal
	}
	r.globals.Put(item.Display, item)
	log.Debug("Registered global", "name", item.Display)
}
