/*
Package catalog loads custom types and globals from declarative files.

A catalog lists types with their separator and members, plus global
completions. The same structure is accepted as TOML or YAML:

	[[types]]
	name = "player"
	separator = ":"

	[[types.members]]
	name = "jump"
	snippet = "jump($height)"
	doc = "Makes the player jump."
	kind = "function"

	[[globals]]
	name = "foreach"
	snippet = "for _, $v in ipairs(t) do\nend"
*/
package catalog

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/snipserve/internal/utils"
	"github.com/bastiangx/snipserve/pkg/registry"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a catalog file.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// Catalog is the content of one catalog file.
type Catalog struct {
	Types   []TypeEntry   `toml:"types" yaml:"types" msgpack:"types"`
	Globals []MemberEntry `toml:"globals" yaml:"globals" msgpack:"globals"`
}

// TypeEntry declares a custom type. An empty separator means ".".
type TypeEntry struct {
	Name      string        `toml:"name" yaml:"name" msgpack:"name"`
	Separator string        `toml:"separator" yaml:"separator" msgpack:"sep"`
	Members   []MemberEntry `toml:"members" yaml:"members" msgpack:"members"`
}

// MemberEntry declares a member or a global.
type MemberEntry struct {
	Name    string `toml:"name" yaml:"name" msgpack:"name"`
	Snippet string `toml:"snippet,omitempty" yaml:"snippet,omitempty" msgpack:"snippet,omitempty"`
	Doc     string `toml:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
	Kind    string `toml:"kind,omitempty" yaml:"kind,omitempty" msgpack:"kind,omitempty"`
}

// FormatOf returns the catalog format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch utils.Ext(path) {
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", errors.WithHint(
		errors.Newf("unsupported catalog file %s", path),
		"catalogs are .toml, .yaml or .yml files",
	)
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return c, nil
}

// Parse decodes and validates a catalog.
func Parse(data []byte, format Format) (*Catalog, error) {
	var c Catalog
	switch format {
	case TOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
			return nil, errors.Wrap(err, "decode toml")
		}
	case YAML:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, errors.Wrap(err, "decode yaml")
		}
	default:
		return nil, errors.Newf("unknown catalog format %q", format)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks names, separators and kinds.
func (c *Catalog) Validate() error {
	for i, t := range c.Types {
		if t.Name == "" {
			return errors.Newf("type %d has no name", i)
		}
		if _, err := ParseSeparator(t.Separator); err != nil {
			return errors.Wrapf(err, "type %s", t.Name)
		}
		for j, m := range t.Members {
			if err := m.validate(); err != nil {
				return errors.Wrapf(err, "type %s member %d", t.Name, j)
			}
		}
	}
	for i, g := range c.Globals {
		if err := g.validate(); err != nil {
			return errors.Wrapf(err, "global %d", i)
		}
	}
	return nil
}

func (m MemberEntry) validate() error {
	if m.Name == "" {
		return errors.New("missing name")
	}
	_, err := ParseKind(m.Kind)
	return err
}

// ParseSeparator accepts ".", ":", "dot", "colon" or "" for the default.
func ParseSeparator(s string) (registry.Separator, error) {
	switch s {
	case "", ".", "dot":
		return registry.Dot, nil
	case ":", "colon":
		return registry.Colon, nil
	}
	return 0, errors.WithHint(
		errors.Newf("invalid separator %q", s),
		`use "." or ":"`,
	)
}

// ParseKind maps a kind name onto a category. An empty kind leaves the
// category for the registry to default.
func ParseKind(s string) (registry.Category, error) {
	switch c := registry.Category(s); c {
	case "", registry.CategoryGlobal, registry.CategoryField, registry.CategoryFunction,
		registry.CategorySnippet, registry.CategoryType, registry.CategoryWord:
		return c, nil
	}
	return "", errors.Newf("invalid kind %q", s)
}

func (m MemberEntry) member() registry.Member {
	kind, _ := ParseKind(m.Kind)
	return registry.Member{
		Name:          m.Name,
		Snippet:       m.Snippet,
		Documentation: m.Doc,
		Category:      kind,
	}
}

// Describe turns the entry into a registry type description.
func (t TypeEntry) Describe() registry.TypeSpec {
	sep, _ := ParseSeparator(t.Separator)
	spec := registry.TypeSpec{Name: t.Name, Separator: sep}
	for _, m := range t.Members {
		spec.Members = append(spec.Members, m.member())
	}
	return spec
}

// Apply registers every type and global of c into reg. Types replace
// registered types of the same name.
func (c *Catalog) Apply(reg *registry.Registry) {
	for _, t := range c.Types {
		reg.RegisterDescriptor(t)
	}
	for _, g := range c.Globals {
		m := g.member()
		if m.Category == "" && m.Snippet != "" {
			m.Category = registry.CategorySnippet
		}
		reg.RegisterGlobalItem(registry.CompletionItem{
			Display:       m.Name,
			Snippet:       m.Snippet,
			Documentation: m.Documentation,
			Category:      m.Category,
		})
	}
	log.Debug("Applied catalog", "types", len(c.Types), "globals", len(c.Globals))
}

// LoadInto loads the catalog at path and applies it to reg.
func LoadInto(reg *registry.Registry, path string) (*Catalog, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.Apply(reg)
	return c, nil
}
