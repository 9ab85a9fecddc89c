// Package syntax holds language definitions used to seed the keyword
// dictionary and to tokenize documents for learned words.
package syntax

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Syntax describes the vocabulary and comment style of a language.
type Syntax struct {
	Language         string
	CaseSensitive    bool
	Comment          string
	CommentMultiline [2]string
	Keywords         []string
	Types            []string
	Special          []string
}

func (s Syntax) has(set []string, word string) bool {
	if s.CaseSensitive {
		return slices.Contains(set, word)
	}
	return slices.ContainsFunc(set, func(w string) bool { return strings.EqualFold(w, word) })
}

// IsKeyword reports whether word is a keyword.
func (s Syntax) IsKeyword(word string) bool { return s.has(s.Keywords, word) }

// IsType reports whether word is a builtin type.
func (s Syntax) IsType(word string) bool { return s.has(s.Types, word) }

// IsSpecial reports whether word is a special identifier.
func (s Syntax) IsSpecial(word string) bool { return s.has(s.Special, word) }

// Words returns keywords, types and special words in that order.
func (s Syntax) Words() []string {
	words := make([]string, 0, len(s.Keywords)+len(s.Types)+len(s.Special))
	words = append(words, s.Keywords...)
	words = append(words, s.Types...)
	return append(words, s.Special...)
}

var languages = map[string]func() Syntax{
	"javascript": JavaScript,
	"js":         JavaScript,
	"lua":        Lua,
}

// ByName returns the builtin language definition for name.
func ByName(name string) (Syntax, error) {
	ctor, ok := languages[strings.ToLower(name)]
	if !ok {
		return Syntax{}, errors.WithHint(
			errors.Newf("unknown language %q", name),
			"supported languages are javascript and lua")
	}
	return ctor(), nil
}

// JavaScript returns the JavaScript definition.
func JavaScript() Syntax {
	return Syntax{
		Language:         "JavaScript",
		CaseSensitive:    true,
		Comment:          "//",
		CommentMultiline: [2]string{"/*", "*/"},
		Keywords: []string{
			"if", "else", "switch", "case", "default", "break", "continue",
			"return", "throw", "try", "catch", "finally",
			"for", "while", "do",
			"var", "let", "const", "function", "class", "extends",
			"import", "export", "from", "as",
			"new", "delete", "typeof", "instanceof", "in", "of", "void",
			"async", "await", "yield",
			"this", "super", "static", "get", "set", "with", "debugger",
		},
		Types: []string{
			"Object", "Function", "Boolean", "Symbol",
			"Error", "AggregateError", "EvalError", "RangeError",
			"ReferenceError", "SyntaxError", "TypeError", "URIError",
			"Number", "BigInt", "Math", "Date",
			"String", "RegExp",
			"Array", "Int8Array", "Uint8Array", "Float32Array", "Float64Array",
			"Map", "Set", "WeakMap", "WeakSet",
			"ArrayBuffer", "DataView", "JSON",
			"Promise", "Proxy", "Reflect",
		},
		Special: []string{
			"true", "false", "null", "undefined", "NaN", "Infinity",
			"console", "window", "document", "globalThis",
		},
	}
}

// Lua returns the Lua definition. Lua methods are called with ':', which
// makes it the usual home of colon style custom types.
func Lua() Syntax {
	return Syntax{
		Language:         "Lua",
		CaseSensitive:    true,
		Comment:          "--",
		CommentMultiline: [2]string{"--[[", "]]"},
		Keywords: []string{
			"and", "break", "do", "else", "elseif", "end", "for", "function",
			"goto", "if", "in", "local", "not", "or", "repeat", "return",
			"then", "until", "while",
		},
		Types: []string{
			"string", "table", "math", "coroutine", "io", "os", "utf8", "debug",
		},
		Special: []string{
			"true", "false", "nil", "self", "_G", "_ENV",
		},
	}
}
