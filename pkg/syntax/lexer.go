package syntax

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/cockroachdb/errors"
)

// Kind classifies a token.
type Kind int

const (
	KindIdentifier Kind = iota
	KindFunction
	KindKeyword
	KindType
	KindSpecial
	KindNumber
	KindString
	KindComment
	KindPunct
	KindWhitespace
)

var kindNames = [...]string{
	KindIdentifier: "identifier",
	KindFunction:   "function",
	KindKeyword:    "keyword",
	KindType:       "type",
	KindSpecial:    "special",
	KindNumber:     "number",
	KindString:     "string",
	KindComment:    "comment",
	KindPunct:      "punct",
	KindWhitespace: "whitespace",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is a classified piece of a document. Offset is in bytes.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

// Harvestable reports whether the token is a word worth learning.
func (t Token) Harvestable() bool {
	return t.Kind == KindIdentifier || t.Kind == KindFunction
}

// Tokenizer splits documents of one language into classified tokens.
type Tokenizer struct {
	syntax  Syntax
	def     *lexer.StatefulDefinition
	symbols map[lexer.TokenType]string
}

// NewTokenizer builds a tokenizer for s.
func NewTokenizer(s Syntax) (*Tokenizer, error) {
	def, err := lexer.NewSimple(rulesFor(s))
	if err != nil {
		return nil, errors.Wrapf(err, "build lexer for %s", s.Language)
	}
	symbols := make(map[lexer.TokenType]string)
	for name, tt := range def.Symbols() {
		symbols[tt] = name
	}
	return &Tokenizer{syntax: s, def: def, symbols: symbols}, nil
}

func rulesFor(s Syntax) []lexer.SimpleRule {
	var comments []string
	if open, closing := s.CommentMultiline[0], s.CommentMultiline[1]; open != "" && closing != "" {
		comments = append(comments, "(?s:"+regexp.QuoteMeta(open)+".*?"+regexp.QuoteMeta(closing)+")")
	}
	if s.Comment != "" {
		comments = append(comments, regexp.QuoteMeta(s.Comment)+`[^\n]*`)
	}

	var rules []lexer.SimpleRule
	if len(comments) > 0 {
		rules = append(rules, lexer.SimpleRule{Name: "Comment", Pattern: strings.Join(comments, "|")})
	}
	return append(rules,
		lexer.SimpleRule{Name: "String", Pattern: `"(?:\\.|[^"\\\n])*"|'(?:\\.|[^'\\\n])*'|` + "`[^`]*`"},
		lexer.SimpleRule{Name: "Number", Pattern: `0[xX][0-9a-fA-F]+|\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`},
		lexer.SimpleRule{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
		lexer.SimpleRule{Name: "Whitespace", Pattern: `\s+`},
		lexer.SimpleRule{Name: "Punct", Pattern: `[^\s]`},
	)
}

// Tokenize splits text into tokens. An identifier directly followed by an
// opening parenthesis is classified as a function.
func (t *Tokenizer) Tokenize(text string) ([]Token, error) {
	lex, err := t.def.LexString("", text)
	if err != nil {
		return nil, errors.Wrap(err, "start lexer")
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.Wrap(err, "tokenize document")
	}

	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		if tok.EOF() {
			break
		}
		tokens = append(tokens, Token{
			Kind:   t.classify(tok),
			Text:   tok.Value,
			Offset: tok.Pos.Offset,
		})
	}

	for i := range tokens {
		if tokens[i].Kind != KindIdentifier {
			continue
		}
		if next := nextSignificant(tokens, i+1); next >= 0 && tokens[next].Text == "(" {
			tokens[i].Kind = KindFunction
		}
	}
	return tokens, nil
}

func (t *Tokenizer) classify(tok lexer.Token) Kind {
	switch t.symbols[tok.Type] {
	case "Comment":
		return KindComment
	case "String":
		return KindString
	case "Number":
		return KindNumber
	case "Whitespace":
		return KindWhitespace
	case "Punct":
		return KindPunct
	}
	switch {
	case t.syntax.IsKeyword(tok.Value):
		return KindKeyword
	case t.syntax.IsType(tok.Value):
		return KindType
	case t.syntax.IsSpecial(tok.Value):
		return KindSpecial
	}
	return KindIdentifier
}

func nextSignificant(tokens []Token, from int) int {
	for i := from; i < len(tokens); i++ {
		if tokens[i].Kind != KindWhitespace {
			return i
		}
	}
	return -1
}
