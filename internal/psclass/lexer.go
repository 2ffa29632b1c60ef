package psclass

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

const bt = "`"

var psLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Help", Pattern: `<#(?s:.*?)#>`},
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "HereString", Pattern: `@"(?s:.*?)\n"@|@'(?s:.*?)\n'@`},
	{Name: "String", Pattern: `"(?:` + bt + `(?s:.)|""|[^"` + bt + `])*"|'(?:''|[^'])*'`},
	{Name: "Variable", Pattern: `\$(?:\{[^}]*\}|[\w:?^]+)`},
	{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t\f\r]+|` + bt + `\r?\n`},
	{Name: "Punct", Pattern: `::|[\[\](){}=;,:.+\-*/<>!|&%@?]`},
	{Name: "Other", Pattern: `\S`},
})

type token struct {
	kind  string
	value string
	pos   lexer.Position
}

func tokenize(path string, src string) ([]token, error) {
	names := make(map[lexer.TokenType]string)
	for name, typ := range psLexer.Symbols() {
		names[typ] = name
	}

	lex, err := psLexer.LexString(path, src)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize %s: %w", path, err)
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize %s: %w", path, err)
	}

	toks := make([]token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() {
			break
		}
		kind := names[t.Type]
		if kind == "Whitespace" || kind == "Comment" {
			continue
		}
		toks = append(toks, token{kind: kind, value: t.Value, pos: t.Pos})
	}
	return toks, nil
}

type cursor struct {
	toks []token
	i    int
}

func (c *cursor) eof() bool {
	return c.i >= len(c.toks)
}

func (c *cursor) peekAt(n int) token {
	if c.i+n >= len(c.toks) {
		return token{kind: "EOF"}
	}
	return c.toks[c.i+n]
}

func (c *cursor) peek() token {
	return c.peekAt(0)
}

func (c *cursor) next() token {
	t := c.peek()
	if !c.eof() {
		c.i++
	}
	return t
}

// is matches punctuation exactly and identifiers case-insensitively.
func (t token) is(kind, value string) bool {
	if t.kind != kind {
		return false
	}
	if kind == "Ident" {
		return strings.EqualFold(t.value, value)
	}
	return t.value == value
}

func (t token) punct(value string) bool {
	return t.is("Punct", value)
}

func (c *cursor) skipNewlines() {
	for c.peek().kind == "Newline" || c.peek().punct(";") {
		c.next()
	}
}

// skipBalanced consumes a bracketed group starting at the current open token.
func (c *cursor) skipBalanced(open, closing string) {
	depth := 0
	for !c.eof() {
		t := c.next()
		switch {
		case t.punct(open):
			depth++
		case t.punct(closing):
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// until collects tokens up to (not including) a newline, ';' or one of the
// given closers at nesting depth zero.
func (c *cursor) until(closers ...string) []token {
	var out []token
	depth := 0
	for !c.eof() {
		t := c.peek()
		if depth == 0 {
			if t.kind == "Newline" || t.punct(";") {
				return out
			}
			for _, cl := range closers {
				if t.punct(cl) {
					return out
				}
			}
		}
		switch {
		case t.punct("("), t.punct("{"), t.punct("["):
			depth++
		case t.punct(")"), t.punct("}"), t.punct("]"):
			depth--
		}
		out = append(out, c.next())
	}
	return out
}

func (c *cursor) errorf(format string, args ...any) error {
	t := c.peek()
	msg := fmt.Sprintf(format, args...)
	if t.kind == "EOF" {
		return fmt.Errorf("%s: unexpected end of file", msg)
	}
	return fmt.Errorf("%s:%d:%d: %s (found %q)", t.pos.Filename, t.pos.Line, t.pos.Column, msg, t.value)
}
