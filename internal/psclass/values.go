package psclass

import (
	"strconv"
	"strings"
)

var backtickEscapes = map[byte]string{
	'n': "\n",
	't': "\t",
	'r': "\r",
	'0': "\x00",
	'`': "`",
	'"': `"`,
	'$': "$",
	'\'': "'",
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	quote := s[0]
	body := s[1 : len(s)-1]
	if quote == '\'' {
		return strings.ReplaceAll(body, "''", "'")
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case ch == '`' && i+1 < len(body):
			i++
			if esc, ok := backtickEscapes[body[i]]; ok {
				b.WriteString(esc)
			} else {
				b.WriteByte(body[i])
			}
		case ch == '"' && i+1 < len(body) && body[i+1] == '"':
			i++
			b.WriteByte('"')
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// literal evaluates a default value expression. Only constants are
// understood; anything else yields nil.
func literal(toks []token) any {
	if len(toks) == 0 {
		return nil
	}

	if toks[0].punct("@") && len(toks) >= 3 && toks[1].punct("(") && toks[len(toks)-1].punct(")") {
		return list(toks[2 : len(toks)-1])
	}
	if items := splitTop(toks, ","); len(items) > 1 {
		return list(toks)
	}

	// [Ensure]::Present
	if len(toks) >= 5 && toks[0].punct("[") && toks[len(toks)-2].punct("::") && toks[len(toks)-1].kind == "Ident" {
		return toks[len(toks)-1].value
	}

	negative := false
	if toks[0].punct("-") && len(toks) == 2 {
		negative = true
		toks = toks[1:]
	}
	if len(toks) != 1 {
		return nil
	}

	t := toks[0]
	switch t.kind {
	case "String":
		if negative {
			return nil
		}
		return unquote(t.value)
	case "Number":
		if i, err := strconv.ParseInt(t.value, 10, 64); err == nil {
			if negative {
				return -i
			}
			return i
		}
		if f, err := strconv.ParseFloat(t.value, 64); err == nil {
			if negative {
				return -f
			}
			return f
		}
	case "Variable":
		switch strings.ToLower(t.value) {
		case "$true":
			return true
		case "$false":
			return false
		}
	}
	return nil
}

func list(toks []token) any {
	var items []any
	for _, item := range splitTop(toks, ",") {
		item = trimNewlines(item)
		if len(item) == 0 {
			continue
		}
		v := literal(item)
		if v == nil {
			return nil
		}
		items = append(items, v)
	}
	if items == nil {
		items = []any{}
	}
	return items
}

// splitTop splits toks on sep at nesting depth zero.
func splitTop(toks []token, sep string) [][]token {
	var parts [][]token
	var cur []token
	depth := 0
	for _, t := range toks {
		switch {
		case t.punct("("), t.punct("{"), t.punct("["):
			depth++
		case t.punct(")"), t.punct("}"), t.punct("]"):
			depth--
		case depth == 0 && t.punct(sep):
			parts = append(parts, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	return append(parts, cur)
}

func trimNewlines(toks []token) []token {
	out := toks[:0:0]
	for _, t := range toks {
		if t.kind != "Newline" {
			out = append(out, t)
		}
	}
	return out
}
