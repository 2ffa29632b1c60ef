// Package psclass scans PowerShell source for DSC resource classes and turns
// them into resource descriptors. It understands class and enum declarations,
// member attributes, default values and comment-based help; method bodies are
// skipped.
package psclass

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/takumiyoshikawa/dscgen/internal/foldmap"
	"github.com/takumiyoshikawa/dscgen/internal/input"
	"github.com/takumiyoshikawa/dscgen/internal/resource"
)

// ErrNoResources is returned when a source file declares no [DscResource()]
// class.
var ErrNoResources = errors.New("no DSC resource classes found")

type attribute struct {
	name string
	args [][]token
}

type member struct {
	name       string
	typeName   string
	attributes []attribute
	defaultVal any
	hidden     bool
	static     bool
	method     bool
}

type class struct {
	name       string
	base       string
	attributes []attribute
	members    []member
	help       *help
}

func (c class) isResource() bool {
	return hasAttribute(c.attributes, "DscResource")
}

type file struct {
	path      string
	classes   []class
	enums     *foldmap.Map[[]string]
	modules   []string
	firstHelp *help
}

func hasAttribute(attrs []attribute, name string) bool {
	_, ok := findAttribute(attrs, name)
	return ok
}

func findAttribute(attrs []attribute, name string) (attribute, bool) {
	for _, a := range attrs {
		if strings.EqualFold(a.name, name) {
			return a, true
		}
	}
	return attribute{}, false
}

// ParseFile scans the file at path. Enums from `using module` files next to it
// are visible to its classes.
func ParseFile(path string) ([]resource.ResourceDescriptor, error) {
	data, err := input.Read(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Parse scans src, which was read from path.
func Parse(path string, src []byte) ([]resource.ResourceDescriptor, error) {
	f, err := scan(path, string(src))
	if err != nil {
		return nil, err
	}

	for _, mod := range f.modules {
		f.importEnums(mod)
	}

	var out []resource.ResourceDescriptor
	for _, c := range f.classes {
		if !c.isResource() {
			continue
		}
		out = append(out, f.descriptor(c))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoResources, path)
	}
	return out, nil
}

func scan(path, src string) (*file, error) {
	toks, err := tokenize(path, src)
	if err != nil {
		return nil, err
	}

	f := &file{path: path, enums: foldmap.New[[]string]()}
	c := &cursor{toks: toks}

	var pending []attribute
	var lastHelp *help
	for !c.eof() {
		t := c.peek()
		switch {
		case t.kind == "Help":
			c.next()
			if h := parseHelp(t.value); h != nil {
				lastHelp = h
				if f.firstHelp == nil {
					f.firstHelp = h
				}
			}
		case t.kind == "Newline":
			c.next()
		case t.punct("["):
			attr, _, err := c.bracket()
			if err != nil {
				return nil, err
			}
			if attr != nil {
				pending = append(pending, *attr)
			}
		case t.is("Ident", "using"):
			c.next()
			if c.peek().is("Ident", "module") {
				c.next()
				if mod := moduleRef(c.until()); mod != "" {
					f.modules = append(f.modules, mod)
				}
			}
		case t.is("Ident", "enum"):
			name, members, err := c.enumDecl()
			if err != nil {
				return nil, err
			}
			f.enums.Set(name, members)
			pending = nil
		case t.is("Ident", "class"):
			cl, err := c.classDecl()
			if err != nil {
				return nil, err
			}
			cl.attributes = pending
			cl.help = lastHelp
			lastHelp = nil
			f.classes = append(f.classes, cl)
			pending = nil
		case t.punct("{"):
			c.skipBalanced("{", "}")
			pending = nil
		default:
			c.next()
			pending = nil
		}
	}
	return f, nil
}

func moduleRef(toks []token) string {
	if len(toks) == 1 && toks[0].kind == "String" {
		return unquote(toks[0].value)
	}
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.value)
	}
	return b.String()
}

// bracket reads "[...]" and returns either an attribute or a type literal.
func (c *cursor) bracket() (*attribute, string, error) {
	c.next()
	if c.peek().kind == "Ident" && c.peekAt(1).punct("(") {
		attr := &attribute{name: c.next().value}
		attr.args = c.args()
		if !c.peek().punct("]") {
			return nil, "", c.errorf("expected ] after attribute %s", attr.name)
		}
		c.next()
		return attr, "", nil
	}

	var b strings.Builder
	depth := 1
	for !c.eof() {
		t := c.next()
		switch {
		case t.punct("["):
			depth++
		case t.punct("]"):
			depth--
			if depth == 0 {
				return nil, b.String(), nil
			}
		}
		b.WriteString(t.value)
	}
	return nil, "", c.errorf("unterminated type literal")
}

// args reads a parenthesized argument list, one token slice per argument.
func (c *cursor) args() [][]token {
	c.next()
	var args [][]token
	var cur []token
	depth := 0
	for !c.eof() {
		t := c.next()
		switch {
		case t.kind == "Newline":
			continue
		case t.punct("("), t.punct("["), t.punct("{"):
			depth++
		case t.punct(")") && depth == 0:
			if len(cur) > 0 {
				args = append(args, cur)
			}
			return args
		case t.punct(")"), t.punct("]"), t.punct("}"):
			depth--
		case t.punct(",") && depth == 0:
			args = append(args, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	return args
}

func (c *cursor) enumDecl() (string, []string, error) {
	c.next()
	name := c.next()
	if name.kind != "Ident" {
		return "", nil, c.errorf("expected enum name")
	}
	c.skipNewlines()
	if !c.peek().punct("{") {
		return "", nil, c.errorf("expected { after enum %s", name.value)
	}
	c.next()

	var members []string
	for !c.eof() {
		t := c.peek()
		switch {
		case t.punct("}"):
			c.next()
			return name.value, members, nil
		case t.kind == "Ident":
			members = append(members, c.next().value)
			c.until("}")
		default:
			c.next()
		}
	}
	return "", nil, c.errorf("unterminated enum %s", name.value)
}

func (c *cursor) classDecl() (class, error) {
	c.next()
	name := c.next()
	if name.kind != "Ident" {
		return class{}, c.errorf("expected class name")
	}
	cl := class{name: name.value}

	if c.peek().punct(":") {
		c.next()
		if base := c.next(); base.kind == "Ident" {
			cl.base = base.value
		}
	}
	for !c.eof() && !c.peek().punct("{") {
		c.next()
	}
	if c.eof() {
		return class{}, c.errorf("expected { after class %s", cl.name)
	}
	c.next()

	for !c.eof() {
		if c.peek().punct("}") {
			c.next()
			return cl, nil
		}
		m, ok, err := c.member()
		if err != nil {
			return class{}, err
		}
		if ok {
			cl.members = append(cl.members, m)
		}
	}
	return class{}, c.errorf("unterminated class %s", cl.name)
}

func (c *cursor) member() (member, bool, error) {
	var m member
	for !c.eof() {
		t := c.peek()
		switch {
		case t.kind == "Newline", t.kind == "Help", t.punct(";"):
			c.next()
		case t.punct("["):
			attr, typ, err := c.bracket()
			if err != nil {
				return member{}, false, err
			}
			if attr != nil {
				m.attributes = append(m.attributes, *attr)
			} else {
				m.typeName = typ
			}
		case t.is("Ident", "hidden"):
			c.next()
			m.hidden = true
		case t.is("Ident", "static"):
			c.next()
			m.static = true
		case t.kind == "Variable":
			c.next()
			m.name = strings.TrimPrefix(t.value, "$")
			if c.peek().punct("=") {
				c.next()
				m.defaultVal = literal(c.until("}"))
			}
			return m, true, nil
		case t.kind == "Ident" && c.peekAt(1).punct("("):
			c.next()
			m.name = t.value
			m.method = true
			c.skipBalanced("(", ")")
			c.skipNewlines()
			if c.peek().punct("{") {
				c.skipBalanced("{", "}")
			}
			return m, true, nil
		case t.punct("}"):
			return member{}, false, nil
		default:
			c.next()
		}
	}
	return member{}, false, nil
}

func (f *file) importEnums(mod string) {
	if !strings.HasSuffix(strings.ToLower(mod), ".psm1") && !strings.HasSuffix(strings.ToLower(mod), ".ps1") {
		slog.Debug("skipping using module without a script path", "module", mod, "source", f.path)
		return
	}
	path := filepath.FromSlash(strings.ReplaceAll(mod, `\`, "/"))
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(f.path), path)
	}

	data, err := input.Read(path)
	if err != nil {
		slog.Debug("skipping unreadable using module", "module", path, "error", err)
		return
	}
	other, err := scan(path, string(data))
	if err != nil {
		slog.Debug("skipping unparsable using module", "module", path, "error", err)
		return
	}
	other.enums.Each(func(name string, members []string) {
		if !f.enums.Has(name) {
			f.enums.Set(name, members)
		}
	})
}
