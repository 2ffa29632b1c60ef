package mof

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/takumiyoshikawa/dscgen/internal/input"
)

var mofLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*([^*]|\*+[^*/])*\*+/`},
	{Name: "Pragma", Pattern: `#pragma[^\n]*`},
	{Name: "Alias", Pattern: `\$\w+`},
	{Name: "Real", Pattern: `[-+]?\d+\.\d+(?:[eE][-+]?\d+)?`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[A-Za-z_]\w*`},
	{Name: "Punct", Pattern: `[{}=;,\[\]():]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[documentNode](
	participle.Lexer(mofLexer),
	participle.Elide("Comment", "Pragma", "Whitespace"),
	participle.Unquote("String"),
	participle.CaseInsensitive("Ident"),
	participle.UseLookahead(2),
)

type documentNode struct {
	Instances []*instanceNode `parser:"@@*"`
}

type instanceNode struct {
	Pos        lexer.Position
	ClassName  string          `parser:"'instance' 'of' @Ident"`
	Alias      string          `parser:"('as' @Alias)?"`
	Properties []*propertyNode `parser:"'{' @@* '}' ';'?"`
}

type propertyNode struct {
	Name  string     `parser:"@Ident '='"`
	Value *valueNode `parser:"@@ ';'"`
}

type valueNode struct {
	Null     bool         `parser:"  @'NULL'"`
	Bool     *boolean     `parser:"| @('TRUE' | 'FALSE')"`
	Real     *float64     `parser:"| @Real"`
	Int      *int64       `parser:"| @Int"`
	Strings  []string     `parser:"| @String+"`
	Alias    *string      `parser:"| @Alias"`
	Enum     *string      `parser:"| @Ident"`
	List     bool         `parser:"| @'{'"`
	Elements []*valueNode `parser:"  (@@ (',' @@)*)? '}'"`
}

type boolean bool

func (b *boolean) Capture(values []string) error {
	*b = boolean(strings.EqualFold(values[0], "true"))
	return nil
}

func (v *valueNode) value() Value {
	switch {
	case v.Null:
		return Null{}
	case v.Bool != nil:
		return Boolean(*v.Bool)
	case v.Real != nil:
		return Real(*v.Real)
	case v.Int != nil:
		return Integer(*v.Int)
	case v.Strings != nil:
		// Adjacent string literals concatenate.
		return String(strings.Join(v.Strings, ""))
	case v.Alias != nil:
		return Reference(strings.TrimPrefix(*v.Alias, "$"))
	case v.Enum != nil:
		return EnumName(*v.Enum)
	case v.List:
		list := make(List, 0, len(v.Elements))
		for _, e := range v.Elements {
			list = append(list, e.value())
		}
		return list
	}
	return Null{}
}

// ParseError reports malformed MOF text.
type ParseError struct {
	Path string
	Pos  lexer.Position
	Err  error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("parse %s:%d:%d: %v", e.Path, e.Pos.Line, e.Pos.Column, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads every instance declared in data, in document order.
func Parse(path string, data []byte) ([]Instance, error) {
	doc, err := parser.ParseBytes(path, data)
	if err != nil {
		perr := &ParseError{Path: path, Err: err}
		var pe participle.Error
		if errors.As(err, &pe) {
			perr.Pos = pe.Position()
			perr.Err = errors.New(pe.Message())
		}
		return nil, perr
	}

	instances := make([]Instance, 0, len(doc.Instances))
	for _, n := range doc.Instances {
		inst := Instance{
			ClassName: n.ClassName,
			Alias:     strings.TrimPrefix(n.Alias, "$"),
		}
		for _, p := range n.Properties {
			inst.Properties = append(inst.Properties, Property{Name: p.Name, Value: p.Value.value()})
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

func ParseFile(path string) ([]Instance, error) {
	data, err := input.Read(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}
