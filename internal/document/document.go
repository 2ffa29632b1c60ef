// Package document assembles and serializes DSC configuration documents.
package document

import (
	"fmt"
	"strings"

	"github.com/takumiyoshikawa/dscgen/internal/convert"
	"github.com/takumiyoshikawa/dscgen/internal/mof"
	"github.com/takumiyoshikawa/dscgen/internal/ordered"
)

const SchemaURI = "https://aka.ms/dsc/schemas/v3/bundled/config/document.json"

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (supported: json, yaml)", s)
	}
}

// Extension is the file extension used for documents in f.
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

func Assemble(resources []convert.Resource) *ordered.Map {
	items := make([]any, len(resources))
	for i, r := range resources {
		items[i] = r.Map()
	}
	doc := ordered.New()
	doc.Set("$schema", SchemaURI)
	doc.Set("resources", items)
	return doc
}

func Marshal(doc *ordered.Map, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return ordered.MarshalYAML(doc)
	case FormatJSON, "":
		return ordered.MarshalJSON(doc)
	default:
		return nil, fmt.Errorf("unsupported output format %q", f)
	}
}

// Render converts parsed instances and serializes the resulting document.
func Render(instances []mof.Instance, prefix string, f Format) ([]byte, error) {
	return Marshal(Assemble(convert.Instances(instances, prefix)), f)
}
