// Package jsonschema provides JSON Schema generation for dscgen configuration files.
package jsonschema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/takumiyoshikawa/dscgen/internal/config"
)

// Generate creates a JSON Schema from the Config type for editor autocomplete and validation.
func Generate() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Use yaml struct tags for property names instead of Go field names.
		FieldNameTag: "yaml",
		// dscgen.yml is a flat object; inline it instead of emitting a $ref.
		ExpandedStruct: true,
	}

	s := r.Reflect(&config.Config{})

	s.ID = "https://raw.githubusercontent.com/takumiyoshikawa/dscgen/main/schema.json"
	s.Title = "dscgen"
	s.Description = "Schema for dscgen YAML configuration files (dscgen.yml)"

	return json.MarshalIndent(s, "", "  ")
}
