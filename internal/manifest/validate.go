package manifest

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/takumiyoshikawa/dscgen/internal/ordered"
	"github.com/takumiyoshikawa/dscgen/internal/resource"
	"github.com/takumiyoshikawa/dscgen/internal/schema"
)

// Validate compiles the embedded schema of r and checks every property
// default against its own fragment.
func Validate(r resource.ResourceDescriptor, allowNullKeys bool) error {
	raw, err := ordered.MarshalJSON(schema.Resource(r, allowNullKeys))
	if err != nil {
		return fmt.Errorf("failed to marshal schema for %s: %w", r.ClassName, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to unmarshal schema for %s: %w", r.ClassName, err)
	}

	loc := r.ClassName + ".schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(loc, doc); err != nil {
		return fmt.Errorf("failed to add schema for %s: %w", r.ClassName, err)
	}
	if _, err := compiler.Compile(loc); err != nil {
		return fmt.Errorf("invalid schema for %s: %w", r.ClassName, err)
	}

	for _, p := range r.Properties {
		if p.Default == nil {
			continue
		}
		prop, err := compiler.Compile(loc + "#/properties/" + p.Name)
		if err != nil {
			return fmt.Errorf("invalid schema for %s.%s: %w", r.ClassName, p.Name, err)
		}
		value, err := jsonValue(p.Default)
		if err != nil {
			return fmt.Errorf("default of %s.%s: %w", r.ClassName, p.Name, err)
		}
		if err := prop.Validate(value); err != nil {
			return fmt.Errorf("default of %s.%s does not match its schema: %w", r.ClassName, p.Name, err)
		}
	}
	return nil
}

func jsonValue(v any) (any, error) {
	raw, err := ordered.MarshalJSON(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}
