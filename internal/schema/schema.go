// Package schema generates the JSON Schema embedded in a resource manifest.
package schema

import (
	"fmt"

	"github.com/takumiyoshikawa/dscgen/internal/ordered"
	"github.com/takumiyoshikawa/dscgen/internal/resource"
	"github.com/takumiyoshikawa/dscgen/internal/typemap"
)

// DraftURI is the dialect of every generated schema.
const DraftURI = "https://json-schema.org/draft/2020-12/schema"

// Property builds the schema fragment for one property. An enum-bearing
// property never gets a type, so it is never unioned with null. Whether the
// property is required does not affect the fragment.
func Property(p resource.PropertyDescriptor, readOnly, forceNullable bool) *ordered.Map {
	frag := ordered.New()
	if readOnly {
		frag.Set("readOnly", true)
	}
	if p.Description != "" {
		frag.Set("description", p.Description)
	}

	if values := enumValues(p); len(values) > 0 {
		frag.Set("enum", values)
		setDefault(frag, p.Default)
		return frag
	}

	info := typemap.Resolve(p.Type)
	if info.IsArray {
		items := ordered.New()
		items.Set("type", typemap.MapBaseType(info.BaseType))
		frag.Set("type", "array")
		frag.Set("items", items)
		setDefault(frag, p.Default)
		return frag
	}

	mapped := typemap.MapBaseType(info.BaseType)
	if info.IsNullable || forceNullable {
		frag.Set("type", []any{mapped, "null"})
	} else {
		frag.Set("type", mapped)
	}
	setDefault(frag, p.Default)
	return frag
}

func enumValues(p resource.PropertyDescriptor) []any {
	src := p.ValidValues
	if len(src) == 0 {
		src = p.EnumValues
	}
	if len(src) == 0 {
		return nil
	}
	values := make([]any, len(src))
	for i, v := range src {
		values[i] = v
	}
	return values
}

func setDefault(frag *ordered.Map, def any) {
	if def == nil {
		return
	}
	frag.Set("default", def)
}

// Resource builds the object schema for a resource class. With allowNullKeys
// the key properties accept null while staying in the required list.
func Resource(r resource.ResourceDescriptor, allowNullKeys bool) *ordered.Map {
	props := ordered.New()
	var required []any
	for _, p := range r.Properties {
		if p.Required() {
			required = append(required, p.Name)
		}
		props.Set(p.Name, Property(p, p.IsNotConfigurable, allowNullKeys && p.IsKey))
	}

	s := ordered.New()
	s.Set("$schema", DraftURI)
	s.Set("type", "object")
	s.Set("title", r.ClassName+" Schema")
	s.Set("description", fmt.Sprintf("Schema for the %s DSC resource.", r.ClassName))
	s.Set("additionalProperties", false)
	s.Set("properties", props)
	if len(required) > 0 {
		s.Set("required", required)
	}
	return s
}
