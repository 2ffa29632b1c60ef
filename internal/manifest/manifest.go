// Package manifest builds DSC resource manifests from resource descriptors.
package manifest

import (
	"fmt"
	"strings"

	"github.com/takumiyoshikawa/dscgen/internal/ordered"
	"github.com/takumiyoshikawa/dscgen/internal/resource"
	"github.com/takumiyoshikawa/dscgen/internal/schema"
)

const (
	SchemaURI         = "https://aka.ms/dsc/schemas/v3/bundled/resource/manifest.json"
	DefaultVersion    = "0.1.0"
	DefaultScriptFile = "resource.ps1"

	// PlaceholderExecutable is written when no executable was configured.
	PlaceholderExecutable = "<executable>"
)

type Options struct {
	TypePrefix  string
	Version     string
	Description string
	Executable  string

	// UseResourceScript routes every operation through a pwsh adapter script
	// instead of a native executable.
	UseResourceScript bool
	ScriptFile        string
	ModuleFile        string

	AllowNullKeys bool
}

// ResourceType joins the prefix and class name, e.g. "Contoso.Apps/MyResource".
func ResourceType(prefix, className string) string {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return className
	}
	return prefix + "/" + className
}

// Entry builds one manifest entry.
func Entry(r resource.ResourceDescriptor, opts Options) *ordered.Map {
	version := opts.Version
	if version == "" {
		version = DefaultVersion
	}
	typ := ResourceType(opts.TypePrefix, r.ClassName)

	m := ordered.New()
	m.Set("$schema", SchemaURI)
	m.Set("type", typ)
	m.Set("version", version)
	m.Set("description", description(r, opts.Description))
	m.Set("exitCodes", exitCodes())

	embedded := ordered.New()
	embedded.Set("embedded", schema.Resource(r, opts.AllowNullKeys))
	m.Set("schema", embedded)

	for _, op := range r.SupportedOperations() {
		executable, args := invocation(op, r.ClassName, typ, opts)
		sub := ordered.New()
		sub.Set("executable", executable)
		sub.Set("args", args)
		m.Set(string(op), sub)
	}
	return m
}

// List wraps several entries the way a multi-resource manifest file expects.
func List(entries []*ordered.Map) *ordered.Map {
	m := ordered.New()
	m.Set("resources", entries)
	return m
}

func description(r resource.ResourceDescriptor, override string) string {
	switch {
	case override != "":
		return override
	case r.Synopsis != "":
		return r.Synopsis
	case r.Description != "":
		return r.Description
	default:
		return fmt.Sprintf("DSC resource %s generated from %s.", r.ClassName, sourceName(r.Source))
	}
}

func sourceName(src string) string {
	if src == "" {
		return "a PowerShell class"
	}
	if i := strings.LastIndexAny(src, `/\`); i >= 0 {
		return src[i+1:]
	}
	return src
}

func exitCodes() *ordered.Map {
	codes := ordered.New()
	codes.Set("0", "Success")
	codes.Set("1", "Error")
	codes.Set("2", "Invalid JSON")
	return codes
}
