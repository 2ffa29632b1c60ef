// Package convert turns parsed MOF instances into DSC configuration document
// resources.
package convert

import (
	"regexp"

	"github.com/takumiyoshikawa/dscgen/internal/foldmap"
	"github.com/takumiyoshikawa/dscgen/internal/mof"
)

const (
	propResourceID        = "ResourceID"
	propSourceInfo        = "SourceInfo"
	propModuleName        = "ModuleName"
	propModuleVersion     = "ModuleVersion"
	propDependsOn         = "DependsOn"
	propConfigurationName = "ConfigurationName"
)

var identityPattern = regexp.MustCompile(`^\[([^\]]+)\](.+)$`)

// Identity is where an instance ends up in the configuration document.
type Identity struct {
	// Declared is the raw ResourceID, empty when the instance has none.
	Declared string
	Type     string
	Name     string
}

// parseIdentity splits "[Kind]Name".
func parseIdentity(id string) (kind, name string, ok bool) {
	m := identityPattern.FindStringSubmatch(id)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// properties indexes an instance's properties by case-insensitive name.
func properties(inst mof.Instance) *foldmap.Map[mof.Value] {
	props := foldmap.New[mof.Value]()
	for _, p := range inst.Properties {
		props.Set(p.Name, p.Value)
	}
	return props
}

func stringProperty(props *foldmap.Map[mof.Value], name string) string {
	v, ok := props.Get(name)
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case mof.String:
		return string(val)
	case mof.EnumName:
		return string(val)
	case mof.Null:
		return ""
	default:
		return mof.Text(v)
	}
}

// typePrefix picks the explicit prefix, then the instance's ModuleName, then
// its class name.
func typePrefix(inst mof.Instance, props *foldmap.Map[mof.Value], prefix string) string {
	if prefix != "" {
		return prefix
	}
	if module := stringProperty(props, propModuleName); module != "" {
		return module
	}
	return inst.ClassName
}

// ResolveIdentity derives the document type and name of inst. An explicit
// prefix overrides the instance's ModuleName.
func ResolveIdentity(inst mof.Instance, prefix string) Identity {
	return resolveIdentity(inst, properties(inst), prefix)
}

func resolveIdentity(inst mof.Instance, props *foldmap.Map[mof.Value], prefix string) Identity {
	id := Identity{Declared: stringProperty(props, propResourceID)}
	p := typePrefix(inst, props, prefix)

	if kind, name, ok := parseIdentity(id.Declared); ok {
		id.Type = p + "/" + kind
		id.Name = name
		return id
	}

	id.Type = p + "/" + inst.ClassName
	switch {
	case inst.Alias != "":
		id.Name = inst.Alias
	default:
		id.Name = inst.ClassName
	}
	return id
}
