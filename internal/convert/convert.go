package convert

import (
	"fmt"
	"log/slog"

	"github.com/takumiyoshikawa/dscgen/internal/foldmap"
	"github.com/takumiyoshikawa/dscgen/internal/mof"
	"github.com/takumiyoshikawa/dscgen/internal/ordered"
)

type Resource struct {
	Type      string
	Name      string
	DependsOn []string
	// Properties is nil when nothing but metadata was set.
	Properties *ordered.Map
}

// Map renders r in document field order, leaving out empty dependsOn and
// properties.
func (r Resource) Map() *ordered.Map {
	m := ordered.New()
	m.Set("type", r.Type)
	m.Set("name", r.Name)
	if len(r.DependsOn) > 0 {
		deps := make([]any, len(r.DependsOn))
		for i, d := range r.DependsOn {
			deps[i] = d
		}
		m.Set("dependsOn", deps)
	}
	if r.Properties != nil && r.Properties.Len() > 0 {
		m.Set("properties", r.Properties)
	}
	return m
}

// ResourceID formats a dependency reference.
func ResourceID(typ, name string) string {
	return fmt.Sprintf("[resourceId('%s', '%s')]", typ, name)
}

type converter struct {
	prefix    string
	skip      *foldmap.Set
	metadata  *foldmap.Set
	instances []mof.Instance
}

// Instances converts a whole document. The identity table is built from every
// instance before any DependsOn is resolved, so references may point forward.
func Instances(instances []mof.Instance, prefix string) []Resource {
	c := &converter{
		prefix: prefix,
		skip:   foldmap.NewSet(mof.DocumentClass),
		metadata: foldmap.NewSet(
			propResourceID,
			propSourceInfo,
			propModuleName,
			propModuleVersion,
			propDependsOn,
			propConfigurationName,
		),
		instances: instances,
	}

	table := c.identities()

	resources := make([]Resource, 0, len(instances))
	for _, inst := range instances {
		if c.skip.Has(inst.ClassName) {
			continue
		}
		resources = append(resources, c.convert(inst, table))
	}
	return resources
}

func (c *converter) identities() map[string]Identity {
	table := make(map[string]Identity)
	for _, inst := range c.instances {
		if c.skip.Has(inst.ClassName) {
			continue
		}
		id := ResolveIdentity(inst, c.prefix)
		if id.Declared == "" {
			continue
		}
		table[id.Declared] = id
	}
	return table
}

func (c *converter) convert(inst mof.Instance, table map[string]Identity) Resource {
	props := properties(inst)
	id := resolveIdentity(inst, props, c.prefix)

	res := Resource{Type: id.Type, Name: id.Name}
	if deps, ok := props.Get(propDependsOn); ok {
		for _, dep := range dependencyList(deps) {
			res.DependsOn = append(res.DependsOn, c.reference(inst, props, dep, table))
		}
	}

	bag := ordered.New()
	for _, p := range inst.Properties {
		if c.metadata.Has(p.Name) {
			continue
		}
		if _, isNull := p.Value.(mof.Null); isNull {
			continue
		}
		bag.Set(p.Name, Value(p.Value))
	}
	if bag.Len() > 0 {
		res.Properties = bag
	}
	return res
}

func (c *converter) reference(inst mof.Instance, props *foldmap.Map[mof.Value], dep string, table map[string]Identity) string {
	if target, ok := table[dep]; ok {
		return ResourceID(target.Type, target.Name)
	}
	if kind, name, ok := parseIdentity(dep); ok {
		slog.Debug("dependency is not declared in the document", "instance", inst.ClassName, "dependency", dep)
		return ResourceID(typePrefix(inst, props, c.prefix)+"/"+kind, name)
	}
	slog.Debug("passing dependency through unchanged", "instance", inst.ClassName, "dependency", dep)
	return dep
}

func dependencyList(v mof.Value) []string {
	switch val := v.(type) {
	case mof.Null:
		return nil
	case mof.List:
		deps := make([]string, 0, len(val))
		for _, item := range val {
			if _, isNull := item.(mof.Null); isNull {
				continue
			}
			deps = append(deps, mof.Text(item))
		}
		return deps
	default:
		return []string{mof.Text(v)}
	}
}
