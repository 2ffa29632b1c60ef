package psclass

import (
	"strings"

	"github.com/takumiyoshikawa/dscgen/internal/resource"
	"github.com/takumiyoshikawa/dscgen/internal/typemap"
)

func (f *file) findClass(name string) (class, bool) {
	for _, c := range f.classes {
		if strings.EqualFold(c.name, name) {
			return c, true
		}
	}
	return class{}, false
}

// lineage returns c preceded by every same-file ancestor, root first.
func (f *file) lineage(c class) []class {
	chain := []class{c}
	seen := map[string]bool{strings.ToLower(c.name): true}
	for cur := c; cur.base != ""; {
		base, ok := f.findClass(cur.base)
		if !ok || seen[strings.ToLower(base.name)] {
			break
		}
		seen[strings.ToLower(base.name)] = true
		chain = append([]class{base}, chain...)
		cur = base
	}
	return chain
}

func (f *file) descriptor(c class) resource.ResourceDescriptor {
	h := c.help
	if h == nil {
		h = f.firstHelp
	}

	d := resource.ResourceDescriptor{
		ClassName: c.name,
		BaseClass: c.base,
		Source:    f.path,
	}
	if h != nil {
		d.Synopsis = h.Synopsis
		d.Description = h.Description
	}

	index := make(map[string]int)
	for _, cl := range f.lineage(c) {
		for _, m := range cl.members {
			if m.method {
				if op, ok := resource.ParseOperation(m.name); ok && !m.hidden && !resource.HasOperation(d.Operations, op) {
					d.Operations = append(d.Operations, op)
				}
				continue
			}
			prop, ok := f.property(m, h)
			if !ok {
				continue
			}
			key := strings.ToLower(prop.Name)
			if i, exists := index[key]; exists {
				d.Properties[i] = prop
				continue
			}
			index[key] = len(d.Properties)
			d.Properties = append(d.Properties, prop)
		}
	}
	return d
}

func (f *file) property(m member, h *help) (resource.PropertyDescriptor, bool) {
	dsc, ok := findAttribute(m.attributes, "DscProperty")
	if !ok || m.static {
		return resource.PropertyDescriptor{}, false
	}

	p := resource.PropertyDescriptor{
		Name:        m.name,
		Type:        m.typeName,
		Default:     m.defaultVal,
		Description: h.parameter(m.name),
	}
	for _, arg := range dsc.args {
		name, enabled := namedFlag(arg)
		switch strings.ToLower(name) {
		case "key":
			p.IsKey = enabled
		case "mandatory":
			p.IsMandatory = enabled
		case "notconfigurable":
			p.IsNotConfigurable = enabled
		}
	}

	if set, ok := findAttribute(m.attributes, "ValidateSet"); ok {
		for _, arg := range set.args {
			if len(arg) == 1 && arg[0].kind == "String" {
				p.ValidValues = append(p.ValidValues, unquote(arg[0].value))
			}
		}
	}

	base := typemap.Resolve(m.typeName).BaseType
	if members, ok := f.enums.Get(base); ok && len(members) > 0 {
		p.EnumValues = append([]string(nil), members...)
	}
	return p, true
}

// namedFlag reads attribute arguments such as Key, Key = $true or
// Mandatory = $false.
func namedFlag(arg []token) (string, bool) {
	if len(arg) == 0 || arg[0].kind != "Ident" {
		return "", false
	}
	if len(arg) >= 3 && arg[1].punct("=") {
		return arg[0].value, !strings.EqualFold(arg[2].value, "$false")
	}
	return arg[0].value, true
}
