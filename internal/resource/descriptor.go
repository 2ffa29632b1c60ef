// Package resource holds the descriptors produced by the class scanner and
// consumed by the schema and manifest generators.
package resource

import "strings"

type Operation string

const (
	OpGet    Operation = "get"
	OpSet    Operation = "set"
	OpTest   Operation = "test"
	OpDelete Operation = "delete"
	OpExport Operation = "export"
)

// Operations lists every lifecycle operation in manifest order.
var Operations = []Operation{OpGet, OpSet, OpTest, OpDelete, OpExport}

// DefaultOperations is used when a class declares none of the lifecycle methods.
var DefaultOperations = []Operation{OpGet, OpSet, OpTest}

// ParseOperation matches a method name against the lifecycle operations.
func ParseOperation(name string) (Operation, bool) {
	for _, op := range Operations {
		if strings.EqualFold(string(op), name) {
			return op, true
		}
	}
	return "", false
}

type PropertyDescriptor struct {
	Name              string
	Type              string
	IsKey             bool
	IsMandatory       bool
	IsNotConfigurable bool

	// ValidValues comes from ValidateSet and wins over EnumValues.
	ValidValues []string
	EnumValues  []string

	// Default is nil when the property has no default.
	Default     any
	Description string
}

// Required reports whether the property belongs in the schema's required list.
func (p PropertyDescriptor) Required() bool {
	return p.IsKey || p.IsMandatory
}

type ResourceDescriptor struct {
	ClassName   string
	BaseClass   string
	Properties  []PropertyDescriptor
	Operations  []Operation
	Source      string
	Synopsis    string
	Description string
}

// SupportedOperations returns the declared operations in manifest order, or
// DefaultOperations when none of the declared ones is a lifecycle operation.
// The result is never empty.
func (r ResourceDescriptor) SupportedOperations() []Operation {
	ops := make([]Operation, 0, len(r.Operations))
	for _, op := range Operations {
		for _, declared := range r.Operations {
			if Operation(strings.ToLower(string(declared))) == op {
				ops = append(ops, op)
				break
			}
		}
	}
	if len(ops) == 0 {
		return append([]Operation(nil), DefaultOperations...)
	}
	return ops
}

// HasOperation reports whether op is already part of ops.
func HasOperation(ops []Operation, op Operation) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}
