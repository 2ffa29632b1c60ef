// Package typemap resolves declared PowerShell type names into the pieces the
// schema generator needs.
package typemap

import (
	"regexp"
	"strings"
)

type TypeInfo struct {
	IsNullable bool
	IsArray    bool
	BaseType   string
}

var (
	arrayPattern    = regexp.MustCompile(`^(.+)\[\]$`)
	nullablePattern = regexp.MustCompile(`^(?:[\w.]+\.)?(?i:nullable)\[(.+)\]$`)
)

// Resolve never fails: text that is neither an array nor a Nullable wrapper
// comes back unchanged as the base type.
func Resolve(typeName string) TypeInfo {
	if m := arrayPattern.FindStringSubmatch(typeName); m != nil {
		return TypeInfo{IsArray: true, BaseType: m[1]}
	}
	if m := nullablePattern.FindStringSubmatch(typeName); m != nil {
		return TypeInfo{IsNullable: true, BaseType: m[1]}
	}
	return TypeInfo{BaseType: typeName}
}

const (
	String  = "string"
	Boolean = "boolean"
	Integer = "integer"
	Number  = "number"
)

var baseTypes = map[string]string{
	"string":         String,
	"char":           String,
	"guid":           String,
	"datetime":       String,
	"datetimeoffset": String,
	"timespan":       String,
	"uri":            String,
	"version":        String,
	"securestring":   String,

	"bool":            Boolean,
	"boolean":         Boolean,
	"switch":          Boolean,
	"switchparameter": Boolean,

	"byte":   Integer,
	"sbyte":  Integer,
	"short":  Integer,
	"ushort": Integer,
	"int":    Integer,
	"uint":   Integer,
	"long":   Integer,
	"ulong":  Integer,
	"int16":  Integer,
	"int32":  Integer,
	"int64":  Integer,
	"uint16": Integer,
	"uint32": Integer,
	"uint64": Integer,

	"float":   Number,
	"single":  Number,
	"double":  Number,
	"decimal": Number,
}

// MapBaseType maps a primitive type name to a JSON Schema type. Namespace
// qualified names are matched on their last segment and anything unknown
// maps to "string".
func MapBaseType(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if t, ok := baseTypes[name]; ok {
		return t
	}
	return String
}
