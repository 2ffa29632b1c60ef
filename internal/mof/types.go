// Package mof parses compiled DSC configuration documents (MOF) into
// instances.
package mof

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is one of String, EnumName, Integer, Boolean, Real, Null, List or
// Reference.
type Value interface {
	isValue()
}

type (
	String   string
	EnumName string
	Integer  int64
	Boolean  bool
	Real     float64
	Null     struct{}
	List     []Value

	// Reference points at another instance by its alias, e.g. $MSFT_Credential1ref.
	Reference string
)

func (String) isValue()    {}
func (EnumName) isValue()  {}
func (Integer) isValue()   {}
func (Boolean) isValue()   {}
func (Real) isValue()      {}
func (Null) isValue()      {}
func (List) isValue()      {}
func (Reference) isValue() {}

func (r Reference) String() string {
	return "$" + string(r)
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = Text(v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Text renders v the way it would read in a MOF document, without quotes.
func Text(v Value) string {
	switch val := v.(type) {
	case String:
		return string(val)
	case EnumName:
		return string(val)
	case Integer:
		return strconv.FormatInt(int64(val), 10)
	case Boolean:
		if val {
			return "True"
		}
		return "False"
	case Real:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case Null:
		return "NULL"
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}

type Property struct {
	Name  string
	Value Value
}

type Instance struct {
	ClassName  string
	Alias      string
	Properties []Property
}

// DocumentClass is the pseudo instance carrying document metadata.
const DocumentClass = "OMI_ConfigurationDocument"
