package models

// DefaultDerive is the baseline capability every surviving interface derives
const DefaultDerive = "Debug"

// SerdeDerives are appended after DefaultDerive when the hosting
// configuration enables serialization and the interface does not opt out
var SerdeDerives = []string{"serde::Serialize", "serde::Deserialize"}

// FieldDescriptor is one translated attribute of an interface
type FieldDescriptor struct {
	Name     string   `json:"name" yaml:"name"`
	Type     TypeExpr `json:"type" yaml:"type"`
	TypeName string   `json:"type_name" yaml:"type_name"` // target representation, Type.TargetName() unless retyped
}

// InterfaceDescriptor is the resolved, option-applied form of one interface
// declaration that survived translation. Derives holds each capability once,
// at its first position: a repeated derive option adds no second entry.
type InterfaceDescriptor struct {
	Name               string            `json:"name" yaml:"name"`
	Attributes         []FieldDescriptor `json:"attributes" yaml:"attributes"`
	Derives            []string          `json:"derives" yaml:"derives"`
	SkipDefaultDerives bool              `json:"skip_default_derives" yaml:"skip_default_derives"`
}

// FieldNames returns the attribute names in declaration order
func (d InterfaceDescriptor) FieldNames() []string {
	names := make([]string, len(d.Attributes))
	for i, attr := range d.Attributes {
		names[i] = attr.Name
	}
	return names
}

// Document groups the descriptors translated from one input document
type Document struct {
	Name       string                `json:"name" yaml:"name"`
	Interfaces []InterfaceDescriptor `json:"interfaces" yaml:"interfaces"`
}
