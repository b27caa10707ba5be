package models

import "fmt"

// TypeKind identifies the variant held by a TypeExpr
type TypeKind int

const (
	TypeString TypeKind = iota
	TypeNumber
	TypeBoolean
	TypeArray
	TypeOptional
	TypeNamed // reference to another interface, resolved by name only
	TypeRaw   // user supplied target type (retype option)
)

// String returns the semantic name of the kind
func (k TypeKind) String() string {
	switch k {
	case TypeString:
		return "String"
	case TypeNumber:
		return "Number"
	case TypeBoolean:
		return "Boolean"
	case TypeArray:
		return "Array"
	case TypeOptional:
		return "Optional"
	case TypeNamed:
		return "Named"
	case TypeRaw:
		return "Raw"
	default:
		return fmt.Sprintf("TypeKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name for JSON and YAML output
func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// TypeExpr is the semantic type of a field.
// Elem is set for Array and Optional, Name for Named and Raw.
type TypeExpr struct {
	Kind TypeKind  `json:"kind" yaml:"kind"`
	Elem *TypeExpr `json:"elem,omitempty" yaml:"elem,omitempty"`
	Name string    `json:"name,omitempty" yaml:"name,omitempty"`
}

// Primitive type constructors
func String() TypeExpr  { return TypeExpr{Kind: TypeString} }
func Number() TypeExpr  { return TypeExpr{Kind: TypeNumber} }
func Boolean() TypeExpr { return TypeExpr{Kind: TypeBoolean} }

// ArrayOf wraps elem in an Array
func ArrayOf(elem TypeExpr) TypeExpr {
	return TypeExpr{Kind: TypeArray, Elem: &elem}
}

// OptionalOf wraps elem in an Optional
func OptionalOf(elem TypeExpr) TypeExpr {
	return TypeExpr{Kind: TypeOptional, Elem: &elem}
}

// NamedRef references another definition by its (capitalized) name
func NamedRef(name string) TypeExpr {
	return TypeExpr{Kind: TypeNamed, Name: name}
}

// Raw carries a target type name verbatim
func Raw(text string) TypeExpr {
	return TypeExpr{Kind: TypeRaw, Name: text}
}

// String renders the semantic form, e.g. Optional<Array<String>>
func (t TypeExpr) String() string {
	switch t.Kind {
	case TypeArray, TypeOptional:
		return fmt.Sprintf("%s<%s>", t.Kind, t.elem().String())
	case TypeNamed, TypeRaw:
		return t.Name
	default:
		return t.Kind.String()
	}
}

// TargetName renders the native target representation handed to emitters:
// string -> String, number -> f64, boolean -> bool, T[] -> Vec<T>,
// T? -> Option<T>, references by name and raw types verbatim.
func (t TypeExpr) TargetName() string {
	switch t.Kind {
	case TypeString:
		return "String"
	case TypeNumber:
		return "f64"
	case TypeBoolean:
		return "bool"
	case TypeArray:
		return fmt.Sprintf("Vec<%s>", t.elem().TargetName())
	case TypeOptional:
		return fmt.Sprintf("Option<%s>", t.elem().TargetName())
	default:
		return t.Name
	}
}

// Walk calls fn for t and every nested element type, outermost first
func (t TypeExpr) Walk(fn func(TypeExpr)) {
	fn(t)
	if t.Elem != nil {
		t.Elem.Walk(fn)
	}
}

func (t TypeExpr) elem() TypeExpr {
	if t.Elem == nil {
		return TypeExpr{Kind: TypeRaw, Name: "?"}
	}
	return *t.Elem
}
