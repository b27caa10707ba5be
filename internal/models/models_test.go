package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeExpr_Rendering(t *testing.T) {
	tests := []struct {
		name   string
		typ    TypeExpr
		target string
		str    string
	}{
		{name: "string", typ: String(), target: "String", str: "String"},
		{name: "number", typ: Number(), target: "f64", str: "Number"},
		{name: "boolean", typ: Boolean(), target: "bool", str: "Boolean"},
		{name: "array", typ: ArrayOf(Boolean()), target: "Vec<bool>", str: "Array<Boolean>"},
		{name: "nested array", typ: ArrayOf(ArrayOf(Number())), target: "Vec<Vec<f64>>", str: "Array<Array<Number>>"},
		{name: "optional array", typ: OptionalOf(ArrayOf(String())), target: "Option<Vec<String>>", str: "Optional<Array<String>>"},
		{name: "named", typ: NamedRef("Person"), target: "Person", str: "Person"},
		{name: "raw", typ: Raw("HashMap<String, i32>"), target: "HashMap<String, i32>", str: "HashMap<String, i32>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.target, tt.typ.TargetName())
			assert.Equal(t, tt.str, tt.typ.String())
		})
	}
}

func TestTypeExpr_Walk(t *testing.T) {
	var kinds []TypeKind
	OptionalOf(ArrayOf(NamedRef("Pet"))).Walk(func(t TypeExpr) {
		kinds = append(kinds, t.Kind)
	})
	assert.Equal(t, []TypeKind{TypeOptional, TypeArray, TypeNamed}, kinds)
}

func TestTypeExpr_JSON(t *testing.T) {
	data, err := json.Marshal(OptionalOf(Number()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"Optional","elem":{"kind":"Number"}}`, string(data))
}

func TestOption_String(t *testing.T) {
	assert.Equal(t, "rename: cost;", Option{Kind: OptionRename, Argument: "cost"}.String())
	assert.Equal(t, "derive: Eq;", Option{Kind: OptionDerive, Argument: "Eq"}.String())
	assert.Equal(t, "skip;", Option{Kind: OptionSkip}.String())
	assert.Equal(t, "skip_derive_serde;", Option{Kind: OptionSkipDefaultDerives}.String())
	assert.Equal(t, "OptionKind(9)", OptionKind(9).String())
}

func TestOptionKind_TakesArgument(t *testing.T) {
	assert.True(t, OptionRename.TakesArgument())
	assert.True(t, OptionRetype.TakesArgument())
	assert.True(t, OptionDerive.TakesArgument())
	assert.False(t, OptionSkip.TakesArgument())
	assert.False(t, OptionSkipDefaultDerives.TakesArgument())
}

func TestInterfaceDescriptor_FieldNames(t *testing.T) {
	d := InterfaceDescriptor{Attributes: []FieldDescriptor{{Name: "a"}, {Name: "b"}}}
	assert.Equal(t, []string{"a", "b"}, d.FieldNames())
	assert.Empty(t, InterfaceDescriptor{}.FieldNames())
}
