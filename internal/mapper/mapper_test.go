package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/tsport/internal/models"
)

func TestToDefinition(t *testing.T) {
	descriptor := models.InterfaceDescriptor{
		Name: "person",
		Attributes: []models.FieldDescriptor{
			{Name: "name", Type: models.String(), TypeName: "String"},
			{Name: "cost", Type: models.Raw("i32"), TypeName: "i32"},
			{Name: "friends", Type: models.OptionalOf(models.ArrayOf(models.NamedRef("Person"))), TypeName: "Option<Vec<Person>>"},
		},
		Derives: []string{"Debug", "Eq"},
	}

	got := ToDefinition(descriptor)
	assert.Equal(t, models.Definition{
		Name: "Person",
		Fields: []models.DefinitionField{
			{Name: "name", Type: "String"},
			{Name: "cost", Type: "i32"},
			{Name: "friends", Type: "Option<Vec<Person>>"},
		},
		Derives: []string{"Debug", "Eq"},
	}, got)

	got.Derives[0] = "Clone"
	assert.Equal(t, "Debug", descriptor.Derives[0])
}

func TestToDefinition_EmptyInterface(t *testing.T) {
	got := ToDefinition(models.InterfaceDescriptor{Name: "Empty", Derives: []string{"Debug"}})
	assert.Equal(t, "Empty", got.Name)
	assert.NotNil(t, got.Fields)
	assert.Empty(t, got.Fields)
}

func TestToDefinitions(t *testing.T) {
	tests := []struct {
		name  string
		input []models.InterfaceDescriptor
		want  []string
	}{
		{name: "none", input: nil, want: []string{}},
		{
			name: "order preserved",
			input: []models.InterfaceDescriptor{
				{Name: "zeta"}, {Name: "Alpha"}, {Name: "_private"},
			},
			want: []string{"Zeta", "Alpha", "_private"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			definitions := ToDefinitions(tt.input)
			require.NotNil(t, definitions)
			names := make([]string, len(definitions))
			for i, definition := range definitions {
				names[i] = definition.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
