// Package mapper converts interface descriptors into the definitions handed
// to code emitters.
package mapper

import (
	"github.com/toyz/tsport/internal/models"
	"github.com/toyz/tsport/internal/resolver"
)

// ToDefinitions maps descriptors to definitions, preserving order
func ToDefinitions(descriptors []models.InterfaceDescriptor) []models.Definition {
	definitions := make([]models.Definition, 0, len(descriptors))
	for _, descriptor := range descriptors {
		definitions = append(definitions, ToDefinition(descriptor))
	}
	return definitions
}

// ToDefinition capitalizes the name and copies fields and derives
func ToDefinition(descriptor models.InterfaceDescriptor) models.Definition {
	fields := make([]models.DefinitionField, len(descriptor.Attributes))
	for i, attr := range descriptor.Attributes {
		fields[i] = models.DefinitionField{Name: attr.Name, Type: attr.TypeName}
	}
	return models.Definition{
		Name:    resolver.Capitalize(descriptor.Name),
		Fields:  fields,
		Derives: append([]string(nil), descriptor.Derives...),
	}
}
