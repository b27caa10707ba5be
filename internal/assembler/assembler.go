// Package assembler turns a parsed declaration document into interface
// descriptors, applying per-attribute and per-interface options.
package assembler

import (
	"fmt"
	"sort"

	"github.com/toyz/tsport/internal/errors"
	"github.com/toyz/tsport/internal/grammar"
	"github.com/toyz/tsport/internal/models"
	"github.com/toyz/tsport/internal/options"
	"github.com/toyz/tsport/internal/resolver"
)

// Config carries the hosting configuration for a translation
type Config struct {
	// Serde appends the serialization derives to every interface that does
	// not opt out with skip_derive_serde.
	Serde bool

	// Strict requires every named type reference to match a translated
	// interface.
	Strict bool
}

// Assembler builds descriptors from parse trees. It holds no state between
// calls and may be shared.
type Assembler struct {
	config Config
}

// New creates an assembler for the given configuration
func New(config Config) *Assembler {
	return &Assembler{config: config}
}

// Assemble walks the interfaces of file in document order. Skipped
// interfaces and attributes are omitted; any error aborts the whole document.
func (a *Assembler) Assemble(file *grammar.DeclarationFile) ([]models.InterfaceDescriptor, error) {
	descriptors := make([]models.InterfaceDescriptor, 0)
	for _, block := range file.Interfaces() {
		descriptor, keep, err := a.assembleInterface(block)
		if err != nil {
			return nil, err
		}
		if keep {
			descriptors = append(descriptors, descriptor)
		}
	}

	if a.config.Strict {
		if err := validateReferences(descriptors); err != nil {
			return nil, err
		}
	}
	return descriptors, nil
}

func (a *Assembler) assembleInterface(block *grammar.InterfaceBlock) (models.InterfaceDescriptor, bool, error) {
	fields := make([]models.FieldDescriptor, 0, len(block.Attributes))
	for _, attr := range block.Attributes {
		field, keep, err := assembleAttribute(attr)
		if err != nil {
			return models.InterfaceDescriptor{}, false, err
		}
		if keep {
			fields = append(fields, field)
		}
	}

	clauses, err := options.Clauses(block.Options)
	if err != nil {
		return models.InterfaceDescriptor{}, false, err
	}
	state := options.InterfaceState{Name: block.Name}
	if err := options.ApplyToInterface(&state, clauses); err != nil {
		return models.InterfaceDescriptor{}, false, err
	}
	if state.Skipped {
		return models.InterfaceDescriptor{}, false, nil
	}

	return models.InterfaceDescriptor{
		Name:               state.Name,
		Attributes:         fields,
		Derives:            a.derives(state),
		SkipDefaultDerives: state.SkipDefaultDerives,
	}, true, nil
}

// assembleAttribute applies the attribute's options before resolving its
// type, so skipped or retyped attributes never reach the resolver.
func assembleAttribute(attr *grammar.AttributeBlock) (models.FieldDescriptor, bool, error) {
	if err := checkModifiers(attr); err != nil {
		return models.FieldDescriptor{}, false, err
	}

	clauses, err := options.Clauses(attr.Options)
	if err != nil {
		return models.FieldDescriptor{}, false, err
	}
	state := options.FieldState{Name: attr.Name()}
	if err := options.ApplyToField(&state, clauses); err != nil {
		return models.FieldDescriptor{}, false, err
	}
	if state.Skipped {
		return models.FieldDescriptor{}, false, nil
	}

	if state.Retyped() {
		return models.FieldDescriptor{
			Name:     state.Name,
			Type:     models.Raw(state.Retype),
			TypeName: state.Retype,
		}, true, nil
	}

	typ, err := resolver.Resolve(attr.Type)
	if err != nil {
		return models.FieldDescriptor{}, false, err
	}
	if attr.Optional {
		typ = models.OptionalOf(typ)
	}
	return models.FieldDescriptor{
		Name:     state.Name,
		Type:     typ,
		TypeName: typ.TargetName(),
	}, true, nil
}

func checkModifiers(attr *grammar.AttributeBlock) error {
	for _, modifier := range attr.Modifiers() {
		if modifier != "readonly" {
			return errors.NewSyntaxError(
				fmt.Sprintf("unexpected modifier %q before attribute %q", modifier, attr.Name()),
				grammar.Location(attr.Pos)).
				WithExpected("readonly").
				WithSuggestion("Only 'readonly' may precede an attribute name")
		}
	}
	return nil
}

// derives lists the baseline derive, the serialization derives unless
// suppressed, then explicit derives. Repeats keep their first position.
func (a *Assembler) derives(state options.InterfaceState) []string {
	derives := []string{models.DefaultDerive}
	if a.config.Serde && !state.SkipDefaultDerives {
		derives = append(derives, models.SerdeDerives...)
	}
	derives = append(derives, state.Derives...)

	seen := make(map[string]bool, len(derives))
	unique := derives[:0]
	for _, derive := range derives {
		if seen[derive] {
			continue
		}
		seen[derive] = true
		unique = append(unique, derive)
	}
	return unique
}

func validateReferences(descriptors []models.InterfaceDescriptor) error {
	known := make(map[string]bool, len(descriptors))
	names := make([]string, 0, len(descriptors))
	for _, descriptor := range descriptors {
		name := resolver.Capitalize(descriptor.Name)
		known[name] = true
		names = append(names, name)
	}
	sort.Strings(names)

	for _, descriptor := range descriptors {
		for _, field := range descriptor.Attributes {
			var missing string
			field.Type.Walk(func(t models.TypeExpr) {
				if missing == "" && t.Kind == models.TypeNamed && !known[t.Name] {
					missing = t.Name
				}
			})
			if missing != "" {
				return errors.NewUnresolvedReferenceError(missing, descriptor.Name, field.Name, names)
			}
		}
	}
	return nil
}
