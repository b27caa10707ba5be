package options

import (
	"github.com/toyz/tsport/internal/grammar"
	"github.com/toyz/tsport/internal/models"
)

// FieldState is an attribute under construction
type FieldState struct {
	Name    string
	Retype  string // verbatim target type, set by retype
	Skipped bool
}

// Retyped reports whether a retype directive replaced the field's type
func (f *FieldState) Retyped() bool {
	return f.Retype != ""
}

// InterfaceState is an interface under construction
type InterfaceState struct {
	Name               string
	Derives            []string // explicitly requested derives, in order
	SkipDefaultDerives bool
	Skipped            bool
}

// ApplyToField applies clauses left to right. skip drops the field and
// stops evaluation of the remaining clauses.
func ApplyToField(state *FieldState, clauses []*grammar.OptionClause) error {
	for _, clause := range clauses {
		opt, err := Decode(clause)
		if err != nil {
			return err
		}
		switch opt.Kind {
		case models.OptionSkip:
			state.Skipped = true
			return nil
		case models.OptionRename:
			state.Name = opt.Argument
		case models.OptionRetype:
			state.Retype = opt.Argument
		default:
			return misplaced(opt, "an attribute")
		}
	}
	return nil
}

// ApplyToInterface applies clauses left to right. skip drops the interface
// and stops evaluation of the remaining clauses.
func ApplyToInterface(state *InterfaceState, clauses []*grammar.OptionClause) error {
	for _, clause := range clauses {
		opt, err := Decode(clause)
		if err != nil {
			return err
		}
		switch opt.Kind {
		case models.OptionSkip:
			state.Skipped = true
			return nil
		case models.OptionRename:
			state.Name = opt.Argument
		case models.OptionDerive:
			state.Derives = append(state.Derives, opt.Argument)
		case models.OptionSkipDefaultDerives:
			state.SkipDefaultDerives = true
		default:
			return misplaced(opt, "an interface")
		}
	}
	return nil
}
