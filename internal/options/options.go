// Package options interprets the directives found in /** ... **/ blocks
// trailing an attribute or an interface.
package options

import (
	"fmt"
	"strings"

	"github.com/toyz/tsport/internal/errors"
	"github.com/toyz/tsport/internal/grammar"
	"github.com/toyz/tsport/internal/models"
)

var directives = map[string]models.OptionKind{
	models.DirectiveRename:          models.OptionRename,
	models.DirectiveRetype:          models.OptionRetype,
	models.DirectiveSkip:            models.OptionSkip,
	models.DirectiveDerive:          models.OptionDerive,
	models.DirectiveSkipDeriveSerde: models.OptionSkipDefaultDerives,
}

// Clauses parses every block and returns their clauses in source order,
// within and across blocks.
func Clauses(blocks []*grammar.OptionBlock) ([]*grammar.OptionClause, error) {
	var clauses []*grammar.OptionClause
	for _, block := range blocks {
		comment, err := grammar.ParseOptionBlock(block)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, comment.Clauses...)
	}
	return clauses, nil
}

// Parse decodes every clause of one block. Unlike the Apply functions it
// does not stop at skip, so any unknown directive in the block is reported.
func Parse(block *grammar.OptionBlock) ([]models.Option, error) {
	comment, err := grammar.ParseOptionBlock(block)
	if err != nil {
		return nil, err
	}
	opts := make([]models.Option, 0, len(comment.Clauses))
	for _, clause := range comment.Clauses {
		opt, err := Decode(clause)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// Decode turns a parsed clause into an Option, rejecting unknown directives
// and clauses written with the wrong arity.
func Decode(clause *grammar.OptionClause) (models.Option, error) {
	loc := grammar.Location(clause.Pos)
	kind, ok := directives[clause.Directive]
	if !ok {
		return models.Option{}, errors.NewSyntaxError(
			fmt.Sprintf("unknown option directive %q", clause.Directive), loc).
			WithExpected(strings.Join(Known(), ", ")).
			WithSuggestion("Supported directives: " + strings.Join(Known(), ", "))
	}

	opt := models.Option{Kind: kind, Argument: clause.Value(), Loc: loc}
	switch {
	case kind.TakesArgument() && !clause.HasArgument():
		return models.Option{}, errors.NewSyntaxError(
			fmt.Sprintf("option %q requires an argument", clause.Directive), loc).
			WithSuggestion(fmt.Sprintf("Write it as '%s: <value>;'", clause.Directive))
	case kind.TakesArgument() && opt.Argument == "":
		return models.Option{}, errors.NewSyntaxError(
			fmt.Sprintf("option %q has an empty argument", clause.Directive), loc)
	case !kind.TakesArgument() && clause.HasArgument():
		return models.Option{}, errors.NewSyntaxError(
			fmt.Sprintf("option %q does not take an argument", clause.Directive), loc).
			WithSuggestion(fmt.Sprintf("Write it as '%s;'", clause.Directive))
	}
	return opt, nil
}

// Known returns the supported directive keywords
func Known() []string {
	return []string{
		models.DirectiveRename,
		models.DirectiveRetype,
		models.DirectiveSkip,
		models.DirectiveDerive,
		models.DirectiveSkipDeriveSerde,
	}
}

func misplaced(opt models.Option, target string) error {
	return errors.NewSyntaxError(
		fmt.Sprintf("option %q cannot be applied to %s", opt.Kind, target), opt.Loc).
		WithSuggestion(placementHint(opt.Kind))
}

func placementHint(kind models.OptionKind) string {
	switch kind {
	case models.OptionRetype:
		return "retype is only valid after an attribute"
	case models.OptionDerive, models.OptionSkipDefaultDerives:
		return "derive and skip_derive_serde are only valid after an interface's closing brace"
	default:
		return ""
	}
}
