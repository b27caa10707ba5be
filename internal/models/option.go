package models

import (
	"fmt"

	"github.com/toyz/tsport/internal/errors"
)

// OptionKind identifies an option directive
type OptionKind int

const (
	OptionRename OptionKind = iota
	OptionRetype
	OptionSkip
	OptionDerive
	OptionSkipDefaultDerives
)

// Directive keywords as written inside /** ... **/ blocks
const (
	DirectiveRename          = "rename"
	DirectiveRetype          = "retype"
	DirectiveSkip            = "skip"
	DirectiveDerive          = "derive"
	DirectiveSkipDeriveSerde = "skip_derive_serde"
)

// String returns the directive keyword for the kind
func (k OptionKind) String() string {
	switch k {
	case OptionRename:
		return DirectiveRename
	case OptionRetype:
		return DirectiveRetype
	case OptionSkip:
		return DirectiveSkip
	case OptionDerive:
		return DirectiveDerive
	case OptionSkipDefaultDerives:
		return DirectiveSkipDeriveSerde
	default:
		return fmt.Sprintf("OptionKind(%d)", int(k))
	}
}

// TakesArgument reports whether the directive is written as `name: arg;`
func (k OptionKind) TakesArgument() bool {
	return k == OptionRename || k == OptionRetype || k == OptionDerive
}

// Option is one directive parsed from an option comment block
type Option struct {
	Kind     OptionKind
	Argument string
	Loc      errors.SourceLocation
}

// String renders the option in its source form
func (o Option) String() string {
	if o.Kind.TakesArgument() {
		return fmt.Sprintf("%s: %s;", o.Kind, o.Argument)
	}
	return o.Kind.String() + ";"
}
