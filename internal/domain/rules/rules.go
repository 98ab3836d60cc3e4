package rules

import (
	"github.com/phrazzld/custom-cars-api/internal/domain"
)

// Rule names reported in violations.
const (
	RuleRequiresConvertible = "requires-convertible"
)

// Rule is a single compatibility predicate over a candidate option.
//
// Allows receives the option being selected, the other options in the same
// candidate selection, and the configuration's convertible flag. It must be
// pure: no I/O, no mutation of its arguments.
type Rule struct {
	Name   string
	Reason string
	Allows func(candidate domain.Option, others []domain.Option, convertible bool) bool
}

// RequiresConvertible rejects options tagged RequiresConvertible unless the
// configuration is a convertible. Untagged options always pass.
func RequiresConvertible() Rule {
	return Rule{
		Name:   RuleRequiresConvertible,
		Reason: "option is only available on convertible cars",
		Allows: func(candidate domain.Option, _ []domain.Option, convertible bool) bool {
			return !candidate.RequiresConvertible || convertible
		},
	}
}

// DefaultRules returns the rule set enforced by the configurator.
func DefaultRules() []Rule {
	return []Rule{
		RequiresConvertible(),
	}
}
