package rules

import (
	"github.com/phrazzld/custom-cars-api/internal/domain"
)

// Violation identifies the rule that rejected an option.
type Violation struct {
	Rule   string `json:"rule"`
	Reason string `json:"reason"`
}

// Evaluator decides whether options may be combined in one configuration.
type Evaluator interface {
	// IsSelectionAllowed reports whether candidate may be selected alongside others.
	IsSelectionAllowed(candidate domain.Option, others []domain.Option, convertible bool) bool

	// Check is IsSelectionAllowed with the first failing rule reported.
	// ok is true when every rule allows the candidate.
	Check(candidate domain.Option, others []domain.Option, convertible bool) (Violation, bool)
}

// ruleEvaluator applies an ordered list of rules; the first rejection wins.
type ruleEvaluator struct {
	rules []Rule
}

// NewEvaluator creates an Evaluator over the given rules, applied in order.
// Rules without an Allows func are skipped.
func NewEvaluator(rules ...Rule) Evaluator {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Allows != nil {
			kept = append(kept, r)
		}
	}
	return &ruleEvaluator{rules: kept}
}

// DefaultEvaluator creates an Evaluator over DefaultRules.
func DefaultEvaluator() Evaluator {
	return NewEvaluator(DefaultRules()...)
}

// IsSelectionAllowed implements Evaluator.
func (e *ruleEvaluator) IsSelectionAllowed(
	candidate domain.Option,
	others []domain.Option,
	convertible bool,
) bool {
	_, ok := e.Check(candidate, others, convertible)
	return ok
}

// Check implements Evaluator.
func (e *ruleEvaluator) Check(
	candidate domain.Option,
	others []domain.Option,
	convertible bool,
) (Violation, bool) {
	for _, r := range e.rules {
		if !r.Allows(candidate, others, convertible) {
			return Violation{Rule: r.Name, Reason: r.Reason}, false
		}
	}
	return Violation{}, true
}
