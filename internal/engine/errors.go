package engine

import (
	"errors"
	"fmt"

	"github.com/phrazzld/custom-cars-api/internal/domain"
)

// Sentinel errors returned by the engine, usually wrapped in the typed errors below.
var (
	// ErrFeatureOptionMismatch is returned when a selection pairs an option with a
	// feature it does not belong to.
	ErrFeatureOptionMismatch = errors.New("option does not belong to feature")

	// ErrRuleViolation is returned when a selection breaks a compatibility rule.
	ErrRuleViolation = errors.New("selection violates a configuration rule")
)

// FeatureOptionMismatchError reports an option selected under the wrong feature.
// It is a validation failure and matches domain.ErrValidation.
type FeatureOptionMismatchError struct {
	FeatureID       int64
	OptionID        int64
	OptionFeatureID int64
}

func (e *FeatureOptionMismatchError) Error() string {
	return fmt.Sprintf("option %d belongs to feature %d, not feature %d",
		e.OptionID, e.OptionFeatureID, e.FeatureID)
}

// Unwrap lets errors.Is match both ErrFeatureOptionMismatch and domain.ErrValidation.
func (e *FeatureOptionMismatchError) Unwrap() []error {
	return []error{ErrFeatureOptionMismatch, domain.ErrValidation}
}

// RuleViolationError reports the first option rejected by the rule evaluator.
type RuleViolationError struct {
	FeatureID   int64  `json:"feature_id"`
	FeatureName string `json:"feature"`
	OptionID    int64  `json:"option_id"`
	OptionName  string `json:"option"`
	Rule        string `json:"rule"`
	Reason      string `json:"reason"`
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("%s %q cannot be selected: %s", e.FeatureName, e.OptionName, e.Reason)
}

// Unwrap returns ErrRuleViolation.
func (e *RuleViolationError) Unwrap() error {
	return ErrRuleViolation
}

// AsRuleViolation extracts a RuleViolationError from err's chain.
func AsRuleViolation(err error) (*RuleViolationError, bool) {
	var rv *RuleViolationError
	if errors.As(err, &rv) {
		return rv, true
	}
	return nil, false
}
