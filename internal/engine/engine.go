package engine

import (
	"fmt"
	"strings"

	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/domain/rules"
)

// Engine turns proposed selections into consistent Configurations.
// It is stateless apart from its rule evaluator and safe for concurrent use.
type Engine struct {
	evaluator rules.Evaluator
}

// New creates an Engine. A nil evaluator means rules.DefaultEvaluator.
func New(evaluator rules.Evaluator) *Engine {
	if evaluator == nil {
		evaluator = rules.DefaultEvaluator()
	}
	return &Engine{evaluator: evaluator}
}

// Evaluator returns the rule evaluator the engine enforces.
func (e *Engine) Evaluator() rules.Evaluator {
	return e.evaluator
}

// Build validates selection against catalog and the rule set and returns the
// materialized, unsaved Configuration.
//
// The selection may cover only some features. Errors are returned in this
// order: invalid name or empty selection (*domain.ValidationError), unknown or
// misplaced option (*domain.ValidationError, *FeatureOptionMismatchError), then
// the first rule violation in ascending feature id order (*RuleViolationError).
// No Configuration is returned alongside an error.
func (e *Engine) Build(
	catalog *domain.Catalog,
	name string,
	selection domain.Selection,
	convertible bool,
) (*domain.Configuration, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "cannot be empty", domain.ErrEmptyName)
	}
	if len(selection) == 0 {
		return nil, domain.NewValidationError("optionIds", "must contain at least one option",
			domain.ErrEmptySelection)
	}

	featureIDs := selection.FeatureIDs()
	options := make([]domain.Option, 0, len(featureIDs))
	for _, featureID := range featureIDs {
		optionID := selection[featureID]
		if _, ok := catalog.Feature(featureID); !ok {
			return nil, domain.NewValidationError("optionIds",
				fmt.Sprintf("refers to unknown feature %d", featureID), domain.ErrUnknownFeature)
		}
		option, ok := catalog.Option(optionID)
		if !ok {
			return nil, domain.NewValidationError("optionIds",
				fmt.Sprintf("contains unknown option %d", optionID), domain.ErrUnknownOption)
		}
		if option.FeatureID != featureID {
			return nil, &FeatureOptionMismatchError{
				FeatureID:       featureID,
				OptionID:        optionID,
				OptionFeatureID: option.FeatureID,
			}
		}
		options = append(options, option)
	}

	others := make([]domain.Option, 0, len(options))
	for i, candidate := range options {
		others = others[:0]
		others = append(others, options[:i]...)
		others = append(others, options[i+1:]...)

		if v, ok := e.evaluator.Check(candidate, others, convertible); !ok {
			return nil, &RuleViolationError{
				FeatureID:   candidate.FeatureID,
				FeatureName: candidate.FeatureName,
				OptionID:    candidate.ID,
				OptionName:  candidate.Name,
				Rule:        v.Rule,
				Reason:      v.Reason,
			}
		}
	}

	sel := make(domain.Selection, len(options))
	for _, o := range options {
		sel[o.FeatureID] = o.ID
	}

	return &domain.Configuration{
		Name:          name,
		IsConvertible: convertible,
		Selection:     sel,
		Options:       options,
	}, nil
}

// BuildFromOptionIDs is Build for a flat list of option ids as sent by clients.
func (e *Engine) BuildFromOptionIDs(
	catalog *domain.Catalog,
	name string,
	optionIDs []int64,
	convertible bool,
) (*domain.Configuration, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "cannot be empty", domain.ErrEmptyName)
	}
	selection, err := catalog.SelectionFromOptionIDs(optionIDs)
	if err != nil {
		return nil, err
	}
	return e.Build(catalog, name, selection, convertible)
}
