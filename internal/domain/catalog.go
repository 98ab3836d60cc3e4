package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Option is one concrete choice within a Feature, carrying a price delta in cents.
// Options are seeded once and never modified afterwards.
type Option struct {
	ID           int64  `json:"id"`
	FeatureID    int64  `json:"feature_id"`
	FeatureName  string `json:"feature"`
	Name         string `json:"name"`
	PriceInCents int64  `json:"price_in_cents"`
	ImageRef     string `json:"image"`

	// RequiresConvertible tags options that are only valid on a convertible car
	// (panoramic sunroof, soft top). It is set at seed time.
	RequiresConvertible bool `json:"requires_convertible"`
}

// Feature is a configurable dimension of the car (Roof, Wheels, ...) offering
// several mutually exclusive Options, ordered by option id.
type Feature struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Options []Option `json:"options"`
}

// Catalog is an immutable snapshot of every Feature and Option.
// Build it with NewCatalog; the zero value is an empty catalog.
type Catalog struct {
	features []Feature
	byID     map[int64]int
	options  map[int64]Option
}

// NewCatalog validates the given features and indexes them for lookups.
// Features are ordered by id and their options by id. The input slice is copied.
func NewCatalog(features []Feature) (*Catalog, error) {
	c := &Catalog{
		features: make([]Feature, 0, len(features)),
		byID:     make(map[int64]int, len(features)),
		options:  make(map[int64]Option),
	}

	names := make(map[string]struct{}, len(features))
	for _, f := range features {
		if f.ID <= 0 {
			return nil, fmt.Errorf("%w: feature %q has invalid id %d", ErrInvalidCatalog, f.Name, f.ID)
		}
		if _, dup := c.byID[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate feature id %d", ErrInvalidCatalog, f.ID)
		}
		key := strings.ToLower(strings.TrimSpace(f.Name))
		if key == "" {
			return nil, fmt.Errorf("%w: feature %d has no name", ErrInvalidCatalog, f.ID)
		}
		if _, dup := names[key]; dup {
			return nil, fmt.Errorf("%w: duplicate feature name %q", ErrInvalidCatalog, f.Name)
		}
		names[key] = struct{}{}

		feature := Feature{ID: f.ID, Name: f.Name, Options: make([]Option, 0, len(f.Options))}
		for _, o := range f.Options {
			if o.FeatureID != f.ID {
				return nil, fmt.Errorf("%w: option %d belongs to feature %d, listed under %d",
					ErrInvalidCatalog, o.ID, o.FeatureID, f.ID)
			}
			if o.PriceInCents < 0 {
				return nil, fmt.Errorf("%w: option %d has negative price", ErrInvalidCatalog, o.ID)
			}
			if _, dup := c.options[o.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate option id %d", ErrInvalidCatalog, o.ID)
			}
			o.FeatureName = f.Name
			c.options[o.ID] = o
			feature.Options = append(feature.Options, o)
		}
		sort.Slice(feature.Options, func(i, j int) bool {
			return feature.Options[i].ID < feature.Options[j].ID
		})
		c.features = append(c.features, feature)
		c.byID[f.ID] = len(c.features) - 1
	}

	sort.Slice(c.features, func(i, j int) bool { return c.features[i].ID < c.features[j].ID })
	for i, f := range c.features {
		c.byID[f.ID] = i
	}

	return c, nil
}

// Features returns the catalog's features ordered by id.
// Callers must not modify the returned slice.
func (c *Catalog) Features() []Feature {
	if c == nil {
		return nil
	}
	return c.features
}

// Feature looks up a feature by id.
func (c *Catalog) Feature(id int64) (Feature, bool) {
	if c == nil {
		return Feature{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Feature{}, false
	}
	return c.features[i], true
}

// Option looks up an option by id.
func (c *Catalog) Option(id int64) (Option, bool) {
	if c == nil {
		return Option{}, false
	}
	o, ok := c.options[id]
	return o, ok
}

// OptionCount returns the total number of options across all features.
func (c *Catalog) OptionCount() int {
	if c == nil {
		return 0
	}
	return len(c.options)
}

// SelectionFromOptionIDs turns a flat list of option ids, as sent by clients,
// into a Selection keyed by feature. Repeating the same id is harmless; two
// different options of one feature, or an id missing from the catalog, is a
// validation error.
func (c *Catalog) SelectionFromOptionIDs(optionIDs []int64) (Selection, error) {
	if len(optionIDs) == 0 {
		return nil, NewValidationError("optionIds", "must contain at least one option", ErrEmptySelection)
	}

	sel := make(Selection, len(optionIDs))
	for _, id := range optionIDs {
		o, ok := c.Option(id)
		if !ok {
			return nil, NewValidationError("optionIds",
				fmt.Sprintf("contains unknown option %d", id), ErrUnknownOption)
		}
		if prev, taken := sel[o.FeatureID]; taken && prev != id {
			return nil, NewValidationError("optionIds",
				fmt.Sprintf("selects options %d and %d of feature %q", prev, id, o.FeatureName),
				ErrDuplicateFeature)
		}
		sel[o.FeatureID] = id
	}
	return sel, nil
}
