package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Selection maps a feature id to the id of the single option chosen for it.
// Keying by feature makes "at most one option per feature" structural.
type Selection map[int64]int64

// FeatureIDs returns the selected feature ids in ascending order.
func (s Selection) FeatureIDs() []int64 {
	ids := make([]int64, 0, len(s))
	for featureID := range s {
		ids = append(ids, featureID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// OptionIDs returns the selected option ids ordered by feature id.
func (s Selection) OptionIDs() []int64 {
	ids := make([]int64, 0, len(s))
	for _, featureID := range s.FeatureIDs() {
		ids = append(ids, s[featureID])
	}
	return ids
}

// Configuration is a named, persisted set of option selections: the custom car.
// Options holds the materialized catalog entries for Selection, ordered by feature id.
type Configuration struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
	IsConvertible bool      `json:"is_convertible"`
	Selection     Selection `json:"-"`
	Options       []Option  `json:"options"`
}

// OptionIDs returns the ids of the selected options ordered by feature id.
func (c *Configuration) OptionIDs() []int64 {
	if len(c.Selection) > 0 {
		return c.Selection.OptionIDs()
	}
	ids := make([]int64, 0, len(c.Options))
	for _, o := range c.Options {
		ids = append(ids, o.ID)
	}
	return ids
}

// TotalPriceInCents is the exact integer sum of the selected options' prices.
func (c *Configuration) TotalPriceInCents() int64 {
	var total int64
	for _, o := range c.Options {
		total += o.PriceInCents
	}
	return total
}

// TotalPrice is the total formatted in display units with two decimals.
func (c *Configuration) TotalPrice() string {
	return FormatCents(c.TotalPriceInCents())
}

// Validate checks the invariants that hold for every persisted configuration
// independently of the catalog: a non-empty name and one option per feature.
func (c *Configuration) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "cannot be empty", ErrEmptyName)
	}
	seen := make(map[int64]int64, len(c.Options))
	for _, o := range c.Options {
		if o.ID <= 0 {
			return NewValidationError("optionIds", fmt.Sprintf("contains invalid id %d", o.ID), ErrInvalidID)
		}
		if prev, ok := seen[o.FeatureID]; ok && prev != o.ID {
			return NewValidationError("optionIds",
				fmt.Sprintf("selects options %d and %d of feature %d", prev, o.ID, o.FeatureID),
				ErrDuplicateFeature)
		}
		seen[o.FeatureID] = o.ID
	}
	return nil
}

// FormatCents renders an amount of cents as units with exactly two decimals,
// using integer arithmetic only (250000 -> "2500.00").
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
