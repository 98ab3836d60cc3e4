// Package rules holds the compatibility rules applied to option selections.
//
// Rules are pure predicates. The same Evaluator backs the advisory preview
// endpoint and the authoritative create and replace paths, so a selection
// accepted by one is accepted by all.
package rules
