// Package criteria turns loosely-typed selection input into canonical,
// validated criteria values. Normalization is deliberately lenient:
// malformed values fall back to defaults and are reported as warnings,
// never as errors, so a selection request always proceeds.
package criteria

import (
	"fmt"
	"strings"

	"github.com/abhisek/papergen/internal/bank"
)

// Defaults and caps for normalized criteria.
const (
	DefaultCount = 20
	MaxCount     = 1000
)

// Criteria is the canonical form of one selection request. Zero-valued
// fields mean "criterion not given"; MinLength/MaxLength use 0 as unset.
type Criteria struct {
	// Topics to match (bidirectional substring containment).
	Topics []string

	// Difficulties to match exactly.
	Difficulties []bank.Difficulty

	// Types to match exactly.
	Types []bank.Type

	// Keywords: a question passes if it contains any of them.
	Keywords []string

	// ExcludeKeywords: a question is dropped if it contains any of them.
	// Exclusion runs after inclusion, so a keyword listed in both sets
	// effectively acts as an exclude.
	ExcludeKeywords []string

	// TextContains is a case-insensitive regular expression; invalid
	// patterns degrade to a plain substring match at filter time.
	TextContains string

	// MinLength and MaxLength bound the question text length.
	MinLength int
	MaxLength int

	// Count is the target number of questions. 1..MaxCount.
	Count int

	// Diversity toggles attribute-diverse selection. Defaults to true.
	Diversity bool

	// ReferenceText enables semantic-similarity scoring when set.
	ReferenceText string

	// Extra carries unrecognized keys through unchanged for custom
	// pipeline filters.
	Extra map[string]any
}

// HasScoringCriteria reports whether any scorer dimension is present.
func (c Criteria) HasScoringCriteria() bool {
	return len(c.Topics) > 0 || len(c.Keywords) > 0 || len(c.Difficulties) > 0 ||
		len(c.Types) > 0 || c.ReferenceText != ""
}

// String renders criteria in the compact key:value form accepted by
// ParseString. Extra keys are included only when scalar.
func (c Criteria) String() string {
	var parts []string
	add := func(key string, vals []string) {
		if len(vals) > 0 {
			parts = append(parts, key+":"+strings.Join(vals, " "))
		}
	}
	add("topic", c.Topics)
	add("difficulty", difficultiesToStrings(c.Difficulties))
	add("type", typesToStrings(c.Types))
	add("keywords", c.Keywords)
	add("exclude_keywords", c.ExcludeKeywords)
	if c.TextContains != "" {
		parts = append(parts, "text_contains:"+c.TextContains)
	}
	if c.MinLength > 0 {
		parts = append(parts, fmt.Sprintf("min_length:%d", c.MinLength))
	}
	if c.MaxLength > 0 {
		parts = append(parts, fmt.Sprintf("max_length:%d", c.MaxLength))
	}
	parts = append(parts, fmt.Sprintf("count:%d", c.Count))
	parts = append(parts, fmt.Sprintf("diversity:%t", c.Diversity))
	return strings.Join(parts, ",")
}

func difficultiesToStrings(ds []bank.Difficulty) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = string(d)
	}
	return out
}

func typesToStrings(ts []bank.Type) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}
