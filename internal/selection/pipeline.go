// Package selection implements the question selection engine: a fixed
// filter pipeline, a criteria relevance scorer, and a greedy
// diversity-aware selector, tied together by Engine.
package selection

import (
	"regexp"
	"strings"

	"github.com/abhisek/papergen/internal/bank"
	"github.com/abhisek/papergen/internal/criteria"
)

// CustomFilter is a registered predicate keyed by a criteria Extra field.
// It receives the field's raw value and narrows the candidate set.
type CustomFilter func(qs []bank.Question, value any) []bank.Question

// Pipeline applies the fixed filter sequence, then any registered custom
// filters. Apply is pure: the input slice is never modified.
type Pipeline struct {
	customOrder []string
	custom      map[string]CustomFilter
}

// NewPipeline creates a Pipeline with no custom filters.
func NewPipeline() *Pipeline {
	return &Pipeline{custom: map[string]CustomFilter{}}
}

// Register adds a custom filter for the given criteria key. Custom
// filters run after the fixed sequence, in registration order.
func (p *Pipeline) Register(key string, f CustomFilter) {
	if _, ok := p.custom[key]; !ok {
		p.customOrder = append(p.customOrder, key)
	}
	p.custom[key] = f
}

// Apply narrows qs by each present criterion in the fixed order:
// topic, difficulty, type, include-keywords, free-text pattern,
// exclude-keywords, min length, max length, custom filters.
// An empty result is a valid outcome.
func (p *Pipeline) Apply(qs []bank.Question, c criteria.Criteria) []bank.Question {
	out := qs
	if len(c.Topics) > 0 {
		out = filterTopic(out, c.Topics)
	}
	if len(c.Difficulties) > 0 {
		out = filterDifficulty(out, c.Difficulties)
	}
	if len(c.Types) > 0 {
		out = filterType(out, c.Types)
	}
	if len(c.Keywords) > 0 {
		out = filterKeywords(out, c.Keywords)
	}
	if c.TextContains != "" {
		out = filterText(out, c.TextContains)
	}
	if len(c.ExcludeKeywords) > 0 {
		out = filterExcludeKeywords(out, c.ExcludeKeywords)
	}
	if c.MinLength > 0 {
		out = filterLength(out, func(n int) bool { return n >= c.MinLength })
	}
	if c.MaxLength > 0 {
		out = filterLength(out, func(n int) bool { return n <= c.MaxLength })
	}
	for _, key := range p.customOrder {
		val, ok := c.Extra[key]
		if !ok {
			continue
		}
		out = p.custom[key](out, val)
	}
	return out
}

// topicMatches uses bidirectional substring containment so near-duplicate
// topic labels ("math" vs "mathematics") still match.
func topicMatches(topic string, targets []string) bool {
	for _, t := range targets {
		if strings.Contains(topic, t) || strings.Contains(t, topic) {
			return true
		}
	}
	return false
}

func filterTopic(qs []bank.Question, topics []string) []bank.Question {
	var out []bank.Question
	for _, q := range qs {
		if topicMatches(q.Topic, topics) {
			out = append(out, q)
		}
	}
	return out
}

func filterDifficulty(qs []bank.Question, ds []bank.Difficulty) []bank.Question {
	want := map[bank.Difficulty]bool{}
	for _, d := range ds {
		want[d] = true
	}
	var out []bank.Question
	for _, q := range qs {
		if want[q.Difficulty] {
			out = append(out, q)
		}
	}
	return out
}

func filterType(qs []bank.Question, ts []bank.Type) []bank.Question {
	want := map[bank.Type]bool{}
	for _, t := range ts {
		want[t] = true
	}
	var out []bank.Question
	for _, q := range qs {
		if want[q.Type] {
			out = append(out, q)
		}
	}
	return out
}

// filterKeywords keeps questions containing ANY of the requested terms
// in their text or author keywords.
func filterKeywords(qs []bank.Question, keywords []string) []bank.Question {
	var out []bank.Question
	for _, q := range qs {
		hay := q.SearchText()
		for _, kw := range keywords {
			if strings.Contains(hay, kw) {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

// filterText treats pattern as a case-insensitive regular expression,
// degrading to a plain substring match when the pattern does not compile.
func filterText(qs []bank.Question, pattern string) []bank.Question {
	re, err := regexp.Compile("(?i)" + pattern)
	var out []bank.Question
	if err != nil {
		sub := strings.ToLower(pattern)
		for _, q := range qs {
			if strings.Contains(strings.ToLower(q.Text), sub) {
				out = append(out, q)
			}
		}
		return out
	}
	for _, q := range qs {
		if re.MatchString(q.Text) {
			out = append(out, q)
		}
	}
	return out
}

func filterExcludeKeywords(qs []bank.Question, keywords []string) []bank.Question {
	var out []bank.Question
	for _, q := range qs {
		hay := q.SearchText()
		excluded := false
		for _, kw := range keywords {
			if strings.Contains(hay, kw) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, q)
		}
	}
	return out
}

func filterLength(qs []bank.Question, keep func(int) bool) []bank.Question {
	var out []bank.Question
	for _, q := range qs {
		if keep(len(q.Text)) {
			out = append(out, q)
		}
	}
	return out
}
