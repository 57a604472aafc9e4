package classify

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/abhisek/papergen/internal/bank"
)

// Keyword is the default classifier: deterministic cue-word rules for
// difficulty and type, plus an optional token-frequency topic model
// trained from an already-labeled bank. It never fails.
type Keyword struct {
	topics map[string]map[string]float64 // topic -> token -> log-weighted frequency
	docs   map[string]int                // topic -> training document count
}

// NewKeyword creates an untrained Keyword classifier. Until Train is
// called, topic classification returns the fallback label.
func NewKeyword() *Keyword {
	return &Keyword{}
}

// Train builds the topic model from labeled questions. Questions with
// the fallback topic are skipped so the model only learns author-given
// labels. Returns the number of questions used.
func (k *Keyword) Train(qs []bank.Question) int {
	topics := map[string]map[string]float64{}
	docs := map[string]int{}
	used := 0
	for _, q := range qs {
		if q.Topic == "" || q.Topic == FallbackTopic {
			continue
		}
		m := topics[q.Topic]
		if m == nil {
			m = map[string]float64{}
			topics[q.Topic] = m
		}
		for _, tok := range classifyTokens(q.Text) {
			m[tok]++
		}
		docs[q.Topic]++
		used++
	}
	k.topics = topics
	k.docs = docs
	return used
}

// Trained reports whether a topic model is available.
func (k *Keyword) Trained() bool {
	return len(k.topics) > 0
}

// Classify labels text using the trained topic model and the built-in
// difficulty/type rules.
func (k *Keyword) Classify(_ context.Context, text string) (Classification, error) {
	c := fallback()

	if topic, conf, ok := k.classifyTopic(text); ok {
		c.Topic = topic
		c.TopicConfidence = conf
	}
	if d, conf, ok := classifyDifficulty(text); ok {
		c.Difficulty = d
		c.DifficultyConfidence = conf
	}
	if t, conf, ok := classifyType(text); ok {
		c.Type = t
		c.TypeConfidence = conf
	}
	return c, nil
}

// classifyTopic scores each trained topic by smoothed log-likelihood of
// the text's tokens and returns the winner with a softmax-style share as
// confidence. Ties resolve alphabetically for determinism.
func (k *Keyword) classifyTopic(text string) (string, float64, bool) {
	if !k.Trained() {
		return "", 0, false
	}
	tokens := classifyTokens(text)
	if len(tokens) == 0 {
		return "", 0, false
	}

	names := make([]string, 0, len(k.topics))
	for name := range k.topics {
		names = append(names, name)
	}
	sort.Strings(names)

	scores := make([]float64, len(names))
	for i, name := range names {
		m := k.topics[name]
		total := 0.0
		for _, f := range m {
			total += f
		}
		s := 0.0
		for _, tok := range tokens {
			s += math.Log((m[tok] + 1) / (total + float64(len(m)+1)))
		}
		scores[i] = s
	}

	bestIdx := 0
	for i, s := range scores {
		if s > scores[bestIdx] {
			bestIdx = i
		}
	}

	// Confidence as the winner's share after shifting into positives.
	min := scores[0]
	for _, s := range scores {
		if s < min {
			min = s
		}
	}
	sum := 0.0
	for _, s := range scores {
		sum += s - min + 1
	}
	conf := (scores[bestIdx] - min + 1) / sum
	if len(names) == 1 {
		conf = FallbackConfidence
	}
	return names[bestIdx], conf, true
}

var difficultyCues = []struct {
	level bank.Difficulty
	cues  []string
}{
	{bank.DifficultyEasy, []string{"define", "list", "name", "state", "what is", "identify"}},
	{bank.DifficultyHard, []string{"analyze", "analyse", "compare and contrast", "derive", "justify", "critique"}},
	{bank.DifficultyExpert, []string{"design", "prove", "optimize", "formulate", "synthesize"}},
}

// classifyDifficulty applies cue-word rules; the first matching rule
// wins with fixed 0.7 confidence.
func classifyDifficulty(text string) (bank.Difficulty, float64, bool) {
	lower := strings.ToLower(text)
	for _, rule := range difficultyCues {
		for _, cue := range rule.cues {
			if strings.Contains(lower, cue) {
				return rule.level, 0.7, true
			}
		}
	}
	return "", 0, false
}

var typeCues = []struct {
	qtype bank.Type
	cues  []string
}{
	{bank.TypeTrueFalse, []string{"true or false", "true/false"}},
	{bank.TypeMultipleChoice, []string{"which of the following", "choose the correct", "select the correct"}},
	{bank.TypeCode, []string{"write a program", "write a function", "implement", "pseudocode"}},
	{bank.TypeNumeric, []string{"calculate", "compute", "how many", "evaluate the expression"}},
	{bank.TypeEssay, []string{"explain", "describe", "discuss", "elaborate"}},
}

func classifyType(text string) (bank.Type, float64, bool) {
	lower := strings.ToLower(text)
	for _, rule := range typeCues {
		for _, cue := range rule.cues {
			if strings.Contains(lower, cue) {
				return rule.qtype, 0.7, true
			}
		}
	}
	return "", 0, false
}

func classifyTokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
