package bank

import (
	"strings"

	"github.com/google/uuid"
)

// Question is a single question record. Once loaded into a Bank it is
// treated as immutable; the only mutation is the classifier backfill of
// missing topic/difficulty/type applied at load time.
type Question struct {
	// ID uniquely identifies the question within a bank.
	ID string `json:"id"`

	// Text is the question prompt. Never empty after normalization.
	Text string `json:"text"`

	// Topic is a free-form subject label, e.g. "mathematics".
	Topic string `json:"topic"`

	// Difficulty is one of the four fixed levels.
	Difficulty Difficulty `json:"difficulty"`

	// Type describes how the question is answered.
	Type Type `json:"type"`

	// Keywords are optional lower-cased tags attached by the author.
	Keywords []string `json:"keywords,omitempty"`

	// Marks is the mark value of the question. Positive.
	Marks int `json:"marks"`

	// Unit is the syllabus unit for marks-based paper generation.
	// When empty, Topic stands in for it.
	Unit string `json:"unit,omitempty"`
}

// Difficulty is the question difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Difficulties lists the valid levels in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert}

// Level returns the ordinal rank of a difficulty (easy=1 .. expert=4).
// Unknown values rank as medium.
func (d Difficulty) Level() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	case DifficultyExpert:
		return 4
	}
	return 2
}

// ValidDifficulty reports whether s names a known difficulty level.
func ValidDifficulty(s string) bool {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}

// Type is the answer format of a question.
type Type string

const (
	TypeText           Type = "text"
	TypeMultipleChoice Type = "multiple_choice"
	TypeTrueFalse      Type = "true_false"
	TypeEssay          Type = "essay"
	TypeNumeric        Type = "numeric"
	TypeCode           Type = "code"
)

// Types lists the valid question types.
var Types = []Type{TypeText, TypeMultipleChoice, TypeTrueFalse, TypeEssay, TypeNumeric, TypeCode}

// ValidType reports whether s names a known question type.
func ValidType(s string) bool {
	switch Type(s) {
	case TypeText, TypeMultipleChoice, TypeTrueFalse, TypeEssay, TypeNumeric, TypeCode:
		return true
	}
	return false
}

// Defaults applied once at the load boundary so selection logic never
// sees a partially-typed record.
const (
	DefaultTopic = "general"
	DefaultMarks = 2
)

// Normalize fills missing fields with defaults and canonicalizes casing.
// Records with empty text are left for the caller to drop.
func (q *Question) Normalize() {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.Text = strings.TrimSpace(q.Text)
	q.Topic = strings.ToLower(strings.TrimSpace(q.Topic))
	if q.Topic == "" {
		q.Topic = DefaultTopic
	}
	q.Difficulty = Difficulty(strings.ToLower(strings.TrimSpace(string(q.Difficulty))))
	if !ValidDifficulty(string(q.Difficulty)) {
		q.Difficulty = DifficultyMedium
	}
	q.Type = Type(strings.ToLower(strings.TrimSpace(string(q.Type))))
	if !ValidType(string(q.Type)) {
		q.Type = TypeText
	}
	if q.Marks <= 0 {
		q.Marks = DefaultMarks
	}
	kws := q.Keywords[:0]
	for _, k := range q.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kws = append(kws, k)
		}
	}
	q.Keywords = kws
	q.Unit = strings.TrimSpace(q.Unit)
}

// EffectiveUnit returns the unit used for marks-based selection,
// falling back to the topic when no explicit unit is set.
func (q Question) EffectiveUnit() string {
	if q.Unit != "" {
		return q.Unit
	}
	return q.Topic
}

// SearchText returns the lower-cased concatenation of the question text
// and its keywords, the haystack for keyword filters and scoring.
func (q Question) SearchText() string {
	if len(q.Keywords) == 0 {
		return strings.ToLower(q.Text)
	}
	return strings.ToLower(q.Text) + " " + strings.Join(q.Keywords, " ")
}
