// Package classify provides the question classifier collaborators used
// to backfill missing topic/difficulty/type labels at bank load time.
// Classifiers are injected into the engine, never package singletons, so
// tests can substitute a deterministic stub.
package classify

import (
	"context"

	"github.com/abhisek/papergen/internal/bank"
)

// Fallback labels returned when no trained model or rule applies.
const (
	FallbackTopic      = bank.DefaultTopic
	FallbackConfidence = 0.5
)

// Classification is a full label set for one question text. Each label
// carries its own confidence in [0,1].
type Classification struct {
	Topic                string
	TopicConfidence      float64
	Difficulty           bank.Difficulty
	DifficultyConfidence float64
	Type                 bank.Type
	TypeConfidence       float64
}

// Classifier assigns labels to a question text.
type Classifier interface {
	// Classify labels a single question text. Implementations fall back
	// to ("general", medium, text, 0.5) rather than guessing wildly;
	// hard failures (e.g. a remote backend being down) are returned as
	// errors and propagate to the caller unmodified.
	Classify(ctx context.Context, text string) (Classification, error)
}

// fallback is the label set used when nothing better is known.
func fallback() Classification {
	return Classification{
		Topic:                FallbackTopic,
		TopicConfidence:      FallbackConfidence,
		Difficulty:           bank.DifficultyMedium,
		DifficultyConfidence: FallbackConfidence,
		Type:                 bank.TypeText,
		TypeConfidence:       FallbackConfidence,
	}
}
