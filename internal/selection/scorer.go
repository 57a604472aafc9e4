package selection

import (
	"strings"

	"github.com/abhisek/papergen/internal/bank"
	"github.com/abhisek/papergen/internal/criteria"
)

// Sub-score weights applied when every dimension is present. The final
// score is the mean of only the weighted sub-scores that were computed,
// so a question scored against a single criterion is not diluted by
// missing dimensions.
const (
	weightTopic      = 0.30
	weightKeywords   = 0.25
	weightDifficulty = 0.20
	weightType       = 0.15
	weightSemantic   = 0.10

	// neutralScore is assigned when no scoring criteria were given,
	// degrading selection to "all candidates equally relevant".
	neutralScore = 0.5
)

// Scored pairs a question with its relevance score in [0,1].
type Scored struct {
	Question bank.Question
	Score    float64
}

// Scorer assigns relevance scores against criteria. Pure; inputs are
// never mutated.
type Scorer struct{}

// Score computes a relevance score for each question, preserving order.
func (Scorer) Score(qs []bank.Question, c criteria.Criteria) []Scored {
	out := make([]Scored, len(qs))
	for i, q := range qs {
		out[i] = Scored{Question: q, Score: relevance(q, c)}
	}
	return out
}

func relevance(q bank.Question, c criteria.Criteria) float64 {
	var scores []float64

	if len(c.Topics) > 0 {
		scores = append(scores, topicScore(q, c.Topics)*weightTopic)
	}
	if len(c.Keywords) > 0 {
		scores = append(scores, keywordScore(q, c.Keywords)*weightKeywords)
	}
	if len(c.Difficulties) > 0 {
		scores = append(scores, difficultyScore(q, c.Difficulties)*weightDifficulty)
	}
	if len(c.Types) > 0 {
		scores = append(scores, typeScore(q, c.Types)*weightType)
	}
	if c.ReferenceText != "" {
		scores = append(scores, textSimilarity(q.Text, c.ReferenceText)*weightSemantic)
	}

	if len(scores) == 0 {
		return neutralScore
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// topicScore: 1.0 exact match, 0.7 substring containment, else the best
// text similarity against any target topic.
func topicScore(q bank.Question, topics []string) float64 {
	for _, t := range topics {
		if q.Topic == t {
			return 1.0
		}
	}
	for _, t := range topics {
		if strings.Contains(q.Topic, t) || strings.Contains(t, q.Topic) {
			return 0.7
		}
	}
	best := 0.0
	for _, t := range topics {
		if s := textSimilarity(q.Topic, t); s > best {
			best = s
		}
	}
	return best
}

// keywordScore is the fraction of requested keywords present in the
// question text or author keywords.
func keywordScore(q bank.Question, keywords []string) float64 {
	hay := q.SearchText()
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(hay, kw) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}

// difficultyScore decays by 0.3 per ordinal level of distance from the
// nearest requested difficulty.
func difficultyScore(q bank.Question, ds []bank.Difficulty) float64 {
	best := 0.0
	for _, d := range ds {
		diff := q.Difficulty.Level() - d.Level()
		if diff < 0 {
			diff = -diff
		}
		s := 1.0 - 0.3*float64(diff)
		if s < 0 {
			s = 0
		}
		if s > best {
			best = s
		}
	}
	return best
}

func typeScore(q bank.Question, ts []bank.Type) float64 {
	for _, t := range ts {
		if q.Type == t {
			return 1.0
		}
	}
	return 0.0
}
