package selection

import (
	"math"
	"testing"

	"github.com/abhisek/papergen/internal/bank"
	"github.com/abhisek/papergen/internal/criteria"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScore_NoCriteriaIsNeutral(t *testing.T) {
	scored := Scorer{}.Score(testPool(), criteria.Criteria{})
	for _, s := range scored {
		if !almostEqual(s.Score, 0.5) {
			t.Errorf("%s score = %v, want neutral 0.5", s.Question.ID, s.Score)
		}
	}
}

func TestScore_TopicOnlyNotDiluted(t *testing.T) {
	// With a single present dimension the mean divides by 1, so an exact
	// topic match scores the full topic weight.
	q := bank.Question{ID: "1", Text: "x", Topic: "physics", Difficulty: bank.DifficultyMedium, Type: bank.TypeText}
	scored := Scorer{}.Score([]bank.Question{q}, criteria.Criteria{Topics: []string{"physics"}})
	if !almostEqual(scored[0].Score, weightTopic) {
		t.Errorf("score = %v, want %v", scored[0].Score, weightTopic)
	}
}

func TestTopicScore_Tiers(t *testing.T) {
	exact := bank.Question{Topic: "physics"}
	contained := bank.Question{Topic: "mathematics"}
	unrelated := bank.Question{Topic: "zoology"}

	if got := topicScore(exact, []string{"physics"}); !almostEqual(got, 1.0) {
		t.Errorf("exact = %v, want 1.0", got)
	}
	if got := topicScore(contained, []string{"math"}); !almostEqual(got, 0.7) {
		t.Errorf("containment = %v, want 0.7", got)
	}
	if got := topicScore(unrelated, []string{"math"}); got >= 0.7 {
		t.Errorf("unrelated = %v, want similarity below containment tier", got)
	}
}

func TestDifficultyScore_OrdinalDecay(t *testing.T) {
	tests := []struct {
		q    bank.Difficulty
		want float64
	}{
		{bank.DifficultyEasy, 1.0},
		{bank.DifficultyMedium, 0.7},
		{bank.DifficultyHard, 0.4},
		{bank.DifficultyExpert, 0.1},
	}
	for _, tt := range tests {
		q := bank.Question{Difficulty: tt.q}
		got := difficultyScore(q, []bank.Difficulty{bank.DifficultyEasy})
		if !almostEqual(got, tt.want) {
			t.Errorf("difficultyScore(%s vs easy) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestDifficultyScore_NearestOfSet(t *testing.T) {
	q := bank.Question{Difficulty: bank.DifficultyHard}
	got := difficultyScore(q, []bank.Difficulty{bank.DifficultyEasy, bank.DifficultyHard})
	if !almostEqual(got, 1.0) {
		t.Errorf("score = %v, want 1.0 for exact member", got)
	}
}

func TestTypeScore_Binary(t *testing.T) {
	q := bank.Question{Type: bank.TypeEssay}
	if got := typeScore(q, []bank.Type{bank.TypeEssay, bank.TypeCode}); !almostEqual(got, 1.0) {
		t.Errorf("member = %v, want 1.0", got)
	}
	if got := typeScore(q, []bank.Type{bank.TypeCode}); !almostEqual(got, 0.0) {
		t.Errorf("non-member = %v, want 0.0", got)
	}
}

func TestKeywordScore_Fraction(t *testing.T) {
	q := bank.Question{Text: "Compute the area under the curve", Keywords: []string{"integration"}}
	got := keywordScore(q, []string{"area", "integration", "matrix", "curve"})
	if !almostEqual(got, 0.75) {
		t.Errorf("score = %v, want 0.75", got)
	}
}

func TestScore_WeightedMeanOfPresentDimensions(t *testing.T) {
	q := bank.Question{Text: "Explain gravity", Topic: "physics", Difficulty: bank.DifficultyMedium, Type: bank.TypeEssay}
	c := criteria.Criteria{
		Topics:       []string{"physics"},
		Difficulties: []bank.Difficulty{bank.DifficultyMedium},
	}
	// (1.0*0.30 + 1.0*0.20) / 2
	want := (weightTopic + weightDifficulty) / 2
	scored := Scorer{}.Score([]bank.Question{q}, c)
	if !almostEqual(scored[0].Score, want) {
		t.Errorf("score = %v, want %v", scored[0].Score, want)
	}
}

func TestScore_DoesNotMutateInput(t *testing.T) {
	pool := testPool()
	Scorer{}.Score(pool, criteria.Criteria{Topics: []string{"math"}})
	assertIDs(t, pool, "1", "2", "3", "4", "5", "6")
}

func TestTextSimilarity(t *testing.T) {
	if got := textSimilarity("the quick brown fox", "the quick brown fox"); !almostEqual(got, 1.0) {
		t.Errorf("identical texts = %v, want 1.0", got)
	}
	if got := textSimilarity("alpha beta gamma", "delta epsilon zeta"); !almostEqual(got, 0.0) {
		t.Errorf("disjoint texts = %v, want 0.0", got)
	}
	if got := textSimilarity("", "anything"); !almostEqual(got, 0.0) {
		t.Errorf("empty text = %v, want 0.0", got)
	}
	partial := textSimilarity("newton laws of motion", "laws of thermodynamics")
	if partial <= 0.0 || partial >= 1.0 {
		t.Errorf("partial overlap = %v, want strictly between 0 and 1", partial)
	}
}
