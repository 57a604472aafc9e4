package bank

import (
	"testing"
)

func TestNormalize_Defaults(t *testing.T) {
	q := Question{Text: "  What is entropy?  "}
	q.Normalize()

	if q.ID == "" {
		t.Error("ID should be generated")
	}
	if q.Text != "What is entropy?" {
		t.Errorf("Text = %q", q.Text)
	}
	if q.Topic != DefaultTopic {
		t.Errorf("Topic = %q, want %q", q.Topic, DefaultTopic)
	}
	if q.Difficulty != DifficultyMedium {
		t.Errorf("Difficulty = %q, want medium", q.Difficulty)
	}
	if q.Type != TypeText {
		t.Errorf("Type = %q, want text", q.Type)
	}
	if q.Marks != DefaultMarks {
		t.Errorf("Marks = %d, want %d", q.Marks, DefaultMarks)
	}
}

func TestNormalize_CanonicalizesCasingAndKeywords(t *testing.T) {
	q := Question{
		ID: "q1", Text: "x", Topic: " Physics ",
		Difficulty: "HARD", Type: "ESSAY",
		Keywords: []string{" Mechanics ", "", "WAVES"},
		Marks:    -3,
	}
	q.Normalize()
	if q.Topic != "physics" || q.Difficulty != DifficultyHard || q.Type != TypeEssay {
		t.Errorf("labels = %q/%q/%q", q.Topic, q.Difficulty, q.Type)
	}
	if len(q.Keywords) != 2 || q.Keywords[0] != "mechanics" || q.Keywords[1] != "waves" {
		t.Errorf("Keywords = %v", q.Keywords)
	}
	if q.Marks != DefaultMarks {
		t.Errorf("Marks = %d", q.Marks)
	}
}

func TestNormalize_InvalidEnumsFallBack(t *testing.T) {
	q := Question{ID: "q", Text: "x", Difficulty: "brutal", Type: "hologram"}
	q.Normalize()
	if q.Difficulty != DifficultyMedium || q.Type != TypeText {
		t.Errorf("got %q/%q", q.Difficulty, q.Type)
	}
}

func TestEffectiveUnit_TopicFallback(t *testing.T) {
	withUnit := Question{Topic: "algebra", Unit: "unit3"}
	if withUnit.EffectiveUnit() != "unit3" {
		t.Errorf("got %q", withUnit.EffectiveUnit())
	}
	withoutUnit := Question{Topic: "algebra"}
	if withoutUnit.EffectiveUnit() != "algebra" {
		t.Errorf("got %q", withoutUnit.EffectiveUnit())
	}
}

func TestDifficultyLevel(t *testing.T) {
	levels := map[Difficulty]int{
		DifficultyEasy: 1, DifficultyMedium: 2, DifficultyHard: 3, DifficultyExpert: 4,
		Difficulty("unknown"): 2,
	}
	for d, want := range levels {
		if got := d.Level(); got != want {
			t.Errorf("%s.Level() = %d, want %d", d, got, want)
		}
	}
}

func TestLoad_DropsEmptyTextAndReplacesPool(t *testing.T) {
	b := New()
	n := b.Load([]Question{
		{ID: "1", Text: "keep me"},
		{ID: "2", Text: "   "},
	})
	if n != 1 || b.Len() != 1 {
		t.Fatalf("loaded = %d, len = %d, want 1", n, b.Len())
	}

	old := b.Questions()
	b.Load([]Question{{ID: "3", Text: "new pool"}})
	// The previously handed-out snapshot is untouched by the reload.
	if len(old) != 1 || old[0].ID != "1" {
		t.Errorf("old snapshot mutated: %v", old)
	}
	if b.Questions()[0].ID != "3" {
		t.Errorf("pool not replaced: %v", b.Questions())
	}
}

func TestUnits_SortedUnique(t *testing.T) {
	b := New()
	b.Load([]Question{
		{ID: "1", Text: "a", Topic: "zoology"},
		{ID: "2", Text: "b", Topic: "algebra", Unit: "unit2"},
		{ID: "3", Text: "c", Topic: "botany", Unit: "unit2"},
		{ID: "4", Text: "d", Topic: "chemistry", Unit: "unit1"},
	})
	got := b.Units()
	want := []string{"unit1", "unit2", "zoology"}
	if len(got) != len(want) {
		t.Fatalf("units = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("units[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStatistics(t *testing.T) {
	qs := []Question{
		{ID: "1", Text: "ab", Topic: "math", Difficulty: DifficultyEasy, Type: TypeText},
		{ID: "2", Text: "abcd", Topic: "math", Difficulty: DifficultyHard, Type: TypeEssay},
		{ID: "3", Text: "abcdef", Topic: "physics", Difficulty: DifficultyEasy, Type: TypeText},
	}
	s := Statistics(qs)
	if s.Total != 3 {
		t.Errorf("Total = %d", s.Total)
	}
	if s.Topics["math"] != 2 || s.Topics["physics"] != 1 {
		t.Errorf("Topics = %v", s.Topics)
	}
	if s.Difficulties[DifficultyEasy] != 2 {
		t.Errorf("Difficulties = %v", s.Difficulties)
	}
	if s.Types[TypeText] != 2 {
		t.Errorf("Types = %v", s.Types)
	}
	if s.Length.Min != 2 || s.Length.Max != 6 || !almostEqual(s.Length.Avg, 4.0) {
		t.Errorf("Length = %+v", s.Length)
	}
}

func TestStatistics_Empty(t *testing.T) {
	s := Statistics(nil)
	if s.Total != 0 || s.Length.Min != 0 || s.Length.Avg != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d > -1e-9 && d < 1e-9
}
