package criteria

import (
	"strings"
	"testing"

	"github.com/abhisek/papergen/internal/bank"
)

func TestNormalize_Defaults(t *testing.T) {
	c, warns := Normalize(map[string]any{})
	if c.Count != DefaultCount {
		t.Errorf("Count = %d, want %d", c.Count, DefaultCount)
	}
	if !c.Diversity {
		t.Error("Diversity should default to true")
	}
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	if c.HasScoringCriteria() {
		t.Error("empty criteria should have no scoring dimensions")
	}
}

func TestNormalize_CommaSplitAndCase(t *testing.T) {
	c, _ := Normalize(map[string]any{
		"topic":    " Math , Physics,  ",
		"keywords": "Algebra; geometry ,calculus",
	})
	want := []string{"math", "physics"}
	if len(c.Topics) != len(want) {
		t.Fatalf("Topics = %v, want %v", c.Topics, want)
	}
	for i := range want {
		if c.Topics[i] != want[i] {
			t.Errorf("Topics[%d] = %q, want %q", i, c.Topics[i], want[i])
		}
	}
	wantKw := []string{"algebra", "geometry", "calculus"}
	for i := range wantKw {
		if c.Keywords[i] != wantKw[i] {
			t.Errorf("Keywords[%d] = %q, want %q", i, c.Keywords[i], wantKw[i])
		}
	}
}

func TestNormalize_ListInputs(t *testing.T) {
	c, _ := Normalize(map[string]any{
		"topic": []any{"Science", " History "},
		"type":  []string{"essay", "code"},
	})
	if len(c.Topics) != 2 || c.Topics[0] != "science" || c.Topics[1] != "history" {
		t.Errorf("Topics = %v", c.Topics)
	}
	if len(c.Types) != 2 || c.Types[0] != bank.TypeEssay || c.Types[1] != bank.TypeCode {
		t.Errorf("Types = %v", c.Types)
	}
}

func TestNormalize_InvalidDifficultyDroppedWithDefault(t *testing.T) {
	c, warns := Normalize(map[string]any{"difficulty": "impossible,bogus"})
	if len(c.Difficulties) != 1 || c.Difficulties[0] != bank.DifficultyMedium {
		t.Errorf("Difficulties = %v, want [medium]", c.Difficulties)
	}
	if len(warns) != 2 {
		t.Errorf("warnings = %v, want 2 dropped-term warnings", warns)
	}
}

func TestNormalize_PartiallyValidDifficulty(t *testing.T) {
	c, warns := Normalize(map[string]any{"difficulty": "hard,bogus,easy"})
	if len(c.Difficulties) != 2 || c.Difficulties[0] != bank.DifficultyHard || c.Difficulties[1] != bank.DifficultyEasy {
		t.Errorf("Difficulties = %v, want [hard easy]", c.Difficulties)
	}
	if len(warns) != 1 {
		t.Errorf("warnings = %v, want 1", warns)
	}
}

func TestNormalize_Count(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"string", "15", 15},
		{"int", 30, 30},
		{"float", 12.0, 12},
		{"zero falls back", 0, DefaultCount},
		{"negative falls back", -5, DefaultCount},
		{"garbage falls back", "lots", DefaultCount},
		{"capped", 5000, MaxCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := Normalize(map[string]any{"count": tt.in})
			if c.Count != tt.want {
				t.Errorf("Count = %d, want %d", c.Count, tt.want)
			}
		})
	}
}

func TestNormalize_LengthSwap(t *testing.T) {
	// Scenario D: reversed bounds are swapped, not rejected.
	c, warns := Normalize(map[string]any{"min_length": 50, "max_length": 10})
	if c.MinLength != 10 || c.MaxLength != 50 {
		t.Errorf("lengths = (%d, %d), want (10, 50)", c.MinLength, c.MaxLength)
	}
	if len(warns) != 1 || !strings.Contains(warns[0], "swapping") {
		t.Errorf("warnings = %v, want swap warning", warns)
	}
}

func TestNormalize_KeywordOverlapWarnsOnly(t *testing.T) {
	c, warns := Normalize(map[string]any{
		"keywords":         "loop,array",
		"exclude_keywords": "array,pointer",
	})
	// Both sets keep the overlapping term; exclusion wins at filter time.
	if len(c.Keywords) != 2 || len(c.ExcludeKeywords) != 2 {
		t.Fatalf("sets not preserved: %v / %v", c.Keywords, c.ExcludeKeywords)
	}
	found := false
	for _, w := range warns {
		if strings.Contains(w, "exclude wins") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want overlap warning", warns)
	}
}

func TestNormalize_UnknownKeysPassThrough(t *testing.T) {
	c, _ := Normalize(map[string]any{"marks_at_least": 5})
	if c.Extra["marks_at_least"] != 5 {
		t.Errorf("Extra = %v, want marks_at_least preserved", c.Extra)
	}
}

func TestNormalize_NeverFails(t *testing.T) {
	// Every field malformed at once: all fall back, none raise.
	c, warns := Normalize(map[string]any{
		"count":      "NaN",
		"min_length": "wide",
		"max_length": []any{},
		"difficulty": "none",
		"type":       "hologram",
	})
	if c.Count != DefaultCount {
		t.Errorf("Count = %d", c.Count)
	}
	if c.MinLength != 0 || c.MaxLength != 0 {
		t.Errorf("lengths = (%d, %d)", c.MinLength, c.MaxLength)
	}
	if len(c.Difficulties) != 1 || len(c.Types) != 1 {
		t.Errorf("enum defaults missing: %v / %v", c.Difficulties, c.Types)
	}
	if len(warns) == 0 {
		t.Error("expected warnings for malformed input")
	}
}

func TestParseString(t *testing.T) {
	c, _ := ParseString("topic:math,count:10,diversity:false")
	if len(c.Topics) != 1 || c.Topics[0] != "math" {
		t.Errorf("Topics = %v", c.Topics)
	}
	if c.Count != 10 {
		t.Errorf("Count = %d", c.Count)
	}
	if c.Diversity {
		t.Error("Diversity should be false")
	}
}
