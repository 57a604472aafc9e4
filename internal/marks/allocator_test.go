package marks

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/abhisek/papergen/internal/bank"
)

func pool(counts map[int]int) []bank.Question {
	var qs []bank.Question
	for value, n := range counts {
		for i := 0; i < n; i++ {
			qs = append(qs, bank.Question{
				ID:    fmt.Sprintf("m%d-%02d", value, i),
				Text:  fmt.Sprintf("question worth %d marks #%d", value, i),
				Topic: "networks", Unit: "unit1", Marks: value,
			})
		}
	}
	return qs
}

func rng() *rand.Rand {
	return rand.New(rand.NewSource(99))
}

func TestHeuristicDistribution(t *testing.T) {
	tests := []struct {
		total       int
		wantTwo     int
		wantSixteen int
	}{
		// ≤50: mostly 2-mark; leftovers fund 16-mark.
		{20, 10, 0},
		{50, 20, 0},
		{46, 20, 0},
		// 51–100: ~20% in 16-mark.
		{100, 18, 4},
		{60, 6, 3},
		// >100: up to six 16-mark questions.
		{120, 12, 6},
		{200, 52, 6},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("total=%d", tt.total), func(t *testing.T) {
			d := HeuristicDistribution(tt.total)
			if d[2] != tt.wantTwo || d[16] != tt.wantSixteen {
				t.Errorf("distribution = %v, want {2:%d 16:%d}", d, tt.wantTwo, tt.wantSixteen)
			}
		})
	}
}

func TestHeuristicDistribution_MinimumOneTwoMark(t *testing.T) {
	d := HeuristicDistribution(1)
	if d[2] < 1 {
		t.Errorf("two-mark count = %d, want at least 1", d[2])
	}
}

func TestAllocate_EmptyPool(t *testing.T) {
	_, err := Allocate(nil, 50, nil, []string{"unit9"}, rng())
	var noCand *NoCandidatesError
	if !errors.As(err, &noCand) {
		t.Fatalf("err = %v, want *NoCandidatesError", err)
	}
	if len(noCand.Units) != 1 || noCand.Units[0] != "unit9" {
		t.Errorf("Units = %v", noCand.Units)
	}
}

func TestAllocate_AchievedMarksExact(t *testing.T) {
	alloc, err := Allocate(pool(map[int]int{2: 40, 16: 10}), 100, nil, nil, rng())
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	sum := 0
	for value, n := range alloc.Drawn {
		sum += value * n
	}
	if alloc.AchievedMarks != sum {
		t.Errorf("achieved = %d, want Σ(value×count) = %d", alloc.AchievedMarks, sum)
	}
	if alloc.AchievedMarks != 100 {
		t.Errorf("achieved = %d, want 100 with ample candidates", alloc.AchievedMarks)
	}
}

func TestAllocate_ShortfallAbsorbed(t *testing.T) {
	// Scenario B numbers: 15 of each value, target 100.
	alloc, err := Allocate(pool(map[int]int{2: 15, 16: 15}), 100, nil, nil, rng())
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if alloc.Drawn[2] != 15 || alloc.Drawn[16] != 4 {
		t.Errorf("drawn = %v", alloc.Drawn)
	}
	if alloc.AchievedMarks != 94 {
		t.Errorf("achieved = %d, want 94", alloc.AchievedMarks)
	}
	if len(alloc.Warnings) != 1 {
		t.Errorf("warnings = %v, want one shortfall", alloc.Warnings)
	}
}

func TestAllocate_DrawWithoutReplacement(t *testing.T) {
	alloc, err := Allocate(pool(map[int]int{2: 25}), 30, nil, nil, rng())
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	seen := map[string]bool{}
	for _, q := range alloc.Questions {
		if seen[q.ID] {
			t.Fatalf("question %s drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
	if alloc.Drawn[2] != 15 {
		t.Errorf("drawn = %v, want 15 two-mark for total 30", alloc.Drawn)
	}
}

func TestAllocate_ChoiceOptions(t *testing.T) {
	withLong, err := Allocate(pool(map[int]int{2: 20, 16: 5}), 100, nil, nil, rng())
	if err != nil {
		t.Fatal(err)
	}
	if withLong.ChoiceOptions != 2 {
		t.Errorf("choice options = %d, want 2 with 16-mark questions", withLong.ChoiceOptions)
	}

	shortOnly, err := Allocate(pool(map[int]int{2: 20}), 30, nil, nil, rng())
	if err != nil {
		t.Fatal(err)
	}
	if shortOnly.ChoiceOptions != 0 {
		t.Errorf("choice options = %d, want 0 without 16-mark questions", shortOnly.ChoiceOptions)
	}
}

func TestAllocate_ExplicitDistributionOverridesHeuristic(t *testing.T) {
	alloc, err := Allocate(pool(map[int]int{2: 10, 16: 10}), 999, Distribution{16: 2}, nil, rng())
	if err != nil {
		t.Fatal(err)
	}
	if alloc.Drawn[2] != 0 || alloc.Drawn[16] != 2 {
		t.Errorf("drawn = %v, want only the explicit buckets", alloc.Drawn)
	}
	if alloc.AchievedMarks != 32 {
		t.Errorf("achieved = %d, want 32", alloc.AchievedMarks)
	}
}

func TestAllocate_SeededReproducibility(t *testing.T) {
	qs := pool(map[int]int{2: 30, 16: 8})
	a, err := Allocate(qs, 80, nil, nil, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Allocate(qs, 80, nil, nil, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Questions) != len(b.Questions) {
		t.Fatalf("lengths differ: %d vs %d", len(a.Questions), len(b.Questions))
	}
	for i := range a.Questions {
		if a.Questions[i].ID != b.Questions[i].ID {
			t.Errorf("draw diverged at %d: %s vs %s", i, a.Questions[i].ID, b.Questions[i].ID)
		}
	}
}
