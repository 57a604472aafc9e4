// Package marks implements marks-driven question allocation: given a
// unit-restricted pool and a target total, it computes how many
// questions of each mark value to draw and performs the random draw.
package marks

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/abhisek/papergen/internal/bank"
)

// Distribution maps a mark value to the number of questions required at
// that value, e.g. {2: 18, 16: 4}.
type Distribution map[int]int

// Allocation is the result of one marks-based draw.
type Allocation struct {
	// Questions are the drawn questions, grouped by ascending mark value.
	Questions []bank.Question

	// TargetMarks is the requested total.
	TargetMarks int

	// AchievedMarks is Σ(mark value × drawn count). May fall short of
	// the target when a bucket has too few candidates.
	AchievedMarks int

	// Drawn maps each mark value to the count actually drawn.
	Drawn Distribution

	// ChoiceOptions is 2 when at least one 16-mark question was drawn,
	// else 0. Used by document rendering to group long answers into
	// choose-one pairs.
	ChoiceOptions int

	// Warnings lists bucket shortfalls. A shortfall is a recoverable
	// outcome of a successful allocation, not an error.
	Warnings []string
}

// NoCandidatesError indicates the unit-restricted pool was empty before
// allocation: the caller selected units that match no questions.
type NoCandidatesError struct {
	Units []string
}

func (e *NoCandidatesError) Error() string {
	if len(e.Units) == 0 {
		return "no questions found for the selected units"
	}
	return fmt.Sprintf("no questions found for the selected units: %s", strings.Join(e.Units, ", "))
}

// Mark values used by the heuristic distribution.
const (
	shortMark = 2
	longMark  = 16
)

// Allocate draws questions from pool to meet totalMarks. The pool must
// already be restricted to the caller's units; an empty pool returns
// *NoCandidatesError. When dist is nil a heuristic distribution is
// computed from totalMarks. Draws are uniform without replacement using
// rng, so a seeded source makes allocation reproducible. Buckets with
// too few candidates are drained entirely and recorded as warnings.
func Allocate(pool []bank.Question, totalMarks int, dist Distribution, units []string, rng *rand.Rand) (Allocation, error) {
	if len(pool) == 0 {
		return Allocation{}, &NoCandidatesError{Units: units}
	}
	if dist == nil {
		dist = HeuristicDistribution(totalMarks)
	}

	byMarks := map[int][]bank.Question{}
	for _, q := range pool {
		byMarks[q.Marks] = append(byMarks[q.Marks], q)
	}

	alloc := Allocation{
		TargetMarks: totalMarks,
		Drawn:       Distribution{},
	}

	// Ascending mark-value order keeps the draw deterministic for a
	// fixed seed regardless of map iteration order.
	values := make([]int, 0, len(dist))
	for v := range dist {
		values = append(values, v)
	}
	sort.Ints(values)

	for _, value := range values {
		required := dist[value]
		if required <= 0 {
			continue
		}
		available := byMarks[value]
		var picked []bank.Question
		if len(available) >= required {
			picked = sample(available, required, rng)
		} else {
			picked = append(picked, available...)
			alloc.Warnings = append(alloc.Warnings, fmt.Sprintf(
				"only %d questions available for %d marks, needed %d",
				len(available), value, required))
		}
		if len(picked) == 0 {
			continue
		}
		alloc.Questions = append(alloc.Questions, picked...)
		alloc.Drawn[value] = len(picked)
		alloc.AchievedMarks += value * len(picked)
	}

	if alloc.Drawn[longMark] > 0 {
		alloc.ChoiceOptions = 2
	}
	return alloc, nil
}

// HeuristicDistribution computes a 2-mark/16-mark split for the target
// total, following the common exam patterns: small tests lean on 2-mark
// questions, standard exams put roughly 20% into 16-mark questions, and
// large papers allow up to six 16-mark questions.
func HeuristicDistribution(totalMarks int) Distribution {
	var twoCount, sixteenCount int
	switch {
	case totalMarks <= 50:
		twoCount = min(totalMarks/shortMark, 20)
		remaining := totalMarks - twoCount*shortMark
		sixteenCount = max(0, remaining/longMark)
	case totalMarks <= 100:
		sixteenCount = min(totalMarks/20, 4)
		remaining := totalMarks - sixteenCount*longMark
		twoCount = remaining / shortMark
	default:
		sixteenCount = min(totalMarks/longMark, 6)
		remaining := totalMarks - sixteenCount*longMark
		twoCount = remaining / shortMark
	}
	return Distribution{
		shortMark: max(1, twoCount),
		longMark:  max(0, sixteenCount),
	}
}

// sample draws n distinct elements uniformly without replacement.
func sample(qs []bank.Question, n int, rng *rand.Rand) []bank.Question {
	idx := rng.Perm(len(qs))[:n]
	out := make([]bank.Question, n)
	for i, j := range idx {
		out[i] = qs[j]
	}
	return out
}
