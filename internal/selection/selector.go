package selection

import (
	"sort"

	"github.com/abhisek/papergen/internal/bank"
)

// diversityFactor is the blend weight α between relevance and the
// diversity bonus during greedy selection.
const diversityFactor = 0.3

// Selector picks the final question set from scored candidates.
type Selector struct{}

// Select returns up to targetCount questions. Pools no larger than the
// target are returned whole. With diversity disabled the top scorers win
// (stable order on ties); with diversity enabled a greedy pass balances
// relevance against attribute diversity.
func (Selector) Select(scored []Scored, targetCount int, diversity bool) []bank.Question {
	if len(scored) <= targetCount {
		return questions(scored)
	}
	if !diversity {
		ranked := make([]Scored, len(scored))
		copy(ranked, scored)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Score > ranked[j].Score
		})
		return questions(ranked[:targetCount])
	}
	return diverseSelect(scored, targetCount)
}

// diverseSelect greedily picks the candidate maximizing
// score·(1−α) + bonus·α, where the bonus favors attribute values not yet
// well represented in the running selection. Ties resolve to the first
// candidate reaching the maximum, keeping selection deterministic.
func diverseSelect(scored []Scored, targetCount int) []bank.Question {
	remaining := make([]Scored, len(scored))
	copy(remaining, scored)

	topicCounts := map[string]int{}
	difficultyCounts := map[bank.Difficulty]int{}
	typeCounts := map[bank.Type]int{}

	var selected []bank.Question
	for len(selected) < targetCount && len(remaining) > 0 {
		bestIdx := -1
		bestScore := -1.0
		for i, cand := range remaining {
			bonus := diversityBonus(cand.Question, topicCounts, difficultyCounts, typeCounts)
			total := cand.Score*(1-diversityFactor) + bonus*diversityFactor
			if total > bestScore {
				bestScore = total
				bestIdx = i
			}
		}

		q := remaining[bestIdx].Question
		selected = append(selected, q)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

		topicCounts[q.Topic]++
		difficultyCounts[q.Difficulty]++
		typeCounts[q.Type]++
	}
	return selected
}

// diversityBonus is the mean of inverse (count+1) across the three
// tracked attributes: an already-heavily-represented value contributes a
// near-zero bonus, pulling selection toward underrepresented attributes.
func diversityBonus(q bank.Question, topics map[string]int, difficulties map[bank.Difficulty]int, types map[bank.Type]int) float64 {
	tb := 1.0 / float64(topics[q.Topic]+1)
	db := 1.0 / float64(difficulties[q.Difficulty]+1)
	yb := 1.0 / float64(types[q.Type]+1)
	return (tb + db + yb) / 3.0
}

func questions(scored []Scored) []bank.Question {
	out := make([]bank.Question, len(scored))
	for i, s := range scored {
		out[i] = s.Question
	}
	return out
}
