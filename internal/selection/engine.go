package selection

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/abhisek/papergen/internal/bank"
	"github.com/abhisek/papergen/internal/classify"
	"github.com/abhisek/papergen/internal/criteria"
	"github.com/abhisek/papergen/internal/marks"
)

// Result is the outcome of one selection call. For marks-based selection
// the marks fields are populated; for criteria selection they are zero.
type Result struct {
	// Questions is the final selected list.
	Questions []bank.Question

	// Criteria are the normalized criteria used (criteria selection only).
	Criteria criteria.Criteria

	// TargetMarks and AchievedMarks report the marks goal and what the
	// draw actually reached (marks selection only).
	TargetMarks   int
	AchievedMarks int

	// Drawn maps mark value to count actually drawn (marks selection only).
	Drawn marks.Distribution

	// ChoiceOptions is the per-question option count for long-answer
	// rendering: 2 when any 16-mark question was drawn, else 0.
	ChoiceOptions int

	// UnitsCovered lists the units requested for a marks-based paper.
	UnitsCovered []string

	// Warnings are recoverable notes (dropped criteria values, bucket
	// shortfalls). They accompany a successful result and must be
	// surfaced separately from hard failures.
	Warnings []string
}

// Engine is the selection facade exposed to the CLI, TUI and HTTP API.
// One Engine owns a Bank; Load replaces the pool wholesale. All
// randomness flows through the injected rand source.
type Engine struct {
	bank       *bank.Bank
	pipeline   *Pipeline
	scorer     Scorer
	selector   Selector
	classifier classify.Classifier
	rng        *rand.Rand
}

// NewEngine creates an Engine over b. The classifier may be nil, in
// which case records missing labels just get the load-time defaults.
// A nil rng falls back to a time-seeded source; tests inject a fixed
// seed for reproducible draws.
func NewEngine(b *bank.Bank, classifier classify.Classifier, rng *rand.Rand) *Engine {
	if b == nil {
		b = bank.New()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		bank:       b,
		pipeline:   NewPipeline(),
		classifier: classifier,
		rng:        rng,
	}
}

// Bank returns the engine's bank.
func (e *Engine) Bank() *bank.Bank {
	return e.bank
}

// RegisterFilter adds a custom pipeline filter keyed by a criteria
// Extra field.
func (e *Engine) RegisterFilter(key string, f CustomFilter) {
	e.pipeline.Register(key, f)
}

// Load classifies records missing topic/difficulty/type labels, then
// replaces the bank pool. Classifier failures propagate unmodified.
// Returns the number of questions loaded.
func (e *Engine) Load(ctx context.Context, qs []bank.Question) (int, error) {
	if e.classifier != nil {
		for i := range qs {
			if qs[i].Topic != "" && qs[i].Difficulty != "" && qs[i].Type != "" {
				continue
			}
			c, err := e.classifier.Classify(ctx, qs[i].Text)
			if err != nil {
				return 0, fmt.Errorf("classify question %q: %w", qs[i].ID, err)
			}
			if qs[i].Topic == "" {
				qs[i].Topic = c.Topic
			}
			if qs[i].Difficulty == "" {
				qs[i].Difficulty = c.Difficulty
			}
			if qs[i].Type == "" {
				qs[i].Type = c.Type
			}
		}
	}
	return e.bank.Load(qs), nil
}

// AvailableUnits returns the sorted units of the loaded pool.
func (e *Engine) AvailableUnits() []string {
	return e.bank.Units()
}

// Statistics summarizes the loaded pool.
func (e *Engine) Statistics() bank.Stats {
	return e.bank.Stats()
}

// Select runs the full criteria path: normalize → filter → score →
// select. An empty result is a valid outcome, reported with a warning
// rather than an error.
func (e *Engine) Select(raw map[string]any) (Result, error) {
	c, warns := criteria.Normalize(raw)
	return e.SelectCriteria(c, warns)
}

// SelectCriteria selects with already-normalized criteria.
func (e *Engine) SelectCriteria(c criteria.Criteria, warns []string) (Result, error) {
	res := Result{Criteria: c, Warnings: warns}

	filtered := e.pipeline.Apply(e.bank.Questions(), c)
	if len(filtered) == 0 {
		res.Warnings = append(res.Warnings, "no questions match the criteria")
		return res, nil
	}

	scored := e.scorer.Score(filtered, c)
	res.Questions = e.selector.Select(scored, c.Count, c.Diversity)
	return res, nil
}

// SelectByUnitsAndMarks restricts the pool to questions whose effective
// unit is in units, then allocates against totalMarks. dist may be nil
// to use the heuristic distribution. Returns *marks.NoCandidatesError
// when the restricted pool is empty — unlike an over-strict criteria
// selection, requesting units that match nothing is a usage error.
func (e *Engine) SelectByUnitsAndMarks(units []string, totalMarks int, dist marks.Distribution) (Result, error) {
	want := map[string]bool{}
	for _, u := range units {
		want[u] = true
	}
	var pool []bank.Question
	for _, q := range e.bank.Questions() {
		if want[q.EffectiveUnit()] {
			pool = append(pool, q)
		}
	}

	alloc, err := marks.Allocate(pool, totalMarks, dist, units, e.rng)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Questions:     alloc.Questions,
		TargetMarks:   alloc.TargetMarks,
		AchievedMarks: alloc.AchievedMarks,
		Drawn:         alloc.Drawn,
		ChoiceOptions: alloc.ChoiceOptions,
		UnitsCovered:  units,
		Warnings:      alloc.Warnings,
	}, nil
}

// Recommend returns up to k loaded questions most similar to the
// reference text, best first. Ties keep pool order.
func (e *Engine) Recommend(reference string, k int) []bank.Question {
	pool := e.bank.Questions()
	scored := make([]Scored, len(pool))
	for i, q := range pool {
		scored[i] = Scored{Question: q, Score: textSimilarity(q.Text, reference)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if k > len(scored) {
		k = len(scored)
	}
	return questions(scored[:k])
}
