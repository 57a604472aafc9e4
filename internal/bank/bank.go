package bank

import (
	"sort"
	"sync"
)

// Bank holds the loaded question pool. Load replaces the pool wholesale
// (atomic slice swap under a mutex); individual questions are never
// mutated after load, so snapshots handed out by Questions are safe to
// read concurrently with a reload.
type Bank struct {
	mu        sync.RWMutex
	questions []Question
}

// New creates an empty Bank.
func New() *Bank {
	return &Bank{}
}

// Load replaces the pool with qs. Records are normalized (defaults,
// casing, generated IDs) and records with empty text are dropped.
// Returns the number of questions actually loaded.
func (b *Bank) Load(qs []Question) int {
	pool := make([]Question, 0, len(qs))
	for _, q := range qs {
		q.Normalize()
		if q.Text == "" {
			continue
		}
		pool = append(pool, q)
	}
	b.mu.Lock()
	b.questions = pool
	b.mu.Unlock()
	return len(pool)
}

// Questions returns the current pool snapshot. Callers must not mutate
// the returned slice elements.
func (b *Bank) Questions() []Question {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.questions
}

// Len returns the number of loaded questions.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions)
}

// Units returns the sorted set of available units, falling back to the
// topic for questions without an explicit unit.
func (b *Bank) Units() []string {
	seen := map[string]bool{}
	var units []string
	for _, q := range b.Questions() {
		u := q.EffectiveUnit()
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		units = append(units, u)
	}
	sort.Strings(units)
	return units
}
