package classify

import (
	"context"
	"sync"
)

// Mock is a deterministic Classifier for tests. It returns canned
// classifications keyed by question text (or the fallback when no entry
// exists) and records every call.
type Mock struct {
	mu      sync.Mutex
	byText  map[string]Classification
	err     error
	Calls   []string
}

// NewMock creates a Mock with the given canned classifications.
func NewMock(byText map[string]Classification) *Mock {
	return &Mock{byText: byText}
}

// FailWith makes every Classify call return err.
func (m *Mock) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Classify returns the canned classification for text, or the fallback.
func (m *Mock) Classify(_ context.Context, text string) (Classification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, text)
	if m.err != nil {
		return Classification{}, m.err
	}
	if c, ok := m.byText[text]; ok {
		return c, nil
	}
	return fallback(), nil
}

// CallCount returns the number of Classify calls made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
