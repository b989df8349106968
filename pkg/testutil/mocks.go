package testutil

import (
	"context"
	"sync"
)

// MockScorer is a mock implementation of Scorer for testing
type MockScorer struct {
	ScoresFunc func(ctx context.Context, text string) ([]float32, error)
	CloseFunc  func() error

	mu         sync.Mutex
	CallCount  int
	CloseCount int
	LastText   string
}

// Scores returns ScoresFunc's result, or a deterministic vector derived from the text length
func (m *MockScorer) Scores(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastText = text
	m.mu.Unlock()

	if m.ScoresFunc != nil {
		return m.ScoresFunc(ctx, text)
	}

	// Default: five classes, the winner chosen by text length
	scores := make([]float32, 5)
	scores[len(text)%len(scores)] = 1
	return scores, nil
}

func (m *MockScorer) Close() error {
	m.mu.Lock()
	m.CloseCount++
	m.mu.Unlock()

	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// FixedScores returns a ScoresFunc that always yields scores
func FixedScores(scores ...float32) func(ctx context.Context, text string) ([]float32, error) {
	return func(ctx context.Context, text string) ([]float32, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := make([]float32, len(scores))
		copy(out, scores)
		return out, nil
	}
}
