// Package logits holds helpers over a model's per-class output scores.
package logits

import (
	"errors"
	"math"
)

var (
	// ErrEmpty is returned for a score vector with no entries.
	ErrEmpty = errors.New("empty score vector")

	// ErrNoFinite is returned when every score is NaN.
	ErrNoFinite = errors.New("score vector has no comparable values")
)

// ArgMax returns the index of the largest score. Ties resolve to the lowest
// index and NaN entries are never selected.
func ArgMax(scores []float32) (int, error) {
	if len(scores) == 0 {
		return 0, ErrEmpty
	}

	best := -1
	for i, s := range scores {
		if math.IsNaN(float64(s)) {
			continue
		}
		if best < 0 || s > scores[best] {
			best = i
		}
	}
	if best < 0 {
		return 0, ErrNoFinite
	}

	return best, nil
}
