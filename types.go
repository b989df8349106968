package category

import "time"

// Result represents the classification result
type Result struct {
	// Label is the category assigned to the text
	Label string

	// Index is the class index the model scored highest
	Index int

	// Score is the model's score for Index
	Score float32

	// Latency is the time spent in tokenization and the forward pass
	Latency time.Duration
}
