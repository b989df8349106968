package category

import "context"

// Scorer tokenizes text and runs the model, returning one score per class in
// class-index order
type Scorer interface {
	Scores(ctx context.Context, text string) ([]float32, error)
	Close() error
}
