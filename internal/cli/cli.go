// Package cli implements the category-predict command line surface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	category "github.com/FrenchMajesty/diary-category"
)

// Usage is printed when the arguments are wrong
const Usage = "usage: category-predict <text>"

// Exit statuses
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ErrUsage is returned when the invocation does not carry exactly one argument
var ErrUsage = errors.New("expected exactly one argument: the text to classify")

// Predictor is the part of category.Classifier the command needs
type Predictor interface {
	Predict(ctx context.Context, text string) (*category.Result, error)
	Close() error
}

// Factory loads a Predictor. It is only called once the arguments are valid.
type Factory func(ctx context.Context) (Predictor, error)

// ParseArgs returns the text to classify from the positional arguments
func ParseArgs(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w (got %d)", ErrUsage, len(args))
	}
	return args[0], nil
}

// Run classifies the single text in args and writes its label to stdout.
// Nothing is written to stdout unless the prediction succeeds.
func Run(ctx context.Context, args []string, stdout io.Writer, newPredictor Factory) error {
	text, err := ParseArgs(args)
	if err != nil {
		return err
	}

	predictor, err := newPredictor(ctx)
	if err != nil {
		return fmt.Errorf("failed to load classifier: %w", err)
	}

	result, err := predictor.Predict(ctx, text)
	closeErr := predictor.Close()
	if err != nil {
		return fmt.Errorf("failed to classify text: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to release classifier: %w", closeErr)
	}

	if _, err := fmt.Fprintln(stdout, result.Label); err != nil {
		return fmt.Errorf("failed to write label: %w", err)
	}
	return nil
}

// ExitCode maps Run's error to a process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}
