// Command category-predict prints the diary category of a single text.
//
//	category-predict "오늘 가족들과 저녁을 먹었다"
//	family
//
// The model is read from ./diary_category_model unless CATEGORY_MODEL_DIR says otherwise.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	category "github.com/FrenchMajesty/diary-category"
	"github.com/FrenchMajesty/diary-category/internal/cli"
	"github.com/FrenchMajesty/diary-category/internal/logger"
)

func main() {
	err := cli.Run(context.Background(), os.Args[1:], os.Stdout, newClassifier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, cli.Usage)
		}
	}
	os.Exit(cli.ExitCode(err))
}

func newClassifier(ctx context.Context) (cli.Predictor, error) {
	cfg, err := category.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Log, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	cfg.Logger = log

	clf, err := category.NewClassifier(cfg)
	if err != nil {
		return nil, err
	}
	return clf, nil
}
