package cli_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	category "github.com/FrenchMajesty/diary-category"
	"github.com/FrenchMajesty/diary-category/internal/cli"
	"github.com/FrenchMajesty/diary-category/pkg/testutil"
)

// countingFactory builds classifiers over scorer and counts how often it was asked to
type countingFactory struct {
	scorer *testutil.MockScorer
	err    error
	calls  int
}

func (f *countingFactory) New(ctx context.Context) (cli.Predictor, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return category.NewClassifier(category.Config{Scorer: f.scorer})
}

func TestRun_NoArguments(t *testing.T) {
	factory := &countingFactory{scorer: &testutil.MockScorer{}}
	var stdout bytes.Buffer

	err := cli.Run(context.Background(), nil, &stdout, factory.New)

	assert.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	assert.Equal(t, 0, factory.calls, "model must not be loaded without an argument")
	assert.Empty(t, stdout.String())
}

func TestRun_TooManyArguments(t *testing.T) {
	factory := &countingFactory{scorer: &testutil.MockScorer{}}
	var stdout bytes.Buffer

	err := cli.Run(context.Background(), []string{"오늘", "가족들과"}, &stdout, factory.New)

	assert.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, 0, factory.calls)
	assert.Empty(t, stdout.String())
}

func TestRun_PrintsLabel(t *testing.T) {
	scorer := &testutil.MockScorer{ScoresFunc: testutil.FixedScores(5, 1, 1, 1, 1)}
	factory := &countingFactory{scorer: scorer}
	var stdout bytes.Buffer

	err := cli.Run(context.Background(), []string{"오늘 가족들과 저녁을 먹었다"}, &stdout, factory.New)

	require.NoError(t, err)
	assert.Equal(t, cli.ExitOK, cli.ExitCode(err))
	assert.Equal(t, "family\n", stdout.String())
	assert.Equal(t, 1, scorer.CloseCount)
}

func TestRun_EmptyStringArgument(t *testing.T) {
	factory := &countingFactory{scorer: &testutil.MockScorer{}}
	var stdout bytes.Buffer

	err := cli.Run(context.Background(), []string{""}, &stdout, factory.New)

	require.NoError(t, err)
	assert.Equal(t, 1, factory.calls)
	assert.NotEmpty(t, stdout.String())
}

func TestRun_RepeatedRunsAreByteIdentical(t *testing.T) {
	args := []string{"주말에 남자친구랑 카페 갔다"}

	var first, second bytes.Buffer
	require.NoError(t, cli.Run(context.Background(), args, &first, (&countingFactory{scorer: &testutil.MockScorer{}}).New))
	require.NoError(t, cli.Run(context.Background(), args, &second, (&countingFactory{scorer: &testutil.MockScorer{}}).New))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestRun_LoadFailure(t *testing.T) {
	loadErr := errors.New("model directory not found")
	factory := &countingFactory{err: loadErr}
	var stdout bytes.Buffer

	err := cli.Run(context.Background(), []string{"text"}, &stdout, factory.New)

	assert.ErrorIs(t, err, loadErr)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
	assert.Empty(t, stdout.String())
}

func TestRun_PredictFailureWritesNothing(t *testing.T) {
	scorer := &testutil.MockScorer{ScoresFunc: testutil.FixedScores(0, 0, 0, 0, 0, 0, 1)}
	var stdout bytes.Buffer

	err := cli.Run(context.Background(), []string{"text"}, &stdout, (&countingFactory{scorer: scorer}).New)

	assert.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
	assert.Empty(t, stdout.String())
	assert.Equal(t, 1, scorer.CloseCount)
}

func TestRun_CloseFailureWritesNothing(t *testing.T) {
	scorer := &testutil.MockScorer{
		CloseFunc: func() error { return errors.New("session busy") },
	}
	var stdout bytes.Buffer

	err := cli.Run(context.Background(), []string{"text"}, &stdout, (&countingFactory{scorer: scorer}).New)

	assert.Error(t, err)
	assert.Empty(t, stdout.String())
}

func TestParseArgs(t *testing.T) {
	text, err := cli.ParseArgs([]string{"떡볶이 맛집"})
	require.NoError(t, err)
	assert.Equal(t, "떡볶이 맛집", text)

	_, err = cli.ParseArgs([]string{})
	assert.ErrorIs(t, err, cli.ErrUsage)
}
