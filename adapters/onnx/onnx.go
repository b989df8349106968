// Package onnx runs an exported sequence-classification model through hugot.
package onnx

import (
	"context"
	"errors"
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"go.uber.org/zap"

	"github.com/FrenchMajesty/diary-category/pkg/modeldir"
)

const (
	BackendGo  = "go"
	BackendORT = "ort"

	pipelineName = "diary-category"
)

var (
	ErrUnknownBackend     = errors.New("unknown inference backend")
	ErrBackendUnavailable = errors.New("inference backend not compiled in")
)

// Options selects the hugot execution backend
type Options struct {
	// Backend is BackendGo or BackendORT. Empty means BackendGo.
	Backend string

	// ORTLibrary is the onnxruntime shared library path. Empty uses hugot's default.
	ORTLibrary string

	Logger *zap.Logger
}

// Scorer returns per-class scores for a single text
type Scorer struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	id2label map[int]string
}

// NewScorer loads the tokenizer and model described by meta. The model runs
// in inference mode; hugot truncates tokenized input to the model's
// position limit.
func NewScorer(meta *modeldir.Metadata, opts Options) (*Scorer, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	session, err := newSession(opts, log)
	if err != nil {
		return nil, err
	}

	config := hugot.TextClassificationConfig{
		ModelPath:    meta.Dir,
		Name:         pipelineName,
		OnnxFilename: meta.ONNXFile,
		Options: []hugot.TextClassificationOption{
			pipelines.WithSoftmax(),
			pipelines.WithMultiLabel(),
		},
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			log.Warn("failed to destroy hugot session", zap.Error(destroyErr))
		}
		return nil, fmt.Errorf("failed to load model from %s: %w", meta.Dir, err)
	}

	return &Scorer{
		session:  session,
		pipeline: pipeline,
		id2label: meta.ID2Label,
	}, nil
}

// Scores runs one forward pass. The result holds one softmax score per class
// in class-index order, so its arg-max is the arg-max of the logits.
func (s *Scorer) Scores(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := s.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to run text classification pipeline: %w", err)
	}

	return scoresFromOutput(output, s.id2label)
}

// Close releases the hugot session
func (s *Scorer) Close() error {
	if err := s.session.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy hugot session: %w", err)
	}
	return nil
}

// scoresFromOutput flattens the pipeline output into class-index order.
// Each class must carry the label id2label gives its position, so a
// reordered output is never read as index order.
func scoresFromOutput(output *pipelines.TextClassificationOutput, id2label map[int]string) ([]float32, error) {
	if output == nil || len(output.ClassificationOutputs) != 1 {
		return nil, fmt.Errorf("expected one classification result")
	}

	classes := output.ClassificationOutputs[0]
	if len(classes) == 0 {
		return nil, fmt.Errorf("classification result has no classes")
	}
	if len(classes) != len(id2label) {
		return nil, fmt.Errorf("classification result has %d classes, model declares %d", len(classes), len(id2label))
	}

	scores := make([]float32, len(classes))
	for i, class := range classes {
		if class.Label != id2label[i] {
			return nil, fmt.Errorf("classification result %d is %q, expected %q", i, class.Label, id2label[i])
		}
		scores[i] = class.Score
	}
	return scores, nil
}
