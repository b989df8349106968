package category

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FrenchMajesty/diary-category/adapters/onnx"
	"github.com/FrenchMajesty/diary-category/pkg/labels"
	"github.com/FrenchMajesty/diary-category/pkg/logits"
	"github.com/FrenchMajesty/diary-category/pkg/modeldir"
)

// Classifier predicts a diary category for a text with a locally loaded model.
// It is loaded once and read-only afterwards.
type Classifier struct {
	scorer Scorer
	labels *labels.Table
	log    *zap.Logger

	closeOnce sync.Once
	closing   bool
	closeLock sync.RWMutex
}

// NewClassifier creates a new Classifier with the given configuration
func NewClassifier(cfg Config) (*Classifier, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("run_id", uuid.NewString()))

	// Injected scorer: no model directory is involved
	if cfg.Scorer != nil {
		table := cfg.Labels
		if table == nil {
			table = labels.Default()
		}
		return &Classifier{scorer: cfg.Scorer, labels: table, log: log}, nil
	}

	meta, err := modeldir.Inspect(cfg.ModelDir, cfg.ONNXFile)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect model directory: %w", err)
	}

	table, err := labelsForModel(meta, cfg.Labels, log)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	scorer, err := onnx.NewScorer(meta, onnx.Options{
		Backend:    cfg.Backend,
		ORTLibrary: cfg.ORTLibrary,
		Logger:     log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	log.Debug("model loaded",
		zap.String("model_dir", meta.Dir),
		zap.String("architecture", meta.Architecture),
		zap.String("backend", cfg.Backend),
		zap.Int("max_position_embeddings", meta.MaxPositionEmbeddings),
		zap.Duration("load_time", time.Since(start)),
	)

	return &Classifier{scorer: scorer, labels: table, log: log}, nil
}

// labelsForModel chooses the label table and checks it against the model's output cardinality.
// The model may order the expected names differently but may not rename them.
func labelsForModel(meta *modeldir.Metadata, override *labels.Table, log *zap.Logger) (*labels.Table, error) {
	expected := override
	if expected == nil {
		expected = labels.Default()
	}

	table, source, err := labels.Resolve(meta.ID2Label, expected)
	if errors.Is(err, labels.ErrUnexpectedLabel) {
		return nil, fmt.Errorf("%w: %w", ErrLabelMismatch, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read model labels: %w", err)
	}
	if source == labels.SourceDefault && override != nil {
		source = labels.SourceOverride
	}

	if meta.NumLabels > 0 && meta.NumLabels != table.Len() {
		return nil, fmt.Errorf("%w: model has %d labels, table has %d (%v)",
			ErrLabelMismatch, meta.NumLabels, table.Len(), table.Names())
	}

	log.Debug("label table selected",
		zap.String("source", string(source)),
		zap.Strings("labels", table.Names()),
	)
	return table, nil
}

// Predict classifies text. The empty string is a valid input.
func (c *Classifier) Predict(ctx context.Context, text string) (*Result, error) {
	c.closeLock.RLock()
	defer c.closeLock.RUnlock()
	if c.closing {
		return nil, ErrClosed
	}

	start := time.Now()

	scores, err := c.scorer.Scores(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to run inference: %w", err)
	}

	idx, err := logits.ArgMax(scores)
	if err != nil {
		return nil, fmt.Errorf("failed to select class: %w", err)
	}

	label, err := c.labels.Lookup(idx)
	if err != nil {
		return nil, fmt.Errorf("failed to map class index: %w", err)
	}

	result := &Result{
		Label:   label,
		Index:   idx,
		Score:   scores[idx],
		Latency: time.Since(start),
	}

	c.log.Debug("prediction",
		zap.Int("text_runes", len([]rune(text))),
		zap.Int("index", result.Index),
		zap.String("label", result.Label),
		zap.Float32("score", result.Score),
		zap.Duration("latency", result.Latency),
	)

	return result, nil
}

// Labels returns the label table in use
func (c *Classifier) Labels() *labels.Table {
	return c.labels
}

// Close releases the model. It's safe to call Close multiple times.
func (c *Classifier) Close() error {
	var closeErr error

	c.closeOnce.Do(func() {
		c.closeLock.Lock()
		c.closing = true
		c.closeLock.Unlock()

		closeErr = c.scorer.Close()
	})

	return closeErr
}
