package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// ModelDirOptions controls the files WriteModelDir creates.
type ModelDirOptions struct {
	// ID2Label is written to config.json. Nil writes no id2label.
	ID2Label []string

	// NumLabels, when non-zero, is written as num_labels.
	NumLabels int

	// MaxPositionEmbeddings is written as max_position_embeddings.
	// Zero writes 512; a negative value leaves the key out.
	MaxPositionEmbeddings int

	VocabSize      int
	TokenizerVocab int

	// Skip lists file names that should not be created.
	Skip []string
}

// WriteModelDir writes a minimal exported-model layout to a temp dir and
// returns its path. The ONNX file is a placeholder and cannot be executed.
func WriteModelDir(t *testing.T, opts ModelDirOptions) string {
	t.Helper()

	dir := t.TempDir()
	skip := make(map[string]bool, len(opts.Skip))
	for _, name := range opts.Skip {
		skip[name] = true
	}

	config := map[string]any{
		"architectures": []string{"BertForSequenceClassification"},
		"model_type":    "bert",
	}
	switch {
	case opts.MaxPositionEmbeddings == 0:
		config["max_position_embeddings"] = 512
	case opts.MaxPositionEmbeddings > 0:
		config["max_position_embeddings"] = opts.MaxPositionEmbeddings
	}
	if opts.VocabSize > 0 {
		config["vocab_size"] = opts.VocabSize
	}
	if opts.NumLabels > 0 {
		config["num_labels"] = opts.NumLabels
	}
	if opts.ID2Label != nil {
		id2label := make(map[string]string, len(opts.ID2Label))
		for i, name := range opts.ID2Label {
			id2label[strconv.Itoa(i)] = name
		}
		config["id2label"] = id2label
	}

	vocab := make(map[string]int, opts.TokenizerVocab)
	for i := 0; i < opts.TokenizerVocab; i++ {
		vocab["tok"+strconv.Itoa(i)] = i
	}
	tokenizer := map[string]any{
		"version": "1.0",
		"model": map[string]any{
			"type":      "WordPiece",
			"unk_token": "[UNK]",
			"vocab":     vocab,
		},
	}

	writeJSON(t, dir, "config.json", config, skip)
	writeJSON(t, dir, "tokenizer.json", tokenizer, skip)
	if !skip["model.onnx"] {
		if err := os.WriteFile(filepath.Join(dir, "model.onnx"), []byte("onnx"), 0644); err != nil {
			t.Fatalf("Failed to write model.onnx: %v", err)
		}
	}

	return dir
}

func writeJSON(t *testing.T, dir, name string, v any, skip map[string]bool) {
	t.Helper()
	if skip[name] {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}
