// Package modeldir validates an exported classification model directory and
// reads the metadata needed before the model itself is loaded.
package modeldir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/gjson"
)

const (
	// ConfigFile holds the model configuration, including id2label.
	ConfigFile = "config.json"

	// TokenizerFile holds the serialized fast tokenizer.
	TokenizerFile = "tokenizer.json"

	// DefaultONNXFile is the exported graph name used when none is given.
	DefaultONNXFile = "model.onnx"

	// MaxSequenceLength is the longest token sequence fed to the model.
	// Inputs are truncated to it; models whose position table is longer are rejected
	// so the limit the tokenizer applies and the one the model declares never differ.
	MaxSequenceLength = 512
)

var (
	ErrMissingDirectory = errors.New("model directory not found")
	ErrMissingFile      = errors.New("model file not found")
	ErrCorruptArtifact  = errors.New("corrupt model artifact")
	ErrArtifactMismatch = errors.New("model and tokenizer do not match")
)

// Metadata describes a model directory.
type Metadata struct {
	Dir      string
	ONNXFile string

	// Architecture is the first entry of "architectures", e.g. BertForSequenceClassification.
	Architecture string

	// NumLabels is the classifier's output cardinality.
	NumLabels int

	// ID2Label is the model's own index to name mapping. Never empty after Inspect.
	ID2Label map[int]string

	// MaxPositionEmbeddings bounds the tokenized sequence length, at most MaxSequenceLength.
	MaxPositionEmbeddings int

	// VocabSize is the embedding table size declared by the model. 0 if unknown.
	VocabSize int

	// TokenizerVocabSize is the number of entries in the tokenizer vocabulary. 0 if unknown.
	TokenizerVocabSize int
}

// Inspect checks that dir holds a loadable model and reads its metadata.
// It does not load weights.
func Inspect(dir string, onnxFile string) (*Metadata, error) {
	if onnxFile == "" {
		onnxFile = DefaultONNXFile
	}

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingDirectory, dir)
		}
		return nil, fmt.Errorf("failed to stat model directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrMissingDirectory, dir)
	}

	var missing []error
	for _, name := range []string{ConfigFile, TokenizerFile, onnxFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, fmt.Errorf("%w: %s", ErrMissingFile, filepath.Join(dir, name)))
		}
	}
	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}

	meta := &Metadata{
		Dir:      dir,
		ONNXFile: onnxFile,
		ID2Label: make(map[int]string),
	}

	config, err := readJSON(filepath.Join(dir, ConfigFile))
	if err != nil {
		return nil, err
	}
	if err := meta.readConfig(config); err != nil {
		return nil, err
	}

	tokenizer, err := readJSON(filepath.Join(dir, TokenizerFile))
	if err != nil {
		return nil, err
	}
	meta.readTokenizer(tokenizer)

	if meta.VocabSize > 0 && meta.TokenizerVocabSize > meta.VocabSize {
		return nil, fmt.Errorf("%w: tokenizer has %d tokens but model vocab_size is %d",
			ErrArtifactMismatch, meta.TokenizerVocabSize, meta.VocabSize)
	}

	return meta, nil
}

func readJSON(path string) (gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("%w: %s is not valid JSON", ErrCorruptArtifact, path)
	}
	return gjson.ParseBytes(data), nil
}

func (m *Metadata) readConfig(config gjson.Result) error {
	m.Architecture = config.Get("architectures.0").String()
	m.VocabSize = int(config.Get("vocab_size").Int())

	var parseErr error
	config.Get("id2label").ForEach(func(key, value gjson.Result) bool {
		idx, err := strconv.Atoi(key.String())
		if err != nil || idx < 0 {
			parseErr = fmt.Errorf("%w: id2label key %q is not a class index", ErrCorruptArtifact, key.String())
			return false
		}
		m.ID2Label[idx] = value.String()
		return true
	})
	if parseErr != nil {
		return parseErr
	}
	if len(m.ID2Label) == 0 {
		return fmt.Errorf("%w: %s has no id2label", ErrCorruptArtifact, ConfigFile)
	}

	m.NumLabels = len(m.ID2Label)
	if n := config.Get("num_labels"); n.Exists() {
		if int(n.Int()) != m.NumLabels {
			return fmt.Errorf("%w: num_labels is %d but id2label has %d entries",
				ErrArtifactMismatch, n.Int(), m.NumLabels)
		}
	}

	positions := config.Get("max_position_embeddings")
	if !positions.Exists() || positions.Int() <= 0 {
		return fmt.Errorf("%w: %s has no positive max_position_embeddings", ErrCorruptArtifact, ConfigFile)
	}
	if positions.Int() > MaxSequenceLength {
		return fmt.Errorf("%w: max_position_embeddings is %d, inputs are truncated to %d tokens",
			ErrArtifactMismatch, positions.Int(), MaxSequenceLength)
	}
	m.MaxPositionEmbeddings = int(positions.Int())

	return nil
}

func (m *Metadata) readTokenizer(tokenizer gjson.Result) {
	vocab := tokenizer.Get("model.vocab")
	if !vocab.Exists() {
		return
	}
	count := 0
	vocab.ForEach(func(_, _ gjson.Result) bool {
		count++
		return true
	})
	m.TokenizerVocabSize = count
}
