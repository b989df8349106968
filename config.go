package category

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/FrenchMajesty/diary-category/adapters/onnx"
	"github.com/FrenchMajesty/diary-category/internal/logger"
	"github.com/FrenchMajesty/diary-category/pkg/labels"
	"github.com/FrenchMajesty/diary-category/pkg/modeldir"
)

const (
	// DefaultModelDir is where the exported diary category model is expected
	DefaultModelDir = "./diary_category_model"

	// DefaultBackend runs inference in pure Go
	DefaultBackend = onnx.BackendGo

	// DefaultLogLevel keeps stderr quiet unless something goes wrong
	DefaultLogLevel = "warn"

	// DefaultLogFormat is human readable
	DefaultLogFormat = "console"
)

// Environment variables read by LoadConfig
const (
	EnvConfigFile = "CATEGORY_CONFIG_FILE"
	EnvModelDir   = "CATEGORY_MODEL_DIR"
	EnvONNXFile   = "CATEGORY_ONNX_FILE"
	EnvBackend    = "CATEGORY_BACKEND"
	EnvORTLibrary = "CATEGORY_ORT_LIBRARY"
	EnvLogLevel   = "CATEGORY_LOG_LEVEL"
	EnvLogFormat  = "CATEGORY_LOG_FORMAT"
)

// Config holds configuration for the Classifier
type Config struct {
	// ModelDir contains config.json, tokenizer.json and the ONNX graph.
	ModelDir string `yaml:"model_dir"`

	// ONNXFile is the graph file name inside ModelDir. If empty, uses model.onnx.
	ONNXFile string `yaml:"onnx_file"`

	// Backend selects the hugot engine: "go" or "ort".
	Backend    string `yaml:"backend"`
	ORTLibrary string `yaml:"ort_library"`

	Log logger.Config `yaml:"log"`

	// Scorer runs inference. If nil, a hugot pipeline over ModelDir is loaded.
	Scorer Scorer `yaml:"-"`

	// Labels maps class indices to names. If nil, the model's id2label is used
	// when it carries real names, and labels.Default() otherwise.
	Labels *labels.Table `yaml:"-"`

	// Logger receives diagnostics. If nil, logging is discarded.
	Logger *zap.Logger `yaml:"-"`
}

// applyDefaults fills in default values for unset config fields
func (c *Config) applyDefaults() {
	if c.ModelDir == "" {
		c.ModelDir = DefaultModelDir
	}

	if c.ONNXFile == "" {
		c.ONNXFile = modeldir.DefaultONNXFile
	}

	if c.Backend == "" {
		c.Backend = DefaultBackend
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// validate rejects settings that would only fail later, during the model load
func (c *Config) validate() error {
	switch c.Backend {
	case onnx.BackendGo, onnx.BackendORT:
	default:
		return fmt.Errorf("%w: backend must be %q or %q, got %q", ErrInvalidConfig, onnx.BackendGo, onnx.BackendORT, c.Backend)
	}
	return nil
}

// LoadConfig builds a Config from an optional .env file, an optional YAML file
// named by CATEGORY_CONFIG_FILE and the environment, in increasing precedence.
func LoadConfig() (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env file: %w", err)
	}

	if path := os.Getenv(EnvConfigFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
		}
	}

	loadEnvVar(&cfg.ModelDir, EnvModelDir)
	loadEnvVar(&cfg.ONNXFile, EnvONNXFile)
	loadEnvVar(&cfg.Backend, EnvBackend)
	loadEnvVar(&cfg.ORTLibrary, EnvORTLibrary)
	loadEnvVar(&cfg.Log.Level, EnvLogLevel)
	loadEnvVar(&cfg.Log.Format, EnvLogFormat)

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// loadEnvVar overrides target when envKey is set
func loadEnvVar(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && value != "" {
		*target = value
	}
}
