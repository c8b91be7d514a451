package trainer

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate and LoadConfig.
var ErrInvalidConfig = errors.New("invalid config")

// Optimizer names accepted in Config.Optimizer.
const (
	OptimizerSGD  = "sgd"
	OptimizerAdam = "adam"
)

// Config holds every knob of a training run.
//
// A YAML file only needs to name the fields it changes:
//
//	hidden: [32, 32]
//	epochs: 200
//	optimizer: adam
//	lr_start: 0.05
type Config struct {
	Samples    int     `yaml:"samples"`    // Number of moons samples to generate
	Noise      float64 `yaml:"noise"`      // Moons noise standard deviation
	Seed       int64   `yaml:"seed"`       // Seed for data, initialization and batching
	Dataset    string  `yaml:"dataset"`    // CSV path; empty generates moons
	Hidden     []int   `yaml:"hidden"`     // Hidden layer sizes
	Epochs     int     `yaml:"epochs"`     // Number of optimization steps
	BatchSize  int     `yaml:"batch_size"` // Samples per step, 0 = full batch
	LRStart    float64 `yaml:"lr_start"`   // Learning rate at step 0
	LREnd      float64 `yaml:"lr_end"`     // Learning rate reached at the last step
	Alpha      float64 `yaml:"alpha"`      // L2 regularization strength
	Optimizer  string  `yaml:"optimizer"`  // "sgd" or "adam"
	Momentum   float64 `yaml:"momentum"`   // SGD momentum
	LogEvery   int     `yaml:"log_every"`  // Log every N steps, 0 = never
	Checkpoint string  `yaml:"checkpoint"` // Output path; empty disables saving
}

// DefaultConfig returns the configuration of the classic two-moons demo:
// a 2-16-16-1 network trained for 100 full-batch SGD steps with the
// learning rate decaying linearly from 1.0 to 0.1.
func DefaultConfig() Config {
	return Config{
		Samples:   100,
		Noise:     0.1,
		Seed:      1337,
		Hidden:    []int{16, 16},
		Epochs:    100,
		LRStart:   1.0,
		LREnd:     0.1,
		Alpha:     1e-4,
		Optimizer: OptimizerSGD,
		LogEvery:  10,
	}
}

// LoadConfig reads a YAML file and overlays it onto DefaultConfig.
func LoadConfig(path string) (Config, error) {
	//nolint:gosec // G304: config path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config")
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML onto DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent field.
func (c Config) Validate() error {
	switch {
	case c.Dataset == "" && c.Samples < 2:
		return errors.WithMessagef(ErrInvalidConfig, "samples must be at least 2, got %d", c.Samples)
	case c.Noise < 0:
		return errors.WithMessagef(ErrInvalidConfig, "noise must be non-negative, got %g", c.Noise)
	case c.Epochs < 1:
		return errors.WithMessagef(ErrInvalidConfig, "epochs must be positive, got %d", c.Epochs)
	case c.BatchSize < 0:
		return errors.WithMessagef(ErrInvalidConfig, "batch_size must be non-negative, got %d", c.BatchSize)
	case c.LRStart <= 0 || c.LREnd <= 0:
		return errors.WithMessagef(ErrInvalidConfig, "learning rates must be positive, got %g and %g", c.LRStart, c.LREnd)
	case c.Alpha < 0:
		return errors.WithMessagef(ErrInvalidConfig, "alpha must be non-negative, got %g", c.Alpha)
	case c.Optimizer != OptimizerSGD && c.Optimizer != OptimizerAdam:
		return errors.WithMessagef(ErrInvalidConfig, "unknown optimizer %q", c.Optimizer)
	case c.Momentum < 0 || c.Momentum >= 1:
		return errors.WithMessagef(ErrInvalidConfig, "momentum must be in [0, 1), got %g", c.Momentum)
	case c.LogEvery < 0:
		return errors.WithMessagef(ErrInvalidConfig, "log_every must be non-negative, got %d", c.LogEvery)
	}
	for _, n := range c.Hidden {
		if n < 1 {
			return errors.WithMessagef(ErrInvalidConfig, "hidden layer sizes must be positive, got %v", c.Hidden)
		}
	}
	return nil
}

// Layers returns the MLP layer sizes: the hidden sizes plus one output.
func (c Config) Layers() []int {
	return append(append([]int(nil), c.Hidden...), 1)
}
