package engine

import (
	"fmt"
	"runtime"

	"github.com/kelseyhightower/envconfig"

	"github.com/wildfunctions/symdiff/pkg/check"
)

// EnvPrefix prefixes every environment variable LoadConfig reads.
const EnvPrefix = "SYMDIFF"

// Config holds all parameters for a verification run. Every field can be
// set from the environment, e.g. SYMDIFF_SAMPLES=500.
type Config struct {
	Pool     string `envconfig:"POOL" json:"pool" yaml:"pool"`
	Samples  int    `envconfig:"SAMPLES" json:"samples" yaml:"samples"`
	MaxDepth int    `envconfig:"MAX_DEPTH" json:"max_depth" yaml:"max_depth"`
	Order    int    `envconfig:"ORDER" json:"order" yaml:"order"`
	Seed     int64  `envconfig:"SEED" json:"seed" yaml:"seed"`
	Workers  int    `envconfig:"WORKERS" json:"workers" yaml:"workers"`
	Format   string `envconfig:"FORMAT" json:"format" yaml:"format"` // "text", "json", "yaml" or "latex"
	Verbose  bool   `envconfig:"VERBOSE" json:"verbose" yaml:"verbose"`
	// Shrink reduces each failing expression before it is reported.
	Shrink    bool    `envconfig:"SHRINK" json:"shrink" yaml:"shrink"`
	Step      float64 `envconfig:"FD_STEP" json:"fd_step" yaml:"fd_step"`
	Tolerance float64 `envconfig:"TOLERANCE" json:"tolerance" yaml:"tolerance"`
	LogLevel  string  `envconfig:"LOG_LEVEL" json:"-" yaml:"-"`
	LogDev    bool    `envconfig:"LOG_DEV" json:"-" yaml:"-"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	s := check.DefaultSettings()
	return Config{
		Pool:      "elementary",
		Samples:   200,
		MaxDepth:  4,
		Order:     1,
		Seed:      0, // 0 = random
		Workers:   runtime.NumCPU(),
		Format:    "text",
		Verbose:   false,
		Shrink:    true,
		Step:      s.Step,
		Tolerance: s.RelTol,
		LogLevel:  "info",
	}
}

// LoadConfig returns DefaultConfig overridden by SYMDIFF_* environment
// variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// CheckSettings derives the check settings for this run.
func (c Config) CheckSettings() check.Settings {
	s := check.DefaultSettings()
	if c.Step > 0 {
		s.Step = c.Step
	}
	if c.Tolerance > 0 {
		s.RelTol = c.Tolerance
	}
	return s
}
