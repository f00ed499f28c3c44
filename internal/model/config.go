package model

import (
	"runtime"
	"time"
)

// Config holds all slicereport settings.
type Config struct {
	Labels      LabelsConfig      `yaml:"labels" mapstructure:"labels"`
	Report      ReportConfig      `yaml:"report" mapstructure:"report"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// LabelsConfig controls how numeric labels are rendered.
type LabelsConfig struct {
	// Map is a mapping string like "0:entailment,1:neutral,2:contradiction".
	Map string `yaml:"map" mapstructure:"map"`
}

// ReportConfig controls which optional report sections are produced.
type ReportConfig struct {
	ShowExamples     bool `yaml:"show_examples" mapstructure:"show_examples"`
	ExamplesPerSlice int  `yaml:"examples_per_slice" mapstructure:"examples_per_slice"`
	ShowConfusions   bool `yaml:"show_confusions" mapstructure:"show_confusions"`
	TopConfusions    int  `yaml:"top_confusions" mapstructure:"top_confusions"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls token-set memoization.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls report output behavior.
type OutputConfig struct {
	Verbose   bool   `yaml:"verbose" mapstructure:"verbose"`
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// DefaultConfig returns the built-in defaults. The label map default matches
// the common SNLI/MNLI convention.
func DefaultConfig() *Config {
	return &Config{
		Labels: LabelsConfig{
			Map: "0:entailment,1:neutral,2:contradiction",
		},
		Report: ReportConfig{
			ShowExamples:     false,
			ExamplesPerSlice: 3,
			ShowConfusions:   false,
			TopConfusions:    10,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Output: OutputConfig{
			Verbose:   false,
			OutputDir: "./slicereport-out",
		},
	}
}
