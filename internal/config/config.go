// Package config holds the file-based configuration for netsurvey.
// Flag and environment binding is handled by the CLI layer; this
// package owns defaults, YAML parsing, and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/netsurvey/netsurvey/internal/ollama"
)

// Config represents the complete netsurvey configuration.
type Config struct {
	// Sampler configuration
	Sampler SamplerConfig `yaml:"sampler" json:"sampler"`

	// Analyze (scan + AI report) configuration
	Analyze AnalyzeConfig `yaml:"analyze" json:"analyze"`

	// URL checker configuration
	Checker CheckerConfig `yaml:"checker" json:"checker"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SamplerConfig holds IP sampler settings.
type SamplerConfig struct {
	// Upper bound on the cumulative host pool size. Ranges whose host
	// count alone exceeds this are skipped with a warning.
	MaxPoolSize int `yaml:"max_pool_size" json:"max_pool_size" validate:"gt=0"`
}

// AnalyzeConfig holds scan orchestration settings.
type AnalyzeConfig struct {
	// Targets file, one scan target per line
	TargetsFile string `yaml:"targets_file" json:"targets_file" validate:"required"`

	// Directory reports are written to
	OutputDir string `yaml:"output_dir" json:"output_dir" validate:"required"`

	// Per-target scan timeout
	ScanTimeout time.Duration `yaml:"scan_timeout" json:"scan_timeout" validate:"gt=0"`

	// Ollama service configuration
	Ollama ollama.Config `yaml:"ollama" json:"ollama"`
}

// CheckerConfig holds URL reachability checker settings.
type CheckerConfig struct {
	// Input CSV, first column is the URL
	InputFile string `yaml:"input_file" json:"input_file" validate:"required"`

	// Output CSV report
	OutputFile string `yaml:"output_file" json:"output_file" validate:"required"`

	// Number of concurrent check workers
	Workers int `yaml:"workers" json:"workers" validate:"gt=0,lte=256"`

	// HTTP request timeout per URL
	HTTPTimeout time.Duration `yaml:"http_timeout" json:"http_timeout" validate:"gt=0"`

	// Ping probe timeout per host
	PingTimeout time.Duration `yaml:"ping_timeout" json:"ping_timeout" validate:"gt=0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`

	// Log format (text, json)
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`

	// Log output (stdout, stderr, file path)
	Output string `yaml:"output" json:"output" validate:"required"`
}

// Default configuration values.
const (
	defaultMaxPoolSize = 1 << 22 // about a /10 worth of hosts
	defaultWorkers     = 10
	defaultScanTimeout = 300 * time.Second
	defaultHTTPTimeout = 10 * time.Second
	defaultPingTimeout = 3 * time.Second
)

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Sampler: SamplerConfig{
			MaxPoolSize: defaultMaxPoolSize,
		},
		Analyze: AnalyzeConfig{
			TargetsFile: "targets.txt",
			OutputDir:   ".",
			ScanTimeout: defaultScanTimeout,
			Ollama:      ollama.DefaultConfig(),
		},
		Checker: CheckerConfig{
			InputFile:   "input.csv",
			OutputFile:  "output.csv",
			Workers:     defaultWorkers,
			HTTPTimeout: defaultHTTPTimeout,
			PingTimeout: defaultPingTimeout,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load loads configuration from a file, layered over defaults.
// A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		return config, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied config path
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves the configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

var validate = validator.New()

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("field %s failed validation on '%s'", fe.Namespace(), fe.Tag())
		}
		return err
	}
	return nil
}
