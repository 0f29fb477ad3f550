// Package config handles compiler configuration loading and management.
package config

import (
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// DefaultOutputPath is where the compiled model is written when no output
// path is configured.
const DefaultOutputPath = "out.bbm"

// Config holds all compiler settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Compile CompileConfig `yaml:"compile"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	Path     string `yaml:"path"`      // Compiled model path
	GLTFPath string `yaml:"gltf_path"` // Optional skeleton preview (empty = disabled)
}

// CompileConfig holds compilation settings.
type CompileConfig struct {
	Strict bool `yaml:"strict"` // Reject unused elements and non-numeric keyframe values
	Dump   bool `yaml:"dump"`   // Print the compiled bone tree
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Path: DefaultOutputPath,
		},
		Compile: CompileConfig{
			Strict: false,
		},
		Logging: LoggingConfig{
			Level:   "warn",
			LogFile: "",
		},
	}
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks values that cannot be checked by the YAML decoder.
func (c *Config) Validate() error {
	if c.Output.Path == "" {
		return errors.Wrap(ErrInvalidConfig, "output.path is empty")
	}
	if c.Output.GLTFPath != "" && c.Output.GLTFPath == c.Output.Path {
		return errors.Wrap(ErrInvalidConfig, "output.gltf_path must differ from output.path")
	}
	if c.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "logging.level: %v", err)
		}
	}
	return nil
}
