// Package config defines the run configuration: which module instances to
// build, how many points to evaluate, and where to persist run records.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrNoModules     = errors.New("no modules configured")
	ErrModuleName    = errors.New("module name missing or duplicated")
	ErrModuleType    = errors.New("module type missing")
	ErrBadPointCount = errors.New("point count must be positive")
	ErrBadWorkers    = errors.New("worker count must be positive")
)

// Config holds one phasegen run configuration.
type Config struct {
	// Name labels the run in logs and run records.
	Name string `yaml:"name"`

	// Points is how many unit-hypercube points to evaluate.
	Points int `yaml:"points"`

	// Workers is the number of parallel evaluators. Each worker gets its
	// own pool and module instances.
	Workers int `yaml:"workers"`

	// Seed seeds the samplers; worker k derives its stream from Seed+k.
	Seed int64 `yaml:"seed"`

	// Database is an optional SQLite path for run records.
	Database string `yaml:"database"`

	// Logging controls the categorized file logger.
	Logging LoggingConfig `yaml:"logging"`

	// Modules are built in declaration order; later modules may reference
	// outputs of earlier ones.
	Modules []ModuleConfig `yaml:"modules"`

	// Inputs are fixed reconstructed particles declared before any module
	// is built, addressable as "inputs::<name>".
	Inputs map[string]InputParticle `yaml:"inputs"`
}

// ModuleConfig describes one module instance.
type ModuleConfig struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params"`
}

// InputParticle is a fixed 4-momentum fed into the pool per run.
type InputParticle struct {
	Px float64 `yaml:"px"`
	Py float64 `yaml:"py"`
	Pz float64 `yaml:"pz"`
	E  float64 `yaml:"e"`
}

// LoggingConfig controls the file logger.
type LoggingConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// Default returns a configuration with sane defaults and no modules.
func Default() *Config {
	return &Config{
		Name:    "phasegen",
		Points:  10000,
		Workers: 1,
		Seed:    1,
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals and validates configuration bytes. Absent points,
// workers and seed fall back to defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks structural constraints; module parameter semantics are
// checked later, at binding time.
func (c *Config) Validate() error {
	if len(c.Modules) == 0 {
		return ErrNoModules
	}
	if c.Points <= 0 {
		return fmt.Errorf("%w: %d", ErrBadPointCount, c.Points)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrBadWorkers, c.Workers)
	}

	seen := make(map[string]bool, len(c.Modules))
	for i, m := range c.Modules {
		if m.Name == "" || seen[m.Name] {
			return fmt.Errorf("%w: entry %d (%q)", ErrModuleName, i, m.Name)
		}
		if m.Type == "" {
			return fmt.Errorf("%w: module %s", ErrModuleType, m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}
