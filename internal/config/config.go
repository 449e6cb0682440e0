// Package config loads command-line tool settings from YAML files and
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"schelling/internal/sims/schelling"
)

// Config contains all settings of the command-line tools.
type Config struct {
	// Simulation holds the grid and population parameters.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Run controls the caller-side step loop.
	Run RunConfig `json:"run" yaml:"run"`

	// Logging configures operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Stream configures the websocket snapshot server.
	Stream StreamConfig `json:"stream" yaml:"stream"`
}

// SimulationConfig mirrors schelling.Config in file form.
type SimulationConfig struct {
	Size                int     `json:"size" yaml:"size"`
	Seed                int64   `json:"seed" yaml:"seed"`
	EmptyRatio          float64 `json:"empty_ratio" yaml:"empty_ratio"`
	TypeARatio          float64 `json:"type_a_ratio" yaml:"type_a_ratio"`
	RelocationThreshold float64 `json:"relocation_threshold" yaml:"relocation_threshold"`
}

// RunConfig bounds and paces the step loop.
type RunConfig struct {
	// MaxSteps stops the loop after this many steps. Zero means no limit.
	MaxSteps int `json:"max_steps" yaml:"max_steps"`

	// Delay pauses between steps. It has no effect on the outcome.
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	// Level sets the log verbosity: "debug", "info" (default), "warn" or "error".
	Level string `json:"level" yaml:"level"`

	// Format selects "text" (default) or "json" output.
	Format string `json:"format" yaml:"format"`
}

// StreamConfig configures the websocket server.
type StreamConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// Default returns a Config with the standard simulation parameters.
func Default() *Config {
	sim := schelling.DefaultConfig()
	return &Config{
		Simulation: SimulationConfig{
			Size:                sim.Size,
			Seed:                sim.Seed,
			EmptyRatio:          sim.Params.EmptyRatio,
			TypeARatio:          sim.Params.TypeARatio,
			RelocationThreshold: sim.Params.RelocationThreshold,
		},
		Run: RunConfig{
			MaxSteps: 10000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Stream: StreamConfig{
			Addr: "localhost:8080",
		},
	}
}

// Load reads path when it is non-empty, then applies environment overrides.
// Order: defaults -> file -> environment variables
func Load(path string) (*Config, error) {
	config := Default()
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = fileConfig
	}
	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys missing
// from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// SimConfig converts the simulation section into an engine configuration.
func (c *Config) SimConfig() schelling.Config {
	return schelling.Config{
		Size: c.Simulation.Size,
		Seed: c.Simulation.Seed,
		Params: schelling.Params{
			EmptyRatio:          c.Simulation.EmptyRatio,
			TypeARatio:          c.Simulation.TypeARatio,
			RelocationThreshold: c.Simulation.RelocationThreshold,
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}

	if c.Run.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative, got %d", c.Run.MaxSteps)
	}

	if c.Run.Delay < 0 {
		return fmt.Errorf("delay must be non-negative, got %v", c.Run.Delay)
	}

	validLevels := map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}

	validFormats := map[string]bool{"": true, "text": true, "json": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Logging.Format)
	}

	return nil
}

// applyEnvOverrides applies SCHELLING_* environment variables to the config.
func applyEnvOverrides(config *Config) error {
	if v := os.Getenv("SCHELLING_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SCHELLING_SIZE: %w", err)
		}
		config.Simulation.Size = n
	}

	if v := os.Getenv("SCHELLING_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SCHELLING_SEED: %w", err)
		}
		config.Simulation.Seed = n
	}

	floats := []struct {
		env string
		dst *float64
	}{
		{"SCHELLING_EMPTY_RATIO", &config.Simulation.EmptyRatio},
		{"SCHELLING_TYPE_A_RATIO", &config.Simulation.TypeARatio},
		{"SCHELLING_RELOCATION_THRESHOLD", &config.Simulation.RelocationThreshold},
	}
	for _, f := range floats {
		v := os.Getenv(f.env)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.env, err)
		}
		*f.dst = parsed
	}

	if v := os.Getenv("SCHELLING_MAX_STEPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SCHELLING_MAX_STEPS: %w", err)
		}
		config.Run.MaxSteps = n
	}

	if v := os.Getenv("SCHELLING_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SCHELLING_DELAY: %w", err)
		}
		config.Run.Delay = d
	}

	if v := os.Getenv("SCHELLING_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("SCHELLING_LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}

	if v := os.Getenv("SCHELLING_STREAM_ADDR"); v != "" {
		config.Stream.Addr = v
	}

	return nil
}
