// Package config holds the run configuration of the simulator.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// RunConfig controls how a simulation is run and reported.
type RunConfig struct {
	// PrintRegisters prints the whole register file after every cycle
	// instead of only the changed register.
	PrintRegisters bool `json:"print_registers"`

	// PrintMemory prints every nonzero data word after every cycle instead
	// of only the changed word.
	PrintMemory bool `json:"print_memory"`

	// Debug enables debug tracing. It forces LogLevel to "debug".
	Debug bool `json:"debug"`

	// Interactive prompts for a line before every cycle. A line starting
	// with 'q' stops the run.
	Interactive bool `json:"interactive"`

	// MaxCycles stops the run after this many instructions. 0 means no limit.
	MaxCycles uint64 `json:"max_cycles"`

	// LogLevel is a logrus level name. Default: "info".
	LogLevel string `json:"log_level"`
}

// DefaultRunConfig returns a RunConfig that prints only changes and runs
// without interaction or limit.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		LogLevel: logrus.InfoLevel.String(),
	}
}

// LoadConfig loads a RunConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config file: %w", err)
	}

	config := DefaultRunConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a RunConfig to a JSON file.
func (c *RunConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize run config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration is usable.
func (c *RunConfig) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the effective log level. Debug overrides LogLevel.
// An invalid LogLevel yields InfoLevel; call Validate first to catch it.
func (c *RunConfig) Level() logrus.Level {
	if c.Debug {
		return logrus.DebugLevel
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Clone returns a copy of the RunConfig.
func (c *RunConfig) Clone() *RunConfig {
	clone := *c
	return &clone
}
