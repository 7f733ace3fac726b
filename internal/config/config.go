// Package config provides run configuration loading for cimsim.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RunConfig describes one simulation run.
type RunConfig struct {
	// N is the state dimension. It must match the coupling matrix.
	N int `json:"n" yaml:"n"`

	// Phases is the number of annealing phases M.
	Phases int `json:"phases" yaml:"phases"`

	// Alpha is the cubic nonlinearity coefficient.
	Alpha float64 `json:"alpha" yaml:"alpha"`

	// Pump is the pump/loss parameter p.
	Pump float64 `json:"pump" yaml:"pump"`

	// CouplingCoeff scales the coupling-injected term.
	CouplingCoeff float64 `json:"coupling_coeff" yaml:"coupling_coeff"`

	// NoiseLevel scales the stochastic forcing. Must be >= 0.
	NoiseLevel float64 `json:"noise_level" yaml:"noise_level"`

	// Dt is the integration time step.
	Dt float64 `json:"dt" yaml:"dt"`

	// TotalTime is the simulated horizon T.
	TotalTime float64 `json:"total_time" yaml:"total_time"`

	// Seed seeds the noise stream for reproducible runs.
	Seed uint64 `json:"seed" yaml:"seed"`

	// Backend selects the execution strategy: "sequential" records the
	// full trajectory, "fused" returns only the terminal state.
	Backend string `json:"backend" yaml:"backend"`

	// CouplingFile is the CSV file holding the N×N target matrix.
	CouplingFile string `json:"coupling_file" yaml:"coupling_file"`

	// InitialFile is the CSV file holding the length-N initial state.
	// Empty means the all-zero state.
	InitialFile string `json:"initial_file,omitempty" yaml:"initial_file,omitempty"`

	// OutDir receives the run outputs (final state, trajectory, trace).
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// LoggingConfig configures cimsim's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables trace logging to <out dir>/trace.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a RunConfig with sensible defaults. The coupling file
// and the dimension still have to be supplied by the caller.
func Default() *RunConfig {
	return &RunConfig{
		Phases:        10,
		Alpha:         1.0,
		Pump:          2.0,
		CouplingCoeff: 1.0,
		NoiseLevel:    0.01,
		Dt:            0.01,
		TotalTime:     10.0,
		Seed:          1,
		Backend:       "sequential",
		OutDir:        "out",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from path and applies environment variable
// overrides on top.
func Load(path string) (*RunConfig, error) {
	config, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(config)
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*RunConfig, error) {
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

// Validate checks that the configuration is valid. It enforces the same
// schedule constraints the integrator enforces, so a bad configuration is
// rejected before any file or matrix is touched.
func (c *RunConfig) Validate() error {
	if c.N <= 0 {
		return fmt.Errorf("n must be positive, got %d", c.N)
	}
	if c.Phases <= 0 {
		return fmt.Errorf("phases must be positive, got %d", c.Phases)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.TotalTime <= 0 {
		return fmt.Errorf("total_time must be positive, got %f", c.TotalTime)
	}
	if c.NoiseLevel < 0 {
		return fmt.Errorf("noise_level must be non-negative, got %f", c.NoiseLevel)
	}
	if steps := int(c.TotalTime / c.Dt); steps < c.Phases {
		return fmt.Errorf("phases (%d) exceeds step count floor(total_time/dt)=%d", c.Phases, steps)
	}
	if c.Backend != "sequential" && c.Backend != "fused" {
		return fmt.Errorf("invalid backend: %s (valid: sequential, fused)", c.Backend)
	}
	if c.CouplingFile == "" {
		return fmt.Errorf("coupling_file is required")
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *RunConfig) {
	if v := os.Getenv("CIMSIM_BACKEND"); v != "" {
		config.Backend = v
	}

	if v := os.Getenv("CIMSIM_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Seed = n
		}
	}

	if v := os.Getenv("CIMSIM_OUT_DIR"); v != "" {
		config.OutDir = v
	}

	if v := os.Getenv("CIMSIM_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
