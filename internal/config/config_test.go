package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	config := Default()

	if config.Phases != 10 {
		t.Errorf("expected Phases 10, got %d", config.Phases)
	}
	if config.Backend != "sequential" {
		t.Errorf("expected Backend 'sequential', got '%s'", config.Backend)
	}
	if config.Dt != 0.01 {
		t.Errorf("expected Dt 0.01, got %f", config.Dt)
	}
	if config.Seed != 1 {
		t.Errorf("expected Seed 1, got %d", config.Seed)
	}
	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "run.yaml")

	configContent := `
n: 32
phases: 20
alpha: 0.8
pump: 1.9
coupling_coeff: 0.15
noise_level: 0.02
dt: 0.005
total_time: 5
seed: 1234
backend: fused
coupling_file: j.csv
out_dir: results

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.N != 32 {
		t.Errorf("expected N 32, got %d", config.N)
	}
	if config.Phases != 20 {
		t.Errorf("expected Phases 20, got %d", config.Phases)
	}
	if config.Backend != "fused" {
		t.Errorf("expected Backend 'fused', got '%s'", config.Backend)
	}
	if config.Seed != 1234 {
		t.Errorf("expected Seed 1234, got %d", config.Seed)
	}
	if config.CouplingFile != "j.csv" {
		t.Errorf("expected CouplingFile 'j.csv', got '%s'", config.CouplingFile)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("expected Logging.Level 'debug', got '%s'", config.Logging.Level)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func validConfig() *RunConfig {
	c := Default()
	c.N = 8
	c.CouplingFile = "j.csv"
	return c
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunConfig)
		wantErr string
	}{
		{"valid", func(c *RunConfig) {}, ""},
		{"zero n", func(c *RunConfig) { c.N = 0 }, "n must be positive"},
		{"zero phases", func(c *RunConfig) { c.Phases = 0 }, "phases"},
		{"zero dt", func(c *RunConfig) { c.Dt = 0 }, "dt"},
		{"negative noise", func(c *RunConfig) { c.NoiseLevel = -0.1 }, "noise_level"},
		{"phases exceed steps", func(c *RunConfig) { c.Phases = 100000 }, "phases"},
		{"bad backend", func(c *RunConfig) { c.Backend = "gpu" }, "backend"},
		{"missing coupling file", func(c *RunConfig) { c.CouplingFile = "" }, "coupling_file"},
		{"bad log level", func(c *RunConfig) { c.Logging.Level = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() accepted invalid config")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "run.yaml")
	if err := os.WriteFile(configPath, []byte("n: 4\ncoupling_file: j.csv\n"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("CIMSIM_BACKEND", "fused")
	t.Setenv("CIMSIM_SEED", "777")
	t.Setenv("CIMSIM_LOG_LEVEL", "trace")

	config, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Backend != "fused" {
		t.Errorf("expected env-overridden Backend 'fused', got '%s'", config.Backend)
	}
	if config.Seed != 777 {
		t.Errorf("expected env-overridden Seed 777, got %d", config.Seed)
	}
	if config.Logging.Level != "trace" {
		t.Errorf("expected env-overridden Logging.Level 'trace', got '%s'", config.Logging.Level)
	}
}
