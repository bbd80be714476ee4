// Package config loads the engine and scheduler's tunable defaults.
// Defaults are embedded at build time (go:embed) and can be overridden by a
// user-supplied YAML file, the same embedded-literal-plus-override shape
// the teacher's own engine config uses, just externalized to YAML instead
// of a Go struct literal so operators can tune it without a rebuild.
package config

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// EngineDefaults are the simulation parameters a job spec inherits when it
// doesn't set its own. Values mirror the original engine's pinned defaults:
// 10,000 iterations, a 1,000-iteration batch size, convergence checking off
// by default.
type EngineDefaults struct {
	NumIterations         int       `yaml:"num_iterations"`
	MaxEventsPerIteration int       `yaml:"max_events_per_iteration"`
	BatchSize             int       `yaml:"batch_size"`
	ConvergenceCheck      bool      `yaml:"convergence_check"`
	ConvergenceThreshold  float64   `yaml:"convergence_threshold"`
	ConvergenceWindow     int       `yaml:"convergence_window"`
	MaxWorkers            int       `yaml:"max_workers"` // 0 means GOMAXPROCS
	PercentileLevels      []float64 `yaml:"percentile_levels"`
	ConfidenceLevels      []float64 `yaml:"confidence_levels"`
}

// SchedulerConfig bounds how many jobs the registry runs at once.
type SchedulerConfig struct {
	MaxConcurrentJobsPerUser int `yaml:"max_concurrent_jobs_per_user"`
	MaxConcurrentJobsGlobal  int `yaml:"max_concurrent_jobs_global"`
	JobRetentionMinutes      int `yaml:"job_retention_minutes"`
}

// Config is the full set of tunables loaded at process start.
type Config struct {
	Engine    EngineDefaults  `yaml:"engine"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// Default parses the embedded defaults.
func Default() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads path and unmarshals it over the embedded defaults, so a
// partial override file only needs to set the fields it wants to change.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
