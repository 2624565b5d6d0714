// Package rbconfig loads and saves a batch run's configuration as YAML.
package rbconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAtol    = 1e-9
	DefaultRtol    = 1e-6
	DefaultH0      = 0.01
	DefaultHMax    = 1.0
	DefaultHMin    = 1e-12
	DefaultWorkers = 4
)

// Config is a batch run's full configuration: which demo problem to
// drive, how many copies, the step kernel's tolerances, and the
// dispatcher's worker count and mode.
type Config struct {
	Problem  string        `yaml:"problem"`
	Method   string        `yaml:"method"`
	Copies   int           `yaml:"copies"`
	Atol     float64       `yaml:"atol"`
	Rtol     float64       `yaml:"rtol"`
	H0       float64       `yaml:"h0"`
	HMax     float64       `yaml:"h_max"`
	HMin     float64       `yaml:"h_min"`
	Workers  int           `yaml:"workers"`
	Mode     string        `yaml:"mode"`
	LogRun   bool          `yaml:"log_run"`
	LogDir   string        `yaml:"log_dir"`
}

// DefaultConfig returns the configuration a bare `radaubatch run` uses
// with no flags or config file, except LogDir, which the CLI always
// replaces with its --data directory.
func DefaultConfig() *Config {
	return &Config{
		Problem: "vanderpol",
		Method:  "radau",
		Copies:  1,
		Atol:    DefaultAtol,
		Rtol:    DefaultRtol,
		H0:      DefaultH0,
		HMax:    DefaultHMax,
		HMin:    DefaultHMin,
		Workers: DefaultWorkers,
		Mode:    "static",
		LogRun:  false,
		LogDir:  "./runs",
	}
}

// Load reads a YAML config file, starting from DefaultConfig so a config
// file only needs to override the fields it cares about.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
