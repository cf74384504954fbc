package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the project configuration loaded from .specflow/config.yaml.
type Config struct {
	Name       string `yaml:"name"`
	FeatureDir string `yaml:"feature-dir"`
	Roadmap    string `yaml:"roadmap"`
	// PhaseNumberPattern tightens which phase numbers 'phase add' accepts.
	// It must stay a subset of 4-digit numbers: the roadmap parser only
	// recognizes 4-digit first cells, and the row mutators enforce that
	// independently.
	PhaseNumberPattern string `yaml:"phase-number-pattern"`
	NextPhaseOrder     string `yaml:"next-phase-order"`
}

// Load reads a YAML config file and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
