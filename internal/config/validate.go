package config

import (
	"fmt"
	"regexp"
)

var validOrders = map[string]bool{
	"":         true,
	"document": true,
	"number":   true,
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if cfg.Name == "" {
		return fmt.Errorf("config: 'name' is required")
	}
	if cfg.FeatureDir == "" {
		cfg.FeatureDir = "specs"
	}
	if cfg.Roadmap == "" {
		cfg.Roadmap = "ROADMAP.md"
	}
	if cfg.PhaseNumberPattern == "" {
		cfg.PhaseNumberPattern = `^\d{4}$`
	}
	if _, err := regexp.Compile(cfg.PhaseNumberPattern); err != nil {
		return fmt.Errorf("config: invalid phase-number-pattern %q: %w", cfg.PhaseNumberPattern, err)
	}
	if !validOrders[cfg.NextPhaseOrder] {
		return fmt.Errorf("config: next-phase-order %q must be 'document' or 'number'", cfg.NextPhaseOrder)
	}
	if cfg.NextPhaseOrder == "" {
		cfg.NextPhaseOrder = "document"
	}
	return nil
}

// ValidatePhaseNumber checks a phase number against the configured pattern.
func (c *Config) ValidatePhaseNumber(number string) error {
	re, err := regexp.Compile(c.PhaseNumberPattern)
	if err != nil {
		return fmt.Errorf("config: invalid phase-number-pattern %q: %w", c.PhaseNumberPattern, err)
	}
	if !re.MatchString(number) {
		return fmt.Errorf("phase number %q does not match pattern %q", number, c.PhaseNumberPattern)
	}
	return nil
}
