package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML strategy file over Default() and validates the result.
func Load(path string) (EvaluatorConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return EvaluatorConfig{}, fmt.Errorf("read strategy config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML bytes over Default() and validates the result. Fields
// not present in the document keep their defaults.
func Parse(raw []byte) (EvaluatorConfig, error) {
	cfg := Default()
	if len(bytes.TrimSpace(raw)) > 0 {
		roi := cfg.MinimalROI
		cfg.MinimalROI = nil
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return EvaluatorConfig{}, fmt.Errorf("parse strategy config: %w", err)
		}
		if cfg.MinimalROI == nil {
			cfg.MinimalROI = roi
		}
	}
	if err := cfg.Validate(); err != nil {
		return EvaluatorConfig{}, fmt.Errorf("invalid strategy config: %w", err)
	}
	return cfg, nil
}
