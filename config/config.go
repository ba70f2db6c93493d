// Package config loads the scanner's tunables from a YAML file. All values
// have working defaults; a missing file is not an error for callers that
// treat configuration as optional.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config collects every tunable the pipeline exposes.
type Config struct {
	OCR    OCRConfig    `yaml:"ocr"`
	Match  MatchConfig  `yaml:"match"`
	Redact RedactConfig `yaml:"redact"`
}

// OCRConfig controls the recognition stage.
type OCRConfig struct {
	// DPI is the reference sampling resolution pages are rasterized to
	// before recognition.
	DPI int `yaml:"dpi"`
	// Languages lists recognition language hints in priority order.
	Languages []string `yaml:"languages,omitempty"`
	// Variables passes engine-specific knobs through to the provider.
	Variables map[string]string `yaml:"variables,omitempty"`
}

// MatchConfig controls pattern search.
type MatchConfig struct {
	// MaxCustomPatternLength bounds user-supplied pattern expressions.
	MaxCustomPatternLength int `yaml:"max_custom_pattern_length"`
}

// RedactConfig controls rectangle reconstruction.
type RedactConfig struct {
	// ToleranceFraction is the same-line vertical tolerance as a fraction
	// of glyph height.
	ToleranceFraction float64 `yaml:"tolerance_fraction"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OCR:    OCRConfig{DPI: 300},
		Match:  MatchConfig{MaxCustomPatternLength: 512},
		Redact: RedactConfig{ToleranceFraction: 0.5},
	}
}

// Load reads a YAML configuration file, layering it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects configurations no stage could run with.
func (c Config) Validate() error {
	if c.OCR.DPI <= 0 {
		return fmt.Errorf("config: ocr.dpi must be positive, got %d", c.OCR.DPI)
	}
	if c.Match.MaxCustomPatternLength <= 0 {
		return fmt.Errorf("config: match.max_custom_pattern_length must be positive, got %d", c.Match.MaxCustomPatternLength)
	}
	if c.Redact.ToleranceFraction <= 0 || c.Redact.ToleranceFraction > 1 {
		return fmt.Errorf("config: redact.tolerance_fraction must be in (0, 1], got %v", c.Redact.ToleranceFraction)
	}
	return nil
}
