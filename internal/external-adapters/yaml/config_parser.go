// Package yaml provides YAML-based gate configuration parsing.
package yaml

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ochairo/relgate/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlGateConfig represents the raw YAML structure. Pointers distinguish an
// absent field (keep the default) from an explicit zero.
type yamlGateConfig struct {
	Thresholds struct {
		Coverage *float64 `yaml:"coverage"`
		Lint     *float64 `yaml:"lint"`
	} `yaml:"thresholds"`
	Reports struct {
		Coverage string `yaml:"coverage"`
		Lint     string `yaml:"lint"`
	} `yaml:"reports"`
	Versions struct {
		Changelog string `yaml:"changelog"`
		Packaging string `yaml:"packaging"`
		Docs      string `yaml:"docs"`
	} `yaml:"versions"`
	Feed struct {
		URL        string `yaml:"url"`
		TitleIndex *int   `yaml:"title_index"`
	} `yaml:"feed"`
	Signing struct {
		Key       string `yaml:"key"`
		Artifact  string `yaml:"artifact"`
		Signature string `yaml:"signature"`
	} `yaml:"signing"`
}

// ConfigParser parses YAML gate configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML config parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile loads the gate configuration, layering file values over the
// built-in defaults
func (p *ConfigParser) ParseFile(filePath string) (entities.GateConfig, error) {
	cfg := entities.DefaultGateConfig()

	//nolint:gosec // G304: filePath is the user-selected config path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", filePath, err)
	}

	var raw yamlGateConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", filePath, err)
	}

	if raw.Thresholds.Coverage != nil {
		cfg.Thresholds.Coverage = *raw.Thresholds.Coverage
	}
	if raw.Thresholds.Lint != nil {
		cfg.Thresholds.Lint = *raw.Thresholds.Lint
	}
	if raw.Reports.Coverage != "" {
		cfg.Reports.Coverage = raw.Reports.Coverage
	}
	if raw.Reports.Lint != "" {
		cfg.Reports.Lint = raw.Reports.Lint
	}
	if raw.Versions.Changelog != "" {
		cfg.Versions.Changelog = raw.Versions.Changelog
	}
	if raw.Versions.Packaging != "" {
		cfg.Versions.Packaging = raw.Versions.Packaging
	}
	if raw.Versions.Docs != "" {
		cfg.Versions.Docs = raw.Versions.Docs
	}
	if raw.Feed.URL != "" {
		cfg.Feed.URL = raw.Feed.URL
	}
	if raw.Feed.TitleIndex != nil {
		cfg.Feed.TitleIndex = *raw.Feed.TitleIndex
	}
	cfg.Signing.Key = raw.Signing.Key
	cfg.Signing.Artifact = raw.Signing.Artifact
	cfg.Signing.Signature = raw.Signing.Signature

	return cfg, nil
}

// ApplyEnvOverrides layers RELGATE_* environment variables over the
// configuration so CI can tune the gate without editing files
func ApplyEnvOverrides(cfg entities.GateConfig) entities.GateConfig {
	cfg.Thresholds.Coverage = envFloat("RELGATE_MIN_COVERAGE", cfg.Thresholds.Coverage)
	cfg.Thresholds.Lint = envFloat("RELGATE_MIN_LINT", cfg.Thresholds.Lint)
	if url := os.Getenv("RELGATE_FEED_URL"); url != "" {
		cfg.Feed.URL = url
	}
	return cfg
}

// envFloat returns the parsed value of the variable, or the fallback when the
// variable is unset or not a number
func envFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
