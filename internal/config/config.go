// Package config provides configuration for the FOA ingestor.
//
// Configuration comes from an optional YAML file layered over built-in
// defaults; CLI flags override both. The label vocabulary and tag rule
// table are part of the configuration so tests and deployments can swap
// them without code changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/extract"
	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/tags"
)

// Configuration validation errors.
var (
	ErrInvalidTimeout   = errors.New("http.timeout_sec must be at least 1")
	ErrInvalidFormat    = errors.New("output.format must be one of: json, csv, both")
	ErrInvalidWorkers   = errors.New("batch.workers must be at least 1")
	ErrEmptyLabel       = errors.New("labels must not contain empty entries")
	ErrEmptyTagRule     = errors.New("tag_rules entries need a tag and at least one keyword")
	ErrMissingOutputDir = errors.New("output.dir is required")
)

// Config is the complete ingestor configuration.
type Config struct {
	HTTP     HTTPConfig   `yaml:"http"`
	Output   OutputConfig `yaml:"output"`
	Batch    BatchConfig  `yaml:"batch"`
	Labels   []string     `yaml:"labels"`
	TagRules []tags.Rule  `yaml:"tag_rules"`
}

// HTTPConfig controls page fetching.
type HTTPConfig struct {
	TimeoutSec int    `yaml:"timeout_sec"`
	UserAgent  string `yaml:"user_agent"`
}

// OutputConfig controls where and how records are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// BatchConfig controls batch-mode ingestion.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// Default returns the built-in configuration: 30s timeout, ./out output in
// both formats, 4 batch workers, and the standard label vocabulary and tag
// rule table.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			TimeoutSec: 30,
		},
		Output: OutputConfig{
			Dir:    "out",
			Format: "both",
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the ingestor cannot run with.
func (c *Config) Validate() error {
	if c.HTTP.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}
	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}
	switch c.Output.Format {
	case "json", "csv", "both":
	default:
		return ErrInvalidFormat
	}
	if c.Batch.Workers < 1 {
		return ErrInvalidWorkers
	}
	for _, label := range c.Labels {
		if label == "" {
			return ErrEmptyLabel
		}
	}
	for _, rule := range c.TagRules {
		if rule.Tag == "" || len(rule.Keywords) == 0 {
			return ErrEmptyTagRule
		}
	}
	return nil
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSec) * time.Second
}

// Vocabulary returns the configured label vocabulary, or the default set
// when the config file did not override it.
func (c *Config) Vocabulary() extract.Vocabulary {
	if len(c.Labels) > 0 {
		return extract.Vocabulary(c.Labels)
	}
	return extract.DefaultVocabulary
}

// Rules returns the configured tag rule table, or the default table when
// the config file did not override it.
func (c *Config) Rules() []tags.Rule {
	if len(c.TagRules) > 0 {
		return c.TagRules
	}
	return tags.DefaultRules
}
