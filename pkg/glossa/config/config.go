// Package config holds the pipeline configuration. Thresholds and
// result bounds are carried as explicit values into engine calls rather
// than module state, so concurrent runs with different settings never
// interfere.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/glossa/pkg/glossa/internalerr"
)

// Config is the full pipeline configuration.
type Config struct {
	Mine     Mine     `yaml:"mine"`
	Compress Compress `yaml:"compress"`
	Annotate Annotate `yaml:"annotate"`
}

// Mine configures the external pattern-mining step.
type Mine struct {
	TitleSupport  float64 `yaml:"title_support"`
	AuthorSupport float64 `yaml:"author_support"`
}

// Compress configures redundancy compression per pattern kind.
type Compress struct {
	TitleDistance  float64 `yaml:"title_distance"`
	AuthorDistance float64 `yaml:"author_distance"`
}

// Annotate holds the default result bounds for annotation queries.
type Annotate struct {
	Context  int `yaml:"context"`
	Synonyms int `yaml:"synonyms"`
	Examples int `yaml:"examples"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Mine:     Mine{TitleSupport: 0.001, AuthorSupport: 0.001},
		Compress: Compress{TitleDistance: 0.8, AuthorDistance: 0.8},
		Annotate: Annotate{Context: 10, Synonyms: 5, Examples: 5},
	}
}

// Load reads a YAML configuration file and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every fraction is in [0,1] and every result bound is
// non-negative.
func (c *Config) Validate() error {
	fractions := map[string]float64{
		"mine.title_support":       c.Mine.TitleSupport,
		"mine.author_support":      c.Mine.AuthorSupport,
		"compress.title_distance":  c.Compress.TitleDistance,
		"compress.author_distance": c.Compress.AuthorDistance,
	}
	for name, v := range fractions {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s = %v outside [0,1]", internalerr.ErrInvalidConfig, name, v)
		}
	}

	bounds := map[string]int{
		"annotate.context":  c.Annotate.Context,
		"annotate.synonyms": c.Annotate.Synonyms,
		"annotate.examples": c.Annotate.Examples,
	}
	for name, n := range bounds {
		if n < 0 {
			return fmt.Errorf("%w: %s = %d is negative", internalerr.ErrInvalidConfig, name, n)
		}
	}
	return nil
}
