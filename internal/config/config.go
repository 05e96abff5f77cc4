// Package config defines run configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Functions that load or validate accept context.Context first.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/heptathlon/internal/domain/scoring"
	"github.com/okian/heptathlon/internal/domain/weighting"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// EventConfig overrides or adds one weighting table entry.
type EventConfig struct {
	A    float64 `koanf:"a"`
	B    float64 `koanf:"b"`
	C    float64 `koanf:"c"`
	Type string  `koanf:"type"`
}

// Config contains run configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Sport selects the scorer, currently only "heptathlon".
	Sport string `koanf:"sport"`

	// Input is the path of the CSV results file.
	Input string `koanf:"input"`

	// Format selects the report renderer: text or json.
	Format string `koanf:"format"`

	// Strict rejects non-numeric result values instead of reading them as 0.
	Strict bool `koanf:"strict"`

	// MetricsFile, when set, receives Prometheus metrics in textfile format.
	MetricsFile string `koanf:"metrics_file"`

	// Events maps abbreviations to coefficient overrides applied on top of
	// the default table.
	Events map[string]EventConfig `koanf:"events"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel: "warn",
		Sport:    scoring.SportHeptathlon,
		Input:    "Heptathlon.csv",
		Format:   FormatText,
	}
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate(_ context.Context) error {
	if strings.TrimSpace(c.Sport) == "" {
		return fmt.Errorf("%w: sport must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("%w: input must not be empty", ErrInvalidConfig)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}
	if _, err := c.Table(); err != nil {
		return err
	}
	return nil
}

// Table returns the default weighting table with Events applied.
func (c *Config) Table() (*weighting.Table, error) {
	base := weighting.Default()
	if len(c.Events) == 0 {
		return base, nil
	}
	defs := make([]weighting.EventDefinition, 0, len(c.Events))
	for abbr, ev := range c.Events {
		typ, err := weighting.ParseEventType(ev.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: event %s: %w", ErrInvalidConfig, abbr, err)
		}
		defs = append(defs, weighting.EventDefinition{Abbreviation: abbr, A: ev.A, B: ev.B, C: ev.C, Type: typ})
	}
	table, err := base.Merge(defs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return table, nil
}

// ParsePolicy maps Strict onto the scoring parse policy.
func (c *Config) ParsePolicy() scoring.ParsePolicy {
	if c.Strict {
		return scoring.Strict
	}
	return scoring.Permissive
}
