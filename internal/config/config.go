// Package config handles objmetrics configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/philipparndt/objmetrics/pkg/analysis"
	"github.com/philipparndt/objmetrics/pkg/geometry"
)

// Config holds all objmetrics settings.
type Config struct {
	Parse   ParseConfig   `yaml:"parse"`
	Report  ReportConfig  `yaml:"report"`
	Queries []QueryConfig `yaml:"queries,omitempty"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// ParseConfig holds OBJ parser settings.
type ParseConfig struct {
	Strict bool `yaml:"strict"` // reject malformed numbers instead of substituting 0
}

// ReportConfig holds output settings.
type ReportConfig struct {
	Precision int  `yaml:"precision"`
	JSON      bool `yaml:"json"`
}

// QueryConfig describes one bounding box query. Either Point or both Min
// and Max are set.
type QueryConfig struct {
	Name  string    `yaml:"name,omitempty"`
	Point []float64 `yaml:"point,omitempty"`
	Min   []float64 `yaml:"min,omitempty"`
	Max   []float64 `yaml:"max,omitempty"`
}

// WatchConfig holds file watcher settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			Strict: false,
		},
		Report: ReportConfig{
			Precision: 6,
			JSON:      false,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that cannot be represented by the yaml types alone.
func (c *Config) Validate() error {
	if c.Report.Precision < 0 || c.Report.Precision > 17 {
		return fmt.Errorf("report.precision must be between 0 and 17, got %d", c.Report.Precision)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", c.Watch.Debounce)
	}
	_, err := c.BuildQueries()
	return err
}

// BuildQueries converts the configured queries. Without any configured
// queries the standard report checks are used.
func (c *Config) BuildQueries() ([]analysis.Query, error) {
	if len(c.Queries) == 0 {
		return analysis.DefaultQueries(), nil
	}

	queries := make([]analysis.Query, 0, len(c.Queries))
	for i, qc := range c.Queries {
		q, err := qc.toQuery()
		if err != nil {
			return nil, fmt.Errorf("queries[%d]: %w", i, err)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

func (qc QueryConfig) toQuery() (analysis.Query, error) {
	switch {
	case qc.Point != nil && (qc.Min != nil || qc.Max != nil):
		return analysis.Query{}, fmt.Errorf("point and min/max are mutually exclusive")
	case qc.Point != nil:
		p, err := vector(qc.Point)
		if err != nil {
			return analysis.Query{}, fmt.Errorf("point: %w", err)
		}
		return analysis.NewPointQuery(qc.Name, p), nil
	case qc.Min != nil && qc.Max != nil:
		min, err := vector(qc.Min)
		if err != nil {
			return analysis.Query{}, fmt.Errorf("min: %w", err)
		}
		max, err := vector(qc.Max)
		if err != nil {
			return analysis.Query{}, fmt.Errorf("max: %w", err)
		}
		return analysis.NewBoxQuery(qc.Name, geometry.NewBoundingBox(min, max)), nil
	default:
		return analysis.Query{}, fmt.Errorf("either point or min and max must be set")
	}
}

func vector(values []float64) (geometry.Vector3, error) {
	if len(values) != 3 {
		return geometry.Vector3{}, fmt.Errorf("expected 3 coordinates, got %d", len(values))
	}
	return geometry.NewVector3(values[0], values[1], values[2]), nil
}
