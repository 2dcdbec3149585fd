// Package config loads the tunable heuristics of the reconstruction
// pipeline from a YAML file.
//
// The layout heuristics were tuned per document family rather than derived
// from a stable specification, so every threshold is a named configuration
// value: a new document family means a new config file, not a code change.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/patgrep/layout"
	"github.com/tsawler/patgrep/search"
)

// AnchorSettings configures how the start of body text is located.
type AnchorSettings struct {
	Strategy         string  `yaml:"strategy"`
	ColumnMarker     string  `yaml:"column_marker"`
	MarginNumbers    []int   `yaml:"margin_numbers"`
	MarginNumberMinX float64 `yaml:"margin_number_min_x"`
	DensityThreshold int     `yaml:"density_threshold"`
}

// ColumnSettings configures column and line-number assignment.
type ColumnSettings struct {
	Rule            string  `yaml:"rule"`
	LeftColumnMaxX  float64 `yaml:"left_column_max_x"`
	RightColumnMinX float64 `yaml:"right_column_min_x"`
	LineGap         float64 `yaml:"line_gap"`
	BodyTop         float64 `yaml:"body_top"`
}

// SearchSettings configures fuzzy phrase matching.
type SearchSettings struct {
	Tolerance int `yaml:"tolerance"`
}

// CacheSettings selects where reconstructed lines are cached between
// searches of the same document.
type CacheSettings struct {
	Type     string `yaml:"type"`      // "memory" or "redis"
	RedisURL string `yaml:"redis_url"` // used when type is "redis"
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Anchor AnchorSettings `yaml:"anchor"`
	Column ColumnSettings `yaml:"column"`
	Search SearchSettings `yaml:"search"`
	Cache  CacheSettings  `yaml:"cache"`
}

// Load reads a config from the given path. A missing file yields the
// defaults for US patent specification sheets.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the configuration tuned for US patent specification
// sheets.
func Default() *AppConfig {
	anchor := layout.DefaultAnchorConfig()
	column := layout.DefaultColumnConfig()
	matcher := search.DefaultMatcherConfig()

	return &AppConfig{
		Anchor: AnchorSettings{
			Strategy:         anchor.Strategy.String(),
			ColumnMarker:     anchor.ColumnMarker,
			MarginNumbers:    anchor.MarginNumbers,
			MarginNumberMinX: anchor.MarginNumberMinX,
			DensityThreshold: anchor.DensityThreshold,
		},
		Column: ColumnSettings{
			Rule:            column.Rule.String(),
			LeftColumnMaxX:  column.LeftColumnMaxX,
			RightColumnMinX: column.RightColumnMinX,
			LineGap:         column.LineGap,
			BodyTop:         column.BodyTop,
		},
		Search: SearchSettings{
			Tolerance: matcher.Tolerance,
		},
		Cache: CacheSettings{
			Type: "memory",
		},
	}
}

// AnchorConfig materializes the layout anchor configuration.
func (c *AppConfig) AnchorConfig() (layout.AnchorConfig, error) {
	cfg := layout.AnchorConfig{
		ColumnMarker:     c.Anchor.ColumnMarker,
		MarginNumbers:    c.Anchor.MarginNumbers,
		MarginNumberMinX: c.Anchor.MarginNumberMinX,
		DensityThreshold: c.Anchor.DensityThreshold,
	}

	switch c.Anchor.Strategy {
	case "", "header":
		cfg.Strategy = layout.StrategyHeader
	case "density":
		cfg.Strategy = layout.StrategyDensity
	case "sheet-marker":
		cfg.Strategy = layout.StrategySheetMarker
	default:
		return cfg, fmt.Errorf("unknown anchor strategy %q", c.Anchor.Strategy)
	}

	return cfg, nil
}

// ColumnConfig materializes the layout column configuration.
func (c *AppConfig) ColumnConfig() (layout.ColumnConfig, error) {
	cfg := layout.ColumnConfig{
		LeftColumnMaxX:  c.Column.LeftColumnMaxX,
		RightColumnMinX: c.Column.RightColumnMinX,
		LineGap:         c.Column.LineGap,
		BodyTop:         c.Column.BodyTop,
	}

	switch c.Column.Rule {
	case "", "ordering":
		cfg.Rule = layout.RuleOrdering
	case "geometry":
		cfg.Rule = layout.RuleGeometry
	default:
		return cfg, fmt.Errorf("unknown column rule %q", c.Column.Rule)
	}

	return cfg, nil
}

// MarginConfig materializes the margin-splitter configuration. The margin
// set and gutter threshold are shared with anchor detection.
func (c *AppConfig) MarginConfig() layout.MarginConfig {
	return layout.MarginConfig{
		Numbers: c.Anchor.MarginNumbers,
		MinX:    c.Anchor.MarginNumberMinX,
	}
}

// MatcherConfig materializes the fuzzy matcher configuration.
func (c *AppConfig) MatcherConfig() search.MatcherConfig {
	return search.MatcherConfig{
		Tolerance: c.Search.Tolerance,
	}
}
