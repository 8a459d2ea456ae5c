// Package config holds the engine's tunable heuristics as plain data:
// scoring weights, pattern tables, and capacity limits. Defaults are
// compiled in; a YAML file can overlay any field.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WeightedPattern pairs a regex with its score contribution.
type WeightedPattern struct {
	Pattern string  `yaml:"pattern"`
	Weight  float64 `yaml:"weight"`
}

// Scoring configures the importance score's factor weights.
type Scoring struct {
	LengthWeight     float64 `yaml:"length_weight"`
	ErrorWeight      float64 `yaml:"error_weight"`
	ComplexityWeight float64 `yaml:"complexity_weight"`
	ContextWeight    float64 `yaml:"context_weight"`
	RecencyWeight    float64 `yaml:"recency_weight"`
	LengthNorm       int     `yaml:"length_norm"` // chars mapping to a full length factor
}

// Eviction configures the combined-score blend and the decay window.
type Eviction struct {
	ImportanceWeight float64 `yaml:"importance_weight"`
	RecencyWeight    float64 `yaml:"recency_weight"`
	DecayDays        float64 `yaml:"decay_days"`
}

// Search configures ranked-retrieval scoring.
type Search struct {
	ContentWeight    float64 `yaml:"content_weight"`
	EntityWeight     float64 `yaml:"entity_weight"`
	ImportanceWeight float64 `yaml:"importance_weight"`
	DefaultLimit     int     `yaml:"default_limit"`
}

// Config is the full engine configuration.
type Config struct {
	MaxEntries int `yaml:"max_entries"`
	RecentSize int `yaml:"recent_size"`

	Scoring  Scoring  `yaml:"scoring"`
	Eviction Eviction `yaml:"eviction"`
	Search   Search   `yaml:"search"`

	// CodePatterns are the structural patterns a code line must match to
	// survive compression (anchors included in the pattern).
	CodePatterns map[string]string `yaml:"code_patterns"`

	// ComplexityPatterns feed the code-complexity sub-score.
	ComplexityPatterns []WeightedPattern `yaml:"complexity_patterns"`

	// CodeEntityPatterns map an entity category to a regex with one
	// capture group naming the identifier.
	CodeEntityPatterns map[string]string `yaml:"code_entity_patterns"`

	// ErrorClassPattern recognizes UppercaseWordError-style tokens.
	ErrorClassPattern string `yaml:"error_class_pattern"`

	// ErrorKeywords is the vocabulary behind the error-density factor.
	ErrorKeywords []string `yaml:"error_keywords"`

	// ErrorMarkers keep a line during error compression (lowercase
	// substring match).
	ErrorMarkers []string `yaml:"error_markers"`

	// ImportanceKeywords keep a sentence during conversation compression.
	ImportanceKeywords []string `yaml:"importance_keywords"`

	// ActionKeywords keep a line during solution compression.
	ActionKeywords []string `yaml:"action_keywords"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		MaxEntries: 1000,
		RecentSize: 100,
		Scoring: Scoring{
			LengthWeight:     0.2,
			ErrorWeight:      0.3,
			ComplexityWeight: 0.2,
			ContextWeight:    0.2,
			RecencyWeight:    0.1,
			LengthNorm:       1000,
		},
		Eviction: Eviction{
			ImportanceWeight: 0.7,
			RecencyWeight:    0.3,
			DecayDays:        7,
		},
		Search: Search{
			ContentWeight:    1.0,
			EntityWeight:     0.5,
			ImportanceWeight: 0.3,
			DefaultLimit:     5,
		},
		CodePatterns: map[string]string{
			"import":     `^(import|from)\s+`,
			"function":   `^(def|func)\s+\w+`,
			"type":       `^(class|type)\s+\w+`,
			"assignment": `^\w+\s*:?=\s*`,
			"fileref":    `^(Traceback|File ".+", line \d+)`,
			"testresult": `^(PASSED|FAILED|ERROR|SKIPPED|--- PASS|--- FAIL)`,
		},
		ComplexityPatterns: []WeightedPattern{
			{Pattern: `(?m)^\s*(def|func)\s+\w+`, Weight: 0.1},
			{Pattern: `(?m)^\s*(class|type)\s+\w+`, Weight: 0.15},
			{Pattern: `(?m)^\s*if[\s(]`, Weight: 0.05},
			{Pattern: `(?m)^\s*for[\s(]`, Weight: 0.05},
			{Pattern: `(?m)^\s*while[\s(]`, Weight: 0.05},
			{Pattern: `(?m)^\s*(try:|defer\s|except\b)`, Weight: 0.1},
			{Pattern: `(?m)^\s*(import|from)\s`, Weight: 0.02},
			{Pattern: `(#|//).*(TODO|FIXME|NOTE)`, Weight: 0.1},
		},
		CodeEntityPatterns: map[string]string{
			"function": `(?m)(?:def|func)\s+(\w+)`,
			"class":    `(?m)(?:class|type)\s+(\w+)`,
			"variable": `(?m)^(\w+)\s*:?=`,
			"module":   `(?m)(?:^|\s)import\s+"?(\w+)`,
		},
		ErrorClassPattern: `[A-Z][a-zA-Z]*Error\b`,
		ErrorKeywords:     []string{"error", "exception", "failed", "traceback", "bug", "fix"},
		ErrorMarkers:      []string{"error:", "exception:", "traceback", `file "`, "line"},
		ImportanceKeywords: []string{
			"understand", "need", "should", "must", "important", "key", "solution", "problem",
		},
		ActionKeywords: []string{
			"step", "solution", "fix", "implement", "change", "add", "remove",
		},
	}
}

// Load reads a YAML file and overlays it on the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.MaxEntries <= 0 {
		return nil, fmt.Errorf("max_entries must be positive, got %d", cfg.MaxEntries)
	}
	if cfg.RecentSize <= 0 {
		return nil, fmt.Errorf("recent_size must be positive, got %d", cfg.RecentSize)
	}
	return cfg, nil
}
