// Package score computes importance scores for memory content.
//
// The importance score is a weighted sum of independent factors, each
// normalized to [0,1] before weighting. The sum is deliberately not
// re-normalized: code entries with high structural complexity can score
// slightly above other kinds, which is a useful recall-value signal.
package score

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentmem/mempress/internal/config"
	"github.com/agentmem/mempress/internal/model"
)

// perPatternCap bounds any single complexity pattern's contribution.
const perPatternCap = 0.5

type weightedRe struct {
	re     *regexp.Regexp
	weight float64
}

// Scorer computes importance and code-complexity scores. It is pure and
// safe for concurrent use once constructed.
type Scorer struct {
	weights    config.Scoring
	errorWords []string
	complexity []weightedRe
}

// New builds a Scorer from the configured weights and pattern tables.
func New(cfg *config.Config) (*Scorer, error) {
	s := &Scorer{
		weights:    cfg.Scoring,
		errorWords: cfg.ErrorKeywords,
	}
	for _, wp := range cfg.ComplexityPatterns {
		re, err := regexp.Compile(wp.Pattern)
		if err != nil {
			return nil, fmt.Errorf("complexity pattern %q: %w", wp.Pattern, err)
		}
		s.complexity = append(s.complexity, weightedRe{re: re, weight: wp.Weight})
	}
	return s, nil
}

// Importance scores content for future recall value.
//
// Factors: content length, error-vocabulary density, code complexity
// (code kind only), caller-supplied relevance (only when present in
// meta), and a fixed creation-time recency placeholder. True recency is
// recomputed at eviction time, never stored back onto the entry.
func (s *Scorer) Importance(text, kind string, meta map[string]any) float64 {
	var total float64

	length := float64(len(text)) / float64(s.weights.LengthNorm)
	if length > 1 {
		length = 1
	}
	total += length * s.weights.LengthWeight

	if len(s.errorWords) > 0 {
		lower := strings.ToLower(text)
		found := 0
		for _, w := range s.errorWords {
			if strings.Contains(lower, w) {
				found++
			}
		}
		total += float64(found) / float64(len(s.errorWords)) * s.weights.ErrorWeight
	}

	if kind == model.KindCode {
		total += s.Complexity(text) * s.weights.ComplexityWeight
	}

	// Omission, not zero-fill: no relevance key means no signal, which
	// is distinct from an explicitly low relevance.
	if rel, ok := relevance(meta); ok {
		total += rel * s.weights.ContextWeight
	}

	total += s.weights.RecencyWeight

	return total
}

// Complexity scores structural density of code text. Each pattern's
// contribution is capped, and the overall score is capped at 1.
func (s *Scorer) Complexity(code string) float64 {
	var total float64
	for _, wr := range s.complexity {
		c := float64(len(wr.re.FindAllStringIndex(code, -1))) * wr.weight
		if c > perPatternCap {
			c = perPatternCap
		}
		total += c
	}
	if total > 1 {
		total = 1
	}
	return total
}

// relevance reads the caller-supplied relevance signal, clamped to
// [0,1] so an out-of-range value cannot push the score negative or
// past its weight.
func relevance(meta map[string]any) (float64, bool) {
	if meta == nil {
		return 0, false
	}
	var rel float64
	switch v := meta["relevance"].(type) {
	case float64:
		rel = v
	case float32:
		rel = float64(v)
	case int:
		rel = float64(v)
	default:
		return 0, false
	}
	if rel < 0 {
		rel = 0
	} else if rel > 1 {
		rel = 1
	}
	return rel, true
}
