// Package extract pulls salient tokens out of memory content:
// identifiers from code, error classes and file paths from errors,
// quoted and capitalized terms from everything else.
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/agentmem/mempress/internal/config"
	"github.com/agentmem/mempress/internal/model"
)

const (
	// maxEntities caps the entity set of a single memory.
	maxEntities = 20
	// maxCapitalized caps capitalized-token harvesting for generic text.
	maxCapitalized = 10
)

var (
	fileRefRe     = regexp.MustCompile(`File "([^"]+)"`)
	quotedRe      = regexp.MustCompile(`"([^"]+)"`)
	backtickRe    = regexp.MustCompile("`([^`]+)`")
	capitalizedRe = regexp.MustCompile(`\b[A-Z][a-zA-Z]+\b`)
)

type categoryRe struct {
	category string
	re       *regexp.Regexp
}

// Extractor derives entity sets from raw content. It is pure and safe
// for concurrent use once constructed.
type Extractor struct {
	codePatterns []categoryRe
	errorClass   *regexp.Regexp
}

// New builds an Extractor from the configured pattern tables.
func New(cfg *config.Config) (*Extractor, error) {
	e := &Extractor{}

	categories := make([]string, 0, len(cfg.CodeEntityPatterns))
	for cat := range cfg.CodeEntityPatterns {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		re, err := regexp.Compile(cfg.CodeEntityPatterns[cat])
		if err != nil {
			return nil, fmt.Errorf("entity pattern %q: %w", cat, err)
		}
		if re.NumSubexp() != 1 {
			return nil, fmt.Errorf("entity pattern %q: want exactly one capture group", cat)
		}
		e.codePatterns = append(e.codePatterns, categoryRe{category: cat, re: re})
	}

	re, err := regexp.Compile(cfg.ErrorClassPattern)
	if err != nil {
		return nil, fmt.Errorf("error class pattern: %w", err)
	}
	e.errorClass = re

	return e, nil
}

// Extract returns up to maxEntities distinct entities for the given
// content and kind. Result order is first-seen but not significant.
func (e *Extractor) Extract(text, kind string) []string {
	var raw []string

	switch kind {
	case model.KindCode:
		for _, cp := range e.codePatterns {
			for _, m := range cp.re.FindAllStringSubmatch(text, -1) {
				raw = append(raw, cp.category+":"+m[1])
			}
		}
	case model.KindError:
		raw = append(raw, e.errorClass.FindAllString(text, -1)...)
		for _, m := range fileRefRe.FindAllStringSubmatch(text, -1) {
			raw = append(raw, "file:"+m[1])
		}
	default:
		for _, m := range quotedRe.FindAllStringSubmatch(text, -1) {
			raw = append(raw, m[1])
		}
		for _, m := range backtickRe.FindAllStringSubmatch(text, -1) {
			raw = append(raw, m[1])
		}
		terms := capitalizedRe.FindAllString(text, -1)
		if len(terms) > maxCapitalized {
			terms = terms[:maxCapitalized]
		}
		raw = append(raw, terms...)
	}

	return dedup(raw, maxEntities)
}

func dedup(in []string, limit int) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
