// Package compress reduces memory content to a denser representative
// form, dispatched on the content kind. Each strategy keeps the
// substrings most likely needed for later recall: structure for code,
// diagnostic anchors for errors, actionable steps for solutions.
package compress

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agentmem/mempress/internal/config"
	"github.com/agentmem/mempress/internal/model"
)

const (
	// segmentMarker stands in for elided conversation segments.
	segmentMarker = "[...]"
	// genericMarker stands in for elided middles of generic text.
	genericMarker = "[... compressed ...]"

	minSegmentLen   = 10
	frameThreshold  = 10 // segments before head/tail framing kicks in
	frameSegments   = 3
	errorMaxLines   = 20
	errorHeadLines  = 10
	solutionFrame   = 2
	genericMaxLen   = 500
	genericKeepLen  = 250
	errFallbackKeep = 500
)

var (
	sentenceRe = regexp.MustCompile(`[.!?]`)
	bulletRe   = regexp.MustCompile(`^\d+\.|^[-*+]\s`)
)

// Compressor applies kind-dispatched compression strategies. It is pure
// and safe for concurrent use once constructed.
type Compressor struct {
	codePatterns  []*regexp.Regexp
	errorClass    *regexp.Regexp
	errorMarkers  []string
	importanceKws []string
	actionKws     []string
}

// New builds a Compressor from the configured pattern tables.
func New(cfg *config.Config) (*Compressor, error) {
	c := &Compressor{
		errorMarkers:  cfg.ErrorMarkers,
		importanceKws: cfg.ImportanceKeywords,
		actionKws:     cfg.ActionKeywords,
	}

	// Stable ordering keeps behavior independent of map iteration.
	names := make([]string, 0, len(cfg.CodePatterns))
	for name := range cfg.CodePatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		re, err := regexp.Compile(cfg.CodePatterns[name])
		if err != nil {
			return nil, fmt.Errorf("code pattern %q: %w", name, err)
		}
		c.codePatterns = append(c.codePatterns, re)
	}

	re, err := regexp.Compile(cfg.ErrorClassPattern)
	if err != nil {
		return nil, fmt.Errorf("error class pattern: %w", err)
	}
	c.errorClass = re

	return c, nil
}

// Compress reduces text according to its kind. Empty input is returned
// unchanged; non-empty input always yields non-empty output.
func (c *Compressor) Compress(text, kind string) string {
	if text == "" {
		return text
	}

	var out string
	switch kind {
	case model.KindConversation:
		out = c.conversation(text)
	case model.KindCode:
		out = c.code(text)
	case model.KindError:
		out = c.errorText(text)
	case model.KindSolution:
		out = c.solution(text)
	default:
		out = c.generic(text)
	}

	// A strategy that retained nothing renderable must not discard the
	// entry's content entirely.
	if strings.TrimSpace(out) == "" {
		out = c.generic(text)
	}
	return out
}

// conversation keeps sentence-like segments that are substantial and
// carry an importance keyword, framed by the opening and closing
// segments when the conversation is long.
func (c *Compressor) conversation(text string) string {
	var segments []string
	for _, raw := range sentenceRe.Split(text, -1) {
		if t := strings.TrimSpace(raw); t != "" {
			segments = append(segments, t)
		}
	}

	var kept []string
	for _, seg := range segments {
		if len(seg) <= minSegmentLen {
			continue
		}
		if containsAny(strings.ToLower(seg), c.importanceKws) {
			kept = append(kept, seg)
		}
	}

	var out []string
	if len(segments) > frameThreshold {
		out = append(out, segments[:frameSegments]...)
		out = append(out, segmentMarker)
		out = append(out, kept...)
		out = append(out, segmentMarker)
		out = append(out, segments[len(segments)-frameSegments:]...)
	} else {
		out = segments
	}

	return strings.Join(out, ". ")
}

// code keeps structurally significant lines: imports, definitions,
// assignments, traceback references, test markers.
func (c *Compressor) code(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string

	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, "//") {
			continue
		}
		for _, re := range c.codePatterns {
			if re.MatchString(t) {
				kept = append(kept, t)
				break
			}
		}
	}

	if len(lines) > len(kept)*2 {
		kept = append([]string{fmt.Sprintf("# compressed: %d -> %d lines", len(lines), len(kept))}, kept...)
	}

	return strings.Join(kept, "\n")
}

// errorText keeps diagnostic lines: error/exception markers, traceback
// and file references, and UppercaseWordError-style tokens.
func (c *Compressor) errorText(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if containsAny(strings.ToLower(t), c.errorMarkers) || c.errorClass.MatchString(t) {
			kept = append(kept, t)
		}
	}

	if len(kept) == 0 {
		if len(text) > 2*errFallbackKeep {
			return cutHead(text, errFallbackKeep) + "\n" + segmentMarker + "\n" + cutTail(text, errFallbackKeep)
		}
		return text
	}

	if len(kept) > errorMaxLines {
		omitted := len(kept) - 2*errorHeadLines
		head := kept[:errorHeadLines]
		tail := kept[len(kept)-errorHeadLines:]
		kept = append(append(append([]string{}, head...),
			fmt.Sprintf("[... %d more error lines ...]", omitted)), tail...)
	}

	return strings.Join(kept, "\n")
}

// solution keeps numbered or bulleted steps and action lines, framed by
// the opening and closing lines when little was retained.
func (c *Compressor) solution(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string

	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if bulletRe.MatchString(t) || containsAny(strings.ToLower(t), c.actionKws) {
			kept = append(kept, t)
		}
	}

	if len(lines) > len(kept)*2 {
		var out []string
		out = append(out, trimLines(lines[:min(solutionFrame, len(lines))])...)
		out = append(out, kept...)
		if len(lines) > solutionFrame {
			out = append(out, trimLines(lines[len(lines)-solutionFrame:])...)
		}
		return strings.Join(out, "\n")
	}

	return strings.Join(kept, "\n")
}

// generic truncates long text, keeping head and tail.
func (c *Compressor) generic(text string) string {
	if len(text) > genericMaxLen {
		return cutHead(text, genericKeepLen) + "\n" + genericMarker + "\n" + cutTail(text, genericKeepLen)
	}
	return text
}

// cutHead keeps at most n leading bytes, snapping the cut back to a
// rune boundary so truncation never produces invalid UTF-8.
func cutHead(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// cutTail keeps at most n trailing bytes, snapping the cut forward to
// a rune boundary.
func cutTail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := len(s) - n
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return s[i:]
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func trimLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}
