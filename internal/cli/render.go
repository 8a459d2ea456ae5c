package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agentmem/mempress/internal/model"
	"github.com/agentmem/mempress/internal/store"
)

const previewLen = 100

// renderSearch formats ranked results as a numbered report.
func renderSearch(results []store.SearchResult) string {
	if len(results) == 0 {
		return "No matching memories found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matching memories:\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, r.ID)
		fmt.Fprintf(&b, "   kind: %s  importance: %.2f  compression: %.1f%%  score: %.2f\n",
			r.Kind, r.Importance, r.CompressionRatio*100, r.Score)
		fmt.Fprintf(&b, "   content: %s\n", preview(r.Compressed, previewLen))
		if len(r.Entities) > 0 {
			fmt.Fprintf(&b, "   entities: %s\n", strings.Join(head(r.Entities, 5), ", "))
		}
	}
	return b.String()
}

// renderStats formats the aggregate report.
func renderStats(st store.Stats) string {
	var b strings.Builder
	b.WriteString("Memory compression statistics\n")
	fmt.Fprintf(&b, "  memories:     %d\n", st.TotalMemories)
	fmt.Fprintf(&b, "  ratio:        %.1f%%\n", st.CompressionRatio*100)
	fmt.Fprintf(&b, "  space saved:  %.1f%%\n", st.SpaceSavedPct)
	fmt.Fprintf(&b, "  avg score:    %.2f\n", st.AvgImportance)
	fmt.Fprintf(&b, "  original:     %d bytes\n", st.TotalOriginalBytes)
	fmt.Fprintf(&b, "  compressed:   %d bytes\n", st.TotalCompressedBytes)
	if len(st.Kinds) > 0 {
		b.WriteString("  kinds:\n")
		for kind, n := range st.Kinds {
			fmt.Fprintf(&b, "    %s: %d\n", kind, n)
		}
	}
	return b.String()
}

// renderSummary formats a rollup summary report.
func renderSummary(sum model.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summary %s (%s, %d memories)\n", sum.ID, sum.Kind, len(sum.MemoryIDs))
	if len(sum.KeyPoints) > 0 {
		fmt.Fprintf(&b, "  key points (%d):\n", len(sum.KeyPoints))
		for i, p := range sum.KeyPoints {
			fmt.Fprintf(&b, "    %d. %s\n", i+1, preview(p, previewLen))
		}
	}
	if len(sum.Entities) > 0 {
		fmt.Fprintf(&b, "  entities: %s\n", strings.Join(head(sum.Entities, 10), ", "))
	}
	if len(sum.Decisions) > 0 {
		fmt.Fprintf(&b, "  decisions: %d\n", len(sum.Decisions))
	}
	return b.String()
}

func preview(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	// Snap back to a rune boundary so the cut never splits a multibyte
	// character.
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

func head(ss []string, n int) []string {
	if len(ss) > n {
		return ss[:n]
	}
	return ss
}
