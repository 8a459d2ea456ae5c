package store

import (
	"sort"
	"strings"

	"github.com/agentmem/mempress/internal/model"
)

// SearchParams holds parameters for ranked retrieval.
type SearchParams struct {
	Query string
	Kind  string // optional kind filter
	Limit int    // <= 0 means the configured default
}

// SearchResult wraps a matching memory with its relevance score.
type SearchResult struct {
	model.Memory
	Score float64 `json:"score"`
}

// Search scans all entries and returns the ones matching the query,
// ranked by score. An entry scores the content weight for a substring
// hit in its compressed text, the entity weight for a hit in any entity
// (counted once), plus an importance bonus. Entries with no hit at all
// are excluded; the importance bonus alone never admits an entry.
func (s *Store) Search(p SearchParams) []SearchResult {
	limit := p.Limit
	if limit <= 0 {
		limit = s.cfg.Search.DefaultLimit
	}
	query := strings.ToLower(p.Query)

	s.mu.Lock()
	defer s.mu.Unlock()

	var results []SearchResult
	for _, m := range s.sortedEntries() {
		if p.Kind != "" && m.Kind != p.Kind {
			continue
		}

		var sc float64
		if strings.Contains(strings.ToLower(m.Compressed), query) {
			sc += s.cfg.Search.ContentWeight
		}
		for _, e := range m.Entities {
			if strings.Contains(strings.ToLower(e), query) {
				sc += s.cfg.Search.EntityWeight
				break
			}
		}
		if sc == 0 {
			continue
		}
		sc += m.Importance * s.cfg.Search.ImportanceWeight

		results = append(results, SearchResult{Memory: *m, Score: sc})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
