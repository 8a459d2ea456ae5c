package store

import (
	"sort"
	"time"

	"github.com/agentmem/mempress/internal/model"
)

// evict removes the n lowest combined-score entries and keeps the
// running totals consistent. Caller holds the lock.
//
// combined = importance*w_i + recency*w_r, where recency decays
// linearly from 1 to 0 over the configured decay window and stays 0
// beyond it. Ties fall back to insertion order, oldest first.
func (s *Store) evict(n int) {
	if n <= 0 {
		return
	}

	now := s.now().UTC()
	window := time.Duration(s.cfg.Eviction.DecayDays * 24 * float64(time.Hour))

	type candidate struct {
		id       string
		combined float64
		seq      uint64
	}
	cands := make([]candidate, 0, len(s.entries))
	for id, m := range s.entries {
		cands = append(cands, candidate{
			id:       id,
			combined: s.combinedScore(m, now, window),
			seq:      s.order[id],
		})
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].combined != cands[j].combined {
			return cands[i].combined < cands[j].combined
		}
		return cands[i].seq < cands[j].seq
	})

	if n > len(cands) {
		n = len(cands)
	}
	for _, c := range cands[:n] {
		m := s.entries[c.id]
		s.totalOriginal -= int64(len(m.Original))
		s.totalCompressed -= int64(len(m.Compressed))
		delete(s.entries, c.id)
		delete(s.order, c.id)
	}
}

func (s *Store) combinedScore(m *model.Memory, now time.Time, window time.Duration) float64 {
	recency := 1 - float64(now.Sub(m.CreatedAt))/float64(window)
	if recency < 0 {
		recency = 0
	}
	return m.Importance*s.cfg.Eviction.ImportanceWeight + recency*s.cfg.Eviction.RecencyWeight
}

func sortBySeq(ms []*model.Memory, order map[string]uint64) {
	sort.Slice(ms, func(i, j int) bool {
		return order[ms[i].ID] < order[ms[j].ID]
	})
}
