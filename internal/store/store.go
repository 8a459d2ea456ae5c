// Package store provides the bounded in-memory collection of compressed
// memories: insertion, capacity-bounded eviction, ranked search, running
// statistics, and rollup summaries.
package store

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/agentmem/mempress/internal/compress"
	"github.com/agentmem/mempress/internal/config"
	"github.com/agentmem/mempress/internal/extract"
	"github.com/agentmem/mempress/internal/model"
	"github.com/agentmem/mempress/internal/score"
)

// BatchItem is one entry of a batch compression request.
type BatchItem struct {
	Content string         `json:"content"`
	Kind    string         `json:"kind"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Store owns all memory entries and summaries. A single mutex guards
// the entry map, recent ring, totals, and summaries; compression,
// scoring, and extraction run before the lock is taken.
type Store struct {
	cfg        *config.Config
	compressor *compress.Compressor
	scorer     *score.Scorer
	extractor  *extract.Extractor

	mu        sync.Mutex
	entries   map[string]*model.Memory
	order     map[string]uint64 // insertion sequence, for stable eviction ties
	seq       uint64
	recent    []string // ring of most recent ids, oldest dropped silently
	summaries map[string]*model.Summary

	totalOriginal   int64
	totalCompressed int64
	compressions    uint64

	entropy *rand.Rand
	now     func() time.Time
}

// New creates a Store from the given configuration. A nil cfg uses the
// defaults.
func New(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	compressor, err := compress.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("build compressor: %w", err)
	}
	scorer, err := score.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("build scorer: %w", err)
	}
	extractor, err := extract.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}

	return &Store{
		cfg:        cfg,
		compressor: compressor,
		scorer:     scorer,
		extractor:  extractor,
		entries:    make(map[string]*model.Memory),
		order:      make(map[string]uint64),
		summaries:  make(map[string]*model.Summary),
		entropy:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}, nil
}

// Compress scores, compresses, and indexes content, then commits the
// resulting entry. Inserting past the capacity bound triggers eviction
// of the lowest combined-score entries.
func (s *Store) Compress(content, kind string, meta map[string]any) (model.Memory, error) {
	if kind == "" {
		kind = model.KindGeneric
	}

	importance := s.scorer.Importance(content, kind, meta)
	compressed := s.compressor.Compress(content, kind)
	entities := s.extractor.Extract(content, kind)

	ratio := 1.0
	if len(content) > 0 {
		ratio = float64(len(compressed)) / float64(len(content))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	m := &model.Memory{
		ID:               model.NewMemoryID(content, now, s.entropy),
		CreatedAt:        now,
		Kind:             kind,
		Original:         content,
		Compressed:       compressed,
		Entities:         entities,
		Importance:       importance,
		CompressionRatio: ratio,
		Meta:             meta,
	}
	s.insert(m)
	return *m, nil
}

// BatchCompress compresses each item in order, skipping items with
// empty content, and reports how many entries were created.
func (s *Store) BatchCompress(items []BatchItem) int {
	n := 0
	for _, it := range items {
		if it.Content == "" {
			continue
		}
		if _, err := s.Compress(it.Content, it.Kind, it.Meta); err != nil {
			continue
		}
		n++
	}
	return n
}

// insert commits an entry and enforces the capacity bound. Caller holds
// the lock.
func (s *Store) insert(m *model.Memory) {
	s.entries[m.ID] = m
	s.order[m.ID] = s.seq
	s.seq++

	s.recent = append(s.recent, m.ID)
	if len(s.recent) > s.cfg.RecentSize {
		s.recent = s.recent[1:]
	}

	s.totalOriginal += int64(len(m.Original))
	s.totalCompressed += int64(len(m.Compressed))
	s.compressions++

	if over := len(s.entries) - s.cfg.MaxEntries; over > 0 {
		s.evict(over)
	}
}

// Get returns the entry with the given id, or false when absent.
func (s *Store) Get(id string) (model.Memory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.entries[id]
	if !ok {
		return model.Memory{}, false
	}
	return *m, true
}

// Export returns all current entries in insertion order.
func (s *Store) Export() []model.Memory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Memory, 0, len(s.entries))
	for _, m := range s.sortedEntries() {
		out = append(out, *m)
	}
	return out
}

// Reset atomically clears entries, the recent ring, totals, and
// summaries. The instance stays usable.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*model.Memory)
	s.order = make(map[string]uint64)
	s.summaries = make(map[string]*model.Summary)
	s.recent = nil
	s.seq = 0
	s.totalOriginal = 0
	s.totalCompressed = 0
	s.compressions = 0
}

// Len reports the current entry count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sortedEntries returns entries in insertion order. Caller holds the
// lock.
func (s *Store) sortedEntries() []*model.Memory {
	out := make([]*model.Memory, 0, len(s.entries))
	for _, m := range s.entries {
		out = append(out, m)
	}
	sortBySeq(out, s.order)
	return out
}
