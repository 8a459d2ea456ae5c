package store

import (
	"strings"

	"github.com/agentmem/mempress/internal/model"
)

const (
	maxKeyPoints       = 10
	maxSummaryEntities = 15
	decisionTail       = 3 // key points taken from each solution entry
	minKeyPointLen     = 20
)

// Summarize rolls the given entries up into a stored summary. A nil id
// list uses the recent ring; ids that no longer resolve (eviction may
// have removed them) are skipped silently. Returns false when nothing
// resolves.
func (s *Store) Summarize(kind string, ids []string) (model.Summary, bool) {
	if kind == "" {
		kind = model.SummarySession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ids == nil {
		ids = append([]string(nil), s.recent...)
	}

	var mems []*model.Memory
	var included []string
	for _, id := range ids {
		if m, ok := s.entries[id]; ok {
			mems = append(mems, m)
			included = append(included, id)
		}
	}
	if len(mems) == 0 {
		return model.Summary{}, false
	}

	var keyPoints []string
	var decisions []string
	var entities []string
	seenEntity := make(map[string]bool)

	for _, m := range mems {
		var own []string
		for _, line := range strings.Split(m.Compressed, "\n") {
			if t := strings.TrimSpace(line); len(t) > minKeyPointLen {
				own = append(own, t)
			}
		}
		keyPoints = append(keyPoints, own...)

		for _, e := range m.Entities {
			if !seenEntity[e] {
				seenEntity[e] = true
				entities = append(entities, e)
			}
		}

		if m.Kind == model.KindSolution {
			tail := own
			if len(tail) > decisionTail {
				tail = tail[len(tail)-decisionTail:]
			}
			for _, p := range tail {
				decisions = append(decisions, m.Kind+":"+p)
			}
		}
	}

	if len(keyPoints) > maxKeyPoints {
		keyPoints = keyPoints[:maxKeyPoints]
	}
	if len(entities) > maxSummaryEntities {
		entities = entities[:maxSummaryEntities]
	}

	now := s.now().UTC()
	sum := &model.Summary{
		ID:        model.NewSummaryID(kind, now, s.entropy),
		CreatedAt: now,
		Kind:      kind,
		KeyPoints: keyPoints,
		Entities:  entities,
		Decisions: decisions,
		MemoryIDs: included,
	}
	s.summaries[sum.ID] = sum
	return *sum, true
}

// GetSummary returns the summary with the given id, or false when
// absent.
func (s *Store) GetSummary(id string) (model.Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, ok := s.summaries[id]
	if !ok {
		return model.Summary{}, false
	}
	return *sum, true
}
