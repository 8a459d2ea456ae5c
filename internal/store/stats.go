package store

// Stats holds running store statistics. Byte totals are maintained
// incrementally on insert and eviction, never by rescanning content.
type Stats struct {
	TotalMemories        int            `json:"total_memories"`
	CompressionRatio     float64        `json:"compression_ratio"`
	SpaceSavedPct        float64        `json:"space_saved_pct"`
	AvgImportance        float64        `json:"avg_importance"`
	TotalOriginalBytes   int64          `json:"total_original_bytes"`
	TotalCompressedBytes int64          `json:"total_compressed_bytes"`
	Compressions         uint64         `json:"compressions"`
	Kinds                map[string]int `json:"kinds,omitempty"`
}

// Stats returns an aggregate report over the current entries.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		TotalMemories:        len(s.entries),
		TotalOriginalBytes:   s.totalOriginal,
		TotalCompressedBytes: s.totalCompressed,
		Compressions:         s.compressions,
	}

	if s.totalOriginal > 0 {
		st.CompressionRatio = float64(s.totalCompressed) / float64(s.totalOriginal)
		st.SpaceSavedPct = (1 - st.CompressionRatio) * 100
	}

	if len(s.entries) > 0 {
		kinds := make(map[string]int)
		var sum float64
		for _, m := range s.entries {
			sum += m.Importance
			kinds[m.Kind]++
		}
		st.AvgImportance = sum / float64(len(s.entries))
		st.Kinds = kinds
	}

	return st
}
