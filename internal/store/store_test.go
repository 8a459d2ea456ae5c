package store

import (
	"strings"
	"testing"
	"time"

	"github.com/agentmem/mempress/internal/config"
	"github.com/agentmem/mempress/internal/model"
)

var testClock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, cfg *config.Config) *Store {
	t.Helper()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	s.now = func() time.Time { return testClock }
	return s
}

// addEntry commits a crafted entry directly, bypassing compression, so
// tests can control importance and age precisely.
func addEntry(s *Store, id string, importance float64, age time.Duration) {
	s.insert(&model.Memory{
		ID:         id,
		CreatedAt:  testClock.Add(-age),
		Kind:       model.KindGeneric,
		Original:   "original text for " + id,
		Compressed: "compressed " + id,
		Importance: importance,
	})
}

func TestCompressAndGet(t *testing.T) {
	s := newTestStore(t, nil)

	m, err := s.Compress("def f(): pass", model.KindCode, nil)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if !strings.HasPrefix(m.ID, "mem_") {
		t.Errorf("expected mem_ id prefix, got %q", m.ID)
	}
	if m.CompressionRatio <= 0 {
		t.Errorf("expected positive ratio, got %v", m.CompressionRatio)
	}
	if !strings.Contains(m.Compressed, "def f(): pass") {
		t.Errorf("expected function line retained, got %q", m.Compressed)
	}
	found := false
	for _, e := range m.Entities {
		if e == "function:f" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected function:f entity, got %v", m.Entities)
	}

	got, ok := s.Get(m.ID)
	if !ok {
		t.Fatal("expected entry to be retrievable")
	}
	if got.Original != "def f(): pass" {
		t.Errorf("unexpected original %q", got.Original)
	}

	if _, ok := s.Get("mem_nope"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestCompress_EmptyContent(t *testing.T) {
	s := newTestStore(t, nil)
	m, err := s.Compress("", model.KindGeneric, nil)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if m.CompressionRatio != 1.0 {
		t.Errorf("expected ratio 1.0 for empty input, got %v", m.CompressionRatio)
	}
	if m.Compressed != "" {
		t.Errorf("expected empty compressed text, got %q", m.Compressed)
	}
}

func TestCompress_DistinctIDsForIdenticalContent(t *testing.T) {
	s := newTestStore(t, nil)
	a, _ := s.Compress("same content", model.KindGeneric, nil)
	b, _ := s.Compress("same content", model.KindGeneric, nil)
	if a.ID == b.ID {
		t.Errorf("expected distinct ids, both %q", a.ID)
	}
	// Fingerprint component matches, entropy component differs.
	if strings.SplitN(a.ID, "_", 3)[1] != strings.SplitN(b.ID, "_", 3)[1] {
		t.Error("expected identical fingerprint segments for identical content")
	}
}

func TestBatchCompress(t *testing.T) {
	s := newTestStore(t, nil)
	n := s.BatchCompress([]BatchItem{
		{Content: "first snippet", Kind: model.KindConversation},
		{Content: ""}, // skipped, not an error
		{Content: "third snippet"},
	})
	if n != 2 {
		t.Errorf("expected 2 compressed, got %d", n)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", s.Len())
	}
}

func TestRecentRingOverflow(t *testing.T) {
	cfg := config.Default()
	cfg.RecentSize = 3
	s := newTestStore(t, cfg)

	var ids []string
	for i := 0; i < 5; i++ {
		m, _ := s.Compress(strings.Repeat("content ", i+1), model.KindGeneric, nil)
		ids = append(ids, m.ID)
	}

	if len(s.recent) != 3 {
		t.Fatalf("expected ring of 3, got %d", len(s.recent))
	}
	for i, want := range ids[2:] {
		if s.recent[i] != want {
			t.Errorf("ring[%d]: expected %s, got %s", i, want, s.recent[i])
		}
	}
}

func TestExportInsertionOrder(t *testing.T) {
	s := newTestStore(t, nil)
	addEntry(s, "mem_a", 0.1, 0)
	addEntry(s, "mem_b", 0.9, 0)
	addEntry(s, "mem_c", 0.5, 0)

	out := s.Export()
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}
	if out[0].ID != "mem_a" || out[1].ID != "mem_b" || out[2].ID != "mem_c" {
		t.Errorf("unexpected order: %s %s %s", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestReset(t *testing.T) {
	s := newTestStore(t, nil)
	s.Compress("some content with enough length to matter", model.KindGeneric, nil)
	sum, ok := s.Summarize(model.SummarySession, nil)
	if !ok {
		t.Fatal("expected summary before reset")
	}

	s.Reset()

	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
	st := s.Stats()
	if st.TotalMemories != 0 || st.TotalOriginalBytes != 0 || st.Compressions != 0 {
		t.Errorf("expected zeroed stats, got %+v", st)
	}
	if _, ok := s.GetSummary(sum.ID); ok {
		t.Error("expected summaries cleared by reset")
	}
	// Store stays usable.
	if _, err := s.Compress("after reset", model.KindGeneric, nil); err != nil {
		t.Fatalf("compress after reset: %v", err)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t, nil)

	empty := s.Stats()
	if empty.CompressionRatio != 0 || empty.AvgImportance != 0 || empty.SpaceSavedPct != 0 {
		t.Errorf("expected zero stats for empty store, got %+v", empty)
	}

	s.Compress(strings.Repeat("The fix must handle the error case. ", 40), model.KindConversation, nil)
	s.Compress("def f(): pass", model.KindCode, nil)

	st := s.Stats()
	if st.TotalMemories != 2 {
		t.Errorf("expected 2 memories, got %d", st.TotalMemories)
	}
	if st.Kinds[model.KindConversation] != 1 || st.Kinds[model.KindCode] != 1 {
		t.Errorf("unexpected kind distribution %v", st.Kinds)
	}
	wantRatio := float64(st.TotalCompressedBytes) / float64(st.TotalOriginalBytes)
	if st.CompressionRatio != wantRatio {
		t.Errorf("ratio mismatch: %v vs %v", st.CompressionRatio, wantRatio)
	}
	if st.SpaceSavedPct != (1-wantRatio)*100 {
		t.Errorf("space saved mismatch: %v", st.SpaceSavedPct)
	}
	if st.AvgImportance <= 0 {
		t.Errorf("expected positive average importance, got %v", st.AvgImportance)
	}
}
