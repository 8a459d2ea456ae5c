package store

import (
	"fmt"
	"testing"

	"github.com/agentmem/mempress/internal/config"
	"github.com/agentmem/mempress/internal/model"
)

func TestSearch_Basic(t *testing.T) {
	s := newTestStore(t, nil)

	s.Compress("Go is a compiled language with goroutines", model.KindConversation, nil)
	s.Compress("Python is an interpreted language", model.KindConversation, nil)
	s.Compress("Rust has a borrow checker", model.KindConversation, nil)

	results := s.Search(SearchParams{Query: "language"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	results = s.Search(SearchParams{Query: "zzz-no-such-token"})
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestSearch_KindFilterAndLimit(t *testing.T) {
	s := newTestStore(t, nil)

	s.Compress("retry the request", model.KindConversation, nil)
	s.Compress("retry := backoff.New()", model.KindCode, nil)
	s.Compress("we should retry on 503", model.KindSolution, nil)

	results := s.Search(SearchParams{Query: "retry", Kind: model.KindCode})
	if len(results) != 1 {
		t.Fatalf("expected 1 code result, got %d", len(results))
	}
	if results[0].Kind != model.KindCode {
		t.Errorf("expected code kind, got %s", results[0].Kind)
	}

	results = s.Search(SearchParams{Query: "retry", Limit: 2})
	if len(results) != 2 {
		t.Fatalf("expected limit to cap results at 2, got %d", len(results))
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Search.DefaultLimit = 5
	s := newTestStore(t, cfg)

	for i := 0; i < 8; i++ {
		s.Compress(fmt.Sprintf("shared needle number %d", i), model.KindConversation, nil)
	}
	results := s.Search(SearchParams{Query: "needle"})
	if len(results) != 5 {
		t.Fatalf("expected default limit 5, got %d", len(results))
	}
}

func TestSearch_RankedDescending(t *testing.T) {
	s := newTestStore(t, nil)

	// Content hit (1.0) plus entity hit (0.5) outranks content-only.
	addEntry(s, "mem_both", 0.0, 0)
	s.entries["mem_both"].Compressed = "the parser broke"
	s.entries["mem_both"].Entities = []string{"parser"}

	addEntry(s, "mem_content", 0.0, 0)
	s.entries["mem_content"].Compressed = "parser output was fine"

	results := s.Search(SearchParams{Query: "parser", Limit: 10})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "mem_both" {
		t.Errorf("expected entity+content hit ranked first, got %s", results[0].ID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted descending at %d", i)
		}
	}
}

func TestSearch_EntityOnlyHit(t *testing.T) {
	s := newTestStore(t, nil)

	addEntry(s, "mem_ent", 0.4, 0)
	s.entries["mem_ent"].Compressed = "shortened body"
	s.entries["mem_ent"].Entities = []string{"function:frobnicate", "module:os"}

	results := s.Search(SearchParams{Query: "frobnicate"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	// entity weight 0.5 + importance 0.4*0.3
	want := 0.5 + 0.4*0.3
	if diff := results[0].Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected score %v, got %v", want, results[0].Score)
	}
}

func TestSearch_ImportanceAloneNeverMatches(t *testing.T) {
	s := newTestStore(t, nil)

	addEntry(s, "mem_vip", 5.0, 0)
	s.entries["mem_vip"].Compressed = "unrelated body"
	s.entries["mem_vip"].Entities = []string{"unrelated"}

	if results := s.Search(SearchParams{Query: "missing-token"}); len(results) != 0 {
		t.Errorf("expected no results without a substring hit, got %d", len(results))
	}
}

func TestSearch_EntityMatchCountedOnce(t *testing.T) {
	s := newTestStore(t, nil)

	addEntry(s, "mem_multi", 0.0, 0)
	s.entries["mem_multi"].Compressed = "nothing relevant"
	s.entries["mem_multi"].Entities = []string{"widget:a", "widget:b", "widget:c"}

	results := s.Search(SearchParams{Query: "widget"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score != 0.5 {
		t.Errorf("expected single entity bonus 0.5, got %v", results[0].Score)
	}
}
