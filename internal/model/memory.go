// Package model defines the core memory data types.
package model

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Memory represents a single compressed, scored, indexed unit of
// retained text. Entries are immutable after creation; they disappear
// only through eviction or an explicit store reset.
type Memory struct {
	ID               string         `json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	Kind             string         `json:"kind"`
	Original         string         `json:"original"`
	Compressed       string         `json:"compressed"`
	Entities         []string       `json:"entities,omitempty"`
	Importance       float64        `json:"importance"`
	CompressionRatio float64        `json:"compression_ratio"`
	Meta             map[string]any `json:"meta,omitempty"`
}

// Summary is a rollup of multiple entries' key points, entities, and
// decisions. Summaries live outside the capacity-bounded collection and
// are never evicted.
type Summary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Kind      string    `json:"kind"`
	KeyPoints []string  `json:"key_points,omitempty"`
	Entities  []string  `json:"entities,omitempty"`
	Decisions []string  `json:"decisions,omitempty"`
	MemoryIDs []string  `json:"memory_ids,omitempty"`
}

// Recognized memory kinds. The kind field is an open enum: unrecognized
// values are stored verbatim and compressed with generic behavior.
const (
	KindConversation = "conversation"
	KindCode         = "code"
	KindError        = "error"
	KindSolution     = "solution"
	KindContext      = "context"
	KindGeneric      = "generic"
)

// ValidKinds are the kinds with dedicated compression strategies.
var ValidKinds = map[string]bool{
	KindConversation: true,
	KindCode:         true,
	KindError:        true,
	KindSolution:     true,
	KindContext:      true,
	KindGeneric:      true,
}

// Summary kinds.
const (
	SummarySession = "session"
	SummaryTask    = "task"
	SummaryProject = "project"
)

// NewMemoryID builds a memory id from a content fingerprint and a ULID.
// The fingerprint ties the id to the content; the ULID carries the
// creation timestamp plus entropy, so identical content submitted twice
// still yields distinct ids.
func NewMemoryID(content string, now time.Time, entropy *rand.Rand) string {
	h := fnv.New64a()
	h.Write([]byte(content))
	return fmt.Sprintf("mem_%08x_%s", h.Sum64()&0xffffffff, ulid.MustNew(ulid.Timestamp(now), entropy))
}

// NewSummaryID builds a summary id for the given summary kind.
func NewSummaryID(kind string, now time.Time, entropy *rand.Rand) string {
	return fmt.Sprintf("summary_%s_%s", kind, ulid.MustNew(ulid.Timestamp(now), entropy))
}
