package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator returns predetermined run IDs for testing.
//
// This enables deterministic verdict ledgers and golden comparison.
// Thread-safety: FixedIDGenerator is safe for concurrent use via internal mutex.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
//
// Example:
//
//	gen := NewFixedIDGenerator("run-1", "run-2")
//	gen.Generate() // "run-1"
//	gen.Generate() // "run-2"
//	gen.Generate() // panic: all IDs exhausted
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
//
// Panics if all IDs have been consumed; a test that records more runs than
// it planned for is misconfigured.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic(fmt.Sprintf("FixedIDGenerator: all %d IDs exhausted", len(g.ids)))
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
