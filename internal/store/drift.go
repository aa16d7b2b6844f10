package store

import (
	"context"

	"github.com/roach88/numconform/internal/backend"
	"github.com/roach88/numconform/internal/harness"
)

// Change is one (scenario, op) whose status differs between two runs. An
// empty status means the pair is absent from that run.
type Change struct {
	Scenario string         `json:"scenario"`
	Op       backend.Op     `json:"op"`
	Before   harness.Status `json:"before"`
	After    harness.Status `json:"after"`
}

// Regression reports whether the change moved a verdict into a status
// that counts against a run.
func (c Change) Regression() bool {
	return c.After.Counts() && !c.Before.Counts()
}

type verdictKey struct {
	scenario string
	op       backend.Op
}

// Drift compares two stored runs. Changes are listed in the order of the
// later run's verdicts, followed by pairs that only the earlier run has.
func (s *Store) Drift(ctx context.Context, fromID, toID string) ([]Change, error) {
	if _, err := s.ReadRun(ctx, fromID); err != nil {
		return nil, err
	}
	if _, err := s.ReadRun(ctx, toID); err != nil {
		return nil, err
	}
	before, err := s.ReadVerdicts(ctx, fromID)
	if err != nil {
		return nil, err
	}
	after, err := s.ReadVerdicts(ctx, toID)
	if err != nil {
		return nil, err
	}

	prior := make(map[verdictKey]harness.Status, len(before))
	for _, v := range before {
		prior[verdictKey{v.Scenario, v.Op}] = v.Status
	}

	changes := []Change{}
	seen := make(map[verdictKey]bool, len(after))
	for _, v := range after {
		k := verdictKey{v.Scenario, v.Op}
		seen[k] = true
		if old := prior[k]; old != v.Status {
			changes = append(changes, Change{Scenario: v.Scenario, Op: v.Op, Before: old, After: v.Status})
		}
	}
	for _, v := range before {
		if k := (verdictKey{v.Scenario, v.Op}); !seen[k] {
			changes = append(changes, Change{Scenario: v.Scenario, Op: v.Op, Before: v.Status})
		}
	}
	return changes, nil
}
