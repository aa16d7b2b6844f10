package harness

import (
	"github.com/roach88/numconform/internal/backend"
	"github.com/roach88/numconform/internal/scenario"
)

// GapRow lists, for one scenario, the fields each backend cannot apply.
type GapRow struct {
	Scenario string                  `json:"scenario"`
	Gaps     map[backend.ID][]string `json:"gaps"`
}

// CollectGaps computes capability gaps for every scenario of suite on
// every adapter. Scenarios without any gap are omitted. No operation is
// invoked.
func CollectGaps(suite *scenario.Suite, adapters []backend.Adapter) []GapRow {
	rows := []GapRow{}
	for i := range suite.Scenarios {
		sc := &suite.Scenarios[i]
		row := GapRow{Scenario: sc.Name, Gaps: map[backend.ID][]string{}}
		for _, a := range adapters {
			if names := fieldNames(a.Gaps(sc)); len(names) > 0 {
				row.Gaps[a.ID()] = names
			}
		}
		if len(row.Gaps) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}
