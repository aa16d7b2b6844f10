package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares a report's JSON against a golden file stored in
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, report *Report) {
	t.Helper()

	data, err := report.JSON()
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, append(data, '\n'))
}
