// Package harness runs conformance suites against one backend and
// classifies each (scenario, operation) result.
//
// # Suite Format
//
// Suites are YAML files decoded by the scenario package:
//
//	name: grouping
//	defaults:
//	  pattern: "#,##0.##"
//	scenarios:
//	  - name: basic
//	    format: 1234.5
//	    output: "1,234.5"
//	  - name: strict-parse
//	    lenient: false
//	    parse: "1,23,4"
//	    output: fail
//	    breaks: [legacy]
//
// # Verdicts
//
// Each operation a scenario asks for yields one Verdict:
//
//	pass           result matched
//	fail           result diverged
//	known_failure  result diverged or errored on a backend listed in breaks
//	gap            result diverged while the backend had capability gaps
//	declined       backend does not implement the operation
//	error          evaluation aborted (malformed token, engine rejection)
//
// Only fail and error count against a run.
//
// # Golden Files
//
// Report JSON is stable (fixed field order, verdicts in suite order), so
// reports can be compared against golden files with AssertGolden:
//
//	go test ./internal/harness -update
package harness
