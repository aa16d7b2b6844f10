package harness

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numconform/internal/backend"
	"github.com/roach88/numconform/internal/platform"
	"github.com/roach88/numconform/internal/scenario"
	"github.com/roach88/numconform/internal/testutil"
)

const goldenSuite = `name: golden
scenarios:
  - name: format-ok
    format: 1234.5
    output: "1,234.50"
  - name: format-breaks
    format: 1
    output: "1.0"
    breaks: [legacy]
  - name: parse-fail-expected
    parse: abc
    output: fail
  - name: gap-mismatch
    minGroupingDigits: 2
    format: 1
    output: "x"
  - name: currency
    parse: "$1"
    output: 1
    outputCurrency: USD
  - name: engine-reject
    multiplier: 0
    format: 1
    output: "1"
`

func legacyAdapter() backend.Adapter {
	rec := &testutil.LegacyRecorder{Script: testutil.Script{
		Output: "1,234.50",
		Reject: map[string]error{"SetMultiplier": errors.New("multiplier must be nonzero")},
	}}
	return backend.NewLegacy(rec.Factory)
}

func decodeSuite(t *testing.T, src string) *scenario.Suite {
	t.Helper()
	suite, err := scenario.DecodeSuite([]byte(src))
	require.NoError(t, err)
	return suite
}

func TestRun_Golden(t *testing.T) {
	report := Run(context.Background(), decodeSuite(t, goldenSuite), legacyAdapter())

	assert.True(t, report.Failed(), "the error verdict counts against the run")
	AssertGolden(t, "legacy_report", report)
}

func TestRun_Classification(t *testing.T) {
	report := Run(context.Background(), decodeSuite(t, goldenSuite), legacyAdapter())

	got := map[string]Status{}
	for _, v := range report.Verdicts {
		got[v.Scenario] = v.Status
	}
	assert.Equal(t, map[string]Status{
		"format-ok":           StatusPass,
		"format-breaks":       StatusKnownFailure,
		"parse-fail-expected": StatusPass,
		"gap-mismatch":        StatusGap,
		"currency":            StatusDeclined,
		"engine-reject":       StatusError,
	}, got)
}

func TestRun_CleanSuitePasses(t *testing.T) {
	suite := decodeSuite(t, `name: clean
scenarios:
  - format: 1234.5
    output: "1,234.50"
  - parse: "x"
    output: fail
`)
	report := Run(context.Background(), suite, legacyAdapter())
	assert.False(t, report.Failed())
	assert.Equal(t, Summary{Total: 2, Pass: 2}, report.Summary)
}

func TestRun_DeclinesNeverCountAsPasses(t *testing.T) {
	suite := decodeSuite(t, `name: platform
scenarios:
  - parse: "$1.00"
    output: "1"
    outputCurrency: USD
  - parse: "fail me"
    output: fail
    outputCurrency: USD
`)
	report := Run(context.Background(), suite, backend.NewPlatform(platform.New))
	assert.Equal(t, 0, report.Summary.Pass)
	assert.Equal(t, 2, report.Summary.Declined)
	assert.False(t, report.Failed())
}

func TestRun_ErrorUnderBreaksIsKnownFailure(t *testing.T) {
	suite := decodeSuite(t, `name: x
scenarios:
  - multiplier: 0
    format: 1
    output: "1"
    breaks: [legacy]
`)
	report := Run(context.Background(), suite, legacyAdapter())
	require.Len(t, report.Verdicts, 1)
	assert.Equal(t, StatusKnownFailure, report.Verdicts[0].Status)
	assert.Contains(t, report.Verdicts[0].Diagnostic, "error: ")
	assert.False(t, report.Failed())
}

func TestRun_WithScenarios(t *testing.T) {
	report := Run(context.Background(), decodeSuite(t, goldenSuite), legacyAdapter(),
		WithScenarios("format-ok", "currency"))

	require.Len(t, report.Verdicts, 2)
	assert.Equal(t, "format-ok", report.Verdicts[0].Scenario)
	assert.Equal(t, "currency", report.Verdicts[1].Scenario)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := Run(ctx, decodeSuite(t, goldenSuite), legacyAdapter())
	assert.True(t, report.Incomplete)
	assert.Empty(t, report.Verdicts)
}

func TestRun_LogsVerdicts(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Run(context.Background(), decodeSuite(t, goldenSuite), legacyAdapter(),
		WithLogger(logger), WithScenarios("gap-mismatch"))

	out := buf.String()
	assert.Contains(t, out, "msg=verdict")
	assert.Contains(t, out, "scenario=gap-mismatch")
	assert.Contains(t, out, "backend=legacy")
	assert.Contains(t, out, "status=gap")
}

func TestReport_WriteText(t *testing.T) {
	report := Run(context.Background(), decodeSuite(t, goldenSuite), legacyAdapter())

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, TextOptions{}))
	out := buf.String()

	assert.Contains(t, out, "golden")
	assert.Contains(t, out, "gap-mismatch")
	assert.Contains(t, out, "[gaps: minGroupingDigits]")
	assert.Contains(t, out, "legacy configure: multiplier")
	assert.Contains(t, out, "6 verdicts: 2 pass, 0 fail, 1 error, 1 known failure, 1 gap, 1 declined")
	assert.NotContains(t, out, "format-ok", "passes are hidden unless verbose")

	buf.Reset()
	require.NoError(t, report.WriteText(&buf, TextOptions{Verbose: true}))
	assert.Contains(t, buf.String(), "format-ok")
}

func TestReport_SummaryStyleFollowsErrorPolicy(t *testing.T) {
	errorsOnly := &Report{Summary: Summary{Total: 2, Pass: 1, Error: 1}}
	assert.True(t, errorsOnly.Failed())
	assert.False(t, errorsOnly.FailedUnder(false))
	assert.Equal(t, failStyle, errorsOnly.summaryStyle(TextOptions{}))
	assert.Equal(t, warnStyle, errorsOnly.summaryStyle(TextOptions{IgnoreErrors: true}))

	failing := &Report{Summary: Summary{Total: 2, Fail: 1, Error: 1}}
	assert.True(t, failing.FailedUnder(false))
	assert.Equal(t, failStyle, failing.summaryStyle(TextOptions{IgnoreErrors: true}))

	clean := &Report{Summary: Summary{Total: 1, Pass: 1}}
	assert.Equal(t, passStyle, clean.summaryStyle(TextOptions{}))
}

func TestCollectGaps(t *testing.T) {
	suite := decodeSuite(t, `name: gaps
scenarios:
  - name: sig
    useSigDigits: true
    minGroupingDigits: 2
    toPattern: "0"
  - name: plain
    locale: fr
    toPattern: "0"
`)
	legacy := backend.NewLegacy((&testutil.LegacyRecorder{}).Factory)
	pattern := backend.NewPattern(&testutil.PropertiesRecorder{})

	rows := CollectGaps(suite, []backend.Adapter{legacy, pattern, backend.NewPlatform(platform.New)})
	require.Len(t, rows, 1)
	assert.Equal(t, "sig", rows[0].Scenario)
	assert.Equal(t, map[backend.ID][]string{
		backend.Legacy:   {"minGroupingDigits"},
		backend.Pattern:  {"useSigDigits"},
		backend.Platform: {"useSigDigits", "minGroupingDigits"},
	}, rows[0].Gaps)
}
