package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numconform/internal/testutil"
)

const passingSuite = `name: decimals
scenarios:
  - name: grouped
    format: 1234.5
    output: "1,234.50"
  - name: garbage
    parse: abc
    output: fail
`

const failingSuite = `name: decimals
scenarios:
  - name: grouped
    format: 1234.5
    output: "1234.5"
  - name: garbage
    parse: abc
    output: fail
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with a scripted legacy engine and no
// config file.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	rec := &testutil.LegacyRecorder{Script: testutil.Script{Output: "1,234.50"}}
	cmd := NewRootCommand(WithLegacyEngine(rec.Factory), WithPatternEngine(&testutil.PropertiesRecorder{}))

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, args...))

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

type runResponse struct {
	Status string    `json:"status"`
	Data   RunOutput `json:"data"`
	Error  *CLIError `json:"error"`
}

func decodeRun(t *testing.T, stdout string) runResponse {
	t.Helper()
	var resp runResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), stdout)
	return resp
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "numconform", cmd.Use)

	for _, name := range []string{"run", "validate", "gaps", "drift", "runs"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	suite := writeFile(t, dir, "s.yaml", passingSuite)

	_, _, err := execute(t, "--format", "xml", "run", suite)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_Passing(t *testing.T) {
	suite := writeFile(t, t.TempDir(), "s.yaml", passingSuite)

	stdout, _, err := execute(t, "run", "--backend", "legacy", suite)
	require.NoError(t, err)
	assert.Contains(t, stdout, "decimals")
	assert.Contains(t, stdout, "2 verdicts: 2 pass, 0 fail")
}

func TestRun_FailingExitsOne(t *testing.T) {
	suite := writeFile(t, t.TempDir(), "s.yaml", failingSuite)

	stdout, _, err := execute(t, "run", "--backend", "legacy", suite)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, `Expected "1234.5", got "1,234.50"`)
}

func TestRun_JSON(t *testing.T) {
	suite := writeFile(t, t.TempDir(), "s.yaml", failingSuite)

	stdout, _, err := execute(t, "--format", "json", "run", "-b", "legacy,platform", suite)
	require.Error(t, err)

	resp := decodeRun(t, stdout)
	assert.Equal(t, "fail", resp.Status)
	require.Len(t, resp.Data.Runs, 2)
	assert.Equal(t, "legacy", string(resp.Data.Runs[0].Report.Backend))
	assert.Equal(t, "platform", string(resp.Data.Runs[1].Report.Backend))
	assert.Empty(t, resp.Data.Runs[0].RunID, "nothing is recorded without a database")
}

func TestRun_PlatformPatternsAndParsing(t *testing.T) {
	suite := writeFile(t, t.TempDir(), "s.yaml", `name: platform
scenarios:
  - name: grouped
    pattern: "#,##0.00"
    format: 1234.5
    output: "1,234.50"
  - name: garbage
    pattern: "0"
    parse: abc
    output: fail
  - name: canonical
    pattern: "#,##0.00"
    toPattern: "#,##0.00"
`)

	stdout, _, err := execute(t, "--format", "json", "run", "-b", "platform", suite)
	require.NoError(t, err)

	resp := decodeRun(t, stdout)
	require.Len(t, resp.Data.Runs, 1)
	assert.Equal(t, 3, resp.Data.Runs[0].Report.Summary.Pass)
}

func TestRun_ScenarioFilter(t *testing.T) {
	suite := writeFile(t, t.TempDir(), "s.yaml", failingSuite)

	stdout, _, err := execute(t, "--format", "json", "run", "-b", "legacy", "--scenario", "garbage", suite)
	require.NoError(t, err)

	resp := decodeRun(t, stdout)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Runs, 1)
	assert.Equal(t, 1, resp.Data.Runs[0].Report.Summary.Total)
}

func TestRun_CommandErrors(t *testing.T) {
	dir := t.TempDir()
	suite := writeFile(t, dir, "s.yaml", passingSuite)

	tests := []struct {
		name string
		args []string
	}{
		{"missing suite", []string{"run", "-b", "legacy", filepath.Join(dir, "nope.yaml")}},
		{"unknown backend", []string{"run", "-b", "bogus", suite}},
		{"invalid suite", []string{"run", "-b", "legacy", writeFile(t, dir, "bad.yaml", "name: x\nscenarios: []\n")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stderr, "Error [")
		})
	}
}

func TestRun_UnboundEngineIsUnknownBackend(t *testing.T) {
	suite := writeFile(t, t.TempDir(), "s.yaml", passingSuite)

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "run", "-b", "legacy", suite})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_FailOnErrorDisabled(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", "backends: [legacy]\nfail_on_error: false\n")
	suite := writeFile(t, dir, "s.yaml", `name: errors
scenarios:
  - format: twelve
    output: "12"
`)

	rec := &testutil.LegacyRecorder{}
	cmd := NewRootCommand(WithLegacyEngine(rec.Factory))
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfg, "run", suite})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1 error")
}

func TestRun_VerboseLogsToStderr(t *testing.T) {
	suite := writeFile(t, t.TempDir(), "s.yaml", passingSuite)

	stdout, stderr, err := execute(t, "--verbose", "--format", "json", "run", "-b", "legacy", suite)
	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=verdict")
	decodeRun(t, stdout)
}

func TestRunDriftAndRuns(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "verdicts.db")
	pass := writeFile(t, dir, "pass.yaml", passingSuite)
	fail := writeFile(t, dir, "fail.yaml", failingSuite)

	stdout, _, err := execute(t, "--format", "json", "run", "-b", "legacy", "--db", db, pass)
	require.NoError(t, err)
	first := decodeRun(t, stdout).Data.Runs[0].RunID
	require.NotEmpty(t, first)

	stdout, _, err = execute(t, "--format", "json", "run", "-b", "legacy", "--db", db, fail)
	require.Error(t, err)
	second := decodeRun(t, stdout).Data.Runs[0].RunID
	require.NotEmpty(t, second)

	stdout, _, err = execute(t, "runs", "--db", db, "--suite", "decimals")
	require.NoError(t, err)
	assert.Contains(t, stdout, first)
	assert.Contains(t, stdout, second)

	stdout, _, err = execute(t, "drift", "--db", db, first, second)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "grouped format: pass -> fail")
	assert.Contains(t, stdout, "1 regression(s)")

	stdout, _, err = execute(t, "drift", "--db", db, second, first)
	require.NoError(t, err)
	assert.Contains(t, stdout, "grouped format: fail -> pass")

	_, _, err = execute(t, "drift", "--db", db, first, "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDrift_NoDatabase(t *testing.T) {
	_, stderr, err := execute(t, "drift", "a", "b")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "no database")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", passingSuite)
	schemaBad := writeFile(t, dir, "schema.yaml", "name: x\nscenarios:\n  - format: 1\n    output: \"1\"\n    minIntegerDigits: many\n")
	structBad := writeFile(t, dir, "struct.yaml", "name: x\nscenarios:\n  - format: 1\n")

	stdout, _, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ "+good)

	stdout, _, err = execute(t, "validate", good, schemaBad, structBad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ "+schemaBad)
	assert.Contains(t, stdout, "minIntegerDigits")
	assert.Contains(t, stdout, "✗ "+structBad)
	assert.Contains(t, stdout, "output is required with format")
}

func TestValidate_JSON(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.yaml")

	stdout, _, err := execute(t, "--format", "json", "validate", missing)
	require.Error(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "fail", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Files, 1)
	assert.Contains(t, resp.Data.Files[0].Errors[0], "failed to read suite file")
}

func TestGaps(t *testing.T) {
	suite := writeFile(t, t.TempDir(), "s.yaml", `name: gaps
scenarios:
  - name: sig
    useSigDigits: true
    minGroupingDigits: 2
    toPattern: "0"
  - name: plain
    toPattern: "0"
`)

	stdout, _, err := execute(t, "gaps", suite)
	require.NoError(t, err)
	assert.Contains(t, stdout, "sig\n")
	assert.Contains(t, stdout, "  legacy   minGroupingDigits\n")
	assert.Contains(t, stdout, "  pattern  useSigDigits\n")
	assert.Contains(t, stdout, "  platform useSigDigits, minGroupingDigits\n")
	assert.NotContains(t, stdout, "plain")

	stdout, _, err = execute(t, "gaps", "-b", "legacy", writeFile(t, t.TempDir(), "p.yaml", passingSuite))
	require.NoError(t, err)
	assert.Contains(t, stdout, "No capability gaps.")
}
