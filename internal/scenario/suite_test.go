package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSuite = `name: grouping
description: grouping and fraction digits
defaults:
  pattern: "#,##0.##"
  locale: en
scenarios:
  - name: basic
    format: 1234.5
    output: "1,234.5"
  - name: no-grouping
    useGrouping: false
    format: 1234.5
    output: "1234.5"
    breaks: [platform]
  - locale: fr
    parse: "1 234,5"
    output: 1234.5
  - toPattern: "#,##0.##"
`

func writeSuite(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSuite_Valid(t *testing.T) {
	path := writeSuite(t, sampleSuite)

	suite, err := LoadSuite(path)
	require.NoError(t, err)

	assert.Equal(t, "grouping", suite.Name)
	assert.Equal(t, path, suite.Path)
	require.Len(t, suite.Scenarios, 4)

	basic := suite.Scenarios[0]
	assert.Equal(t, "#,##0.##", basic.Pattern.Or(""))
	assert.Equal(t, "en", basic.Locale.Or(""))
	assert.Equal(t, "1234.5", basic.Format.Or(""), "unquoted numbers keep their source text")

	assert.True(t, suite.Scenarios[1].BreaksOn("platform"))
	assert.False(t, suite.Scenarios[1].UseGrouping.Or(true))

	fr := suite.Scenarios[2]
	assert.Equal(t, "grouping#3", fr.Name, "unnamed scenarios get a positional name")
	assert.Equal(t, "fr", fr.Locale.Or(""))
	assert.Equal(t, "1234.5", fr.Output.Or(""))
}

func TestLoadSuite_MissingFile(t *testing.T) {
	_, err := LoadSuite(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read suite file")
}

func TestDecodeSuite_UnknownField(t *testing.T) {
	_, err := DecodeSuite([]byte("name: x\nscenarios:\n  - minIntDigits: 2\n    toPattern: \"0\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minIntDigits")
}

func TestDecodeSuite_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		field   string
		message string
	}{
		{
			name:    "missing name",
			yaml:    "scenarios:\n  - toPattern: \"0\"\n",
			field:   "name",
			message: "required",
		},
		{
			name:    "no scenarios",
			yaml:    "name: x\n",
			field:   "scenarios",
			message: "non-empty",
		},
		{
			name:    "format and parse",
			yaml:    "name: x\nscenarios:\n  - format: 1\n    parse: \"1\"\n    output: \"1\"\n",
			field:   "scenarios[0].format",
			message: "mutually exclusive",
		},
		{
			name:    "format without output",
			yaml:    "name: x\nscenarios:\n  - format: 1\n",
			field:   "scenarios[0].output",
			message: "required with format",
		},
		{
			name:    "currency without parse",
			yaml:    "name: x\nscenarios:\n  - toPattern: \"0\"\n    outputCurrency: USD\n",
			field:   "scenarios[0].outputCurrency",
			message: "requires a parse input",
		},
		{
			name:    "nothing to check",
			yaml:    "name: x\nscenarios:\n  - pattern: \"0\"\n",
			field:   "scenarios[0].format",
			message: "is required",
		},
		{
			name:    "duplicate names",
			yaml:    "name: x\nscenarios:\n  - name: a\n    toPattern: \"0\"\n  - name: a\n    toPattern: \"0\"\n",
			field:   "scenarios[1].name",
			message: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSuite([]byte(tt.yaml))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Contains(t, verr.Message, tt.message)
		})
	}
}

func TestDecodeSuite_ErrorCarriesLine(t *testing.T) {
	_, err := DecodeSuite([]byte("name: x\nscenarios:\n  - toPattern: \"0\"\n  - format: 1\n"))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 4, verr.Line)
	assert.Contains(t, err.Error(), "line 4")
}
