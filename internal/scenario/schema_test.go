package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchema_Valid(t *testing.T) {
	errs := ValidateSchema("suite.yaml", []byte(sampleSuite))
	assert.Empty(t, errs)
}

func TestValidateSchema_Violations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		path string
	}{
		{
			name: "wrong type",
			yaml: "name: x\nscenarios:\n  - minIntegerDigits: two\n    toPattern: \"0\"\n",
			path: "scenarios.0.minIntegerDigits",
		},
		{
			name: "unknown rounding mode",
			yaml: "name: x\nscenarios:\n  - roundingMode: sideways\n    toPattern: \"0\"\n",
			path: "scenarios.0.roundingMode",
		},
		{
			name: "unknown field",
			yaml: "name: x\nscenarios:\n  - colour: red\n",
			path: "scenarios.0.colour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateSchema("suite.yaml", []byte(tt.yaml))
			require.NotEmpty(t, errs)

			var found bool
			for _, err := range errs {
				var se *SchemaError
				require.ErrorAs(t, err, &se)
				if se.Path == tt.path {
					found = true
				}
			}
			assert.True(t, found, "expected a violation at %s, got %v", tt.path, errs)
		})
	}
}

func TestValidateSchema_MissingName(t *testing.T) {
	errs := ValidateSchema("suite.yaml", []byte("scenarios:\n  - toPattern: \"0\"\n"))
	require.NotEmpty(t, errs)
}

func TestValidateSchema_BadYAML(t *testing.T) {
	errs := ValidateSchema("suite.yaml", []byte("name: [unclosed\n"))
	require.Len(t, errs, 1)
}
