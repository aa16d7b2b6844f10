package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Suite is a named collection of scenarios decoded from one file.
type Suite struct {
	// Name identifies the suite in reports and in the verdict ledger.
	Name string `yaml:"name"`

	// Description explains what the suite covers.
	Description string `yaml:"description,omitempty"`

	// Defaults supplies configuration fields to every scenario that
	// leaves them unset. Only configuration fields are inherited.
	Defaults *Scenario `yaml:"defaults,omitempty"`

	// Scenarios are the cases, in file order.
	Scenarios []Scenario `yaml:"scenarios"`

	// Path is the file the suite was loaded from, if any.
	Path string `yaml:"-"`
}

// ValidationError describes a structural problem in a suite file.
type ValidationError struct {
	Field   string
	Message string
	Line    int
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadSuite reads and decodes a suite file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields, or fails validation.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	suite, err := DecodeSuite(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	suite.Path = path
	return suite, nil
}

// DecodeSuite decodes and validates a suite document. Suite defaults are
// folded into each scenario before validation, so every returned Scenario
// is complete and never changes afterwards.
func DecodeSuite(data []byte) (*Suite, error) {
	var suite Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches typos like "minIntDigits"
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	lines := scenarioLines(data)
	for i := range suite.Scenarios {
		suite.Scenarios[i] = suite.Scenarios[i].withDefaults(suite.Defaults)
		if suite.Scenarios[i].Name == "" {
			suite.Scenarios[i].Name = fmt.Sprintf("%s#%d", suite.Name, i+1)
		}
	}

	if err := validateSuite(&suite, lines); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &suite, nil
}

// scenarioLines returns the source line of each scenario entry. Errors are
// ignored: the strict decode already reported them.
func scenarioLines(data []byte) []int {
	var doc struct {
		Scenarios []yaml.Node `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil
	}
	lines := make([]int, len(doc.Scenarios))
	for i, n := range doc.Scenarios {
		lines[i] = n.Line
	}
	return lines
}

func validateSuite(s *Suite, lines []int) error {
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(s.Scenarios) == 0 {
		return &ValidationError{Field: "scenarios", Message: "scenarios list is required and must be non-empty"}
	}

	seen := make(map[string]int, len(s.Scenarios))
	for i := range s.Scenarios {
		line := 0
		if i < len(lines) {
			line = lines[i]
		}
		sc := &s.Scenarios[i]
		if prev, dup := seen[sc.Name]; dup {
			return &ValidationError{
				Field:   fmt.Sprintf("scenarios[%d].name", i),
				Message: fmt.Sprintf("duplicate name %q (first used by scenarios[%d])", sc.Name, prev),
				Line:    line,
			}
		}
		seen[sc.Name] = i
		if err := validateScenario(i, sc, line); err != nil {
			return err
		}
	}
	return nil
}

// validateScenario checks that a scenario asks for at least one operation
// and that its inputs and expectations pair up.
func validateScenario(index int, sc *Scenario, line int) error {
	fail := func(field, msg string) error {
		return &ValidationError{
			Field:   fmt.Sprintf("scenarios[%d].%s", index, field),
			Message: msg,
			Line:    line,
		}
	}

	if sc.Format.IsSet() && sc.Parse.IsSet() {
		return fail("format", "format and parse inputs are mutually exclusive")
	}
	if sc.Format.IsSet() && !sc.Output.IsSet() {
		return fail("output", "output is required with format")
	}
	if sc.Parse.IsSet() && !sc.Output.IsSet() {
		return fail("output", "output is required with parse")
	}
	if sc.OutputCurrency.IsSet() && !sc.Parse.IsSet() {
		return fail("outputCurrency", "outputCurrency requires a parse input")
	}
	if !sc.Format.IsSet() && !sc.Parse.IsSet() && !sc.ToPattern.IsSet() && !sc.ToLocalizedPattern.IsSet() {
		return fail("format", "one of format, parse, toPattern or toLocalizedPattern is required")
	}
	return nil
}
