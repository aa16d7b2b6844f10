package backend

import (
	"slices"

	"github.com/roach88/numconform/internal/scenario"
)

// rule applies one scenario field to a backend configuration of type C.
// A nil apply marks a declared gap.
type rule[C any] struct {
	field scenario.Field
	apply func(s *scenario.Scenario, c C) error
}

// translator walks an ordered rule table over a configuration object.
type translator[C any] struct {
	backend ID
	// consumed are fields used to construct the configuration object
	// itself rather than applied by a rule.
	consumed []scenario.Field
	rules    []rule[C]
}

// apply runs every rule whose field s sets, in table order. The first
// rejected value aborts translation.
func (t *translator[C]) apply(s *scenario.Scenario, c C) error {
	for _, r := range t.rules {
		if r.apply == nil || !s.Has(r.field) {
			continue
		}
		if err := r.apply(s, c); err != nil {
			return &EngineError{Backend: t.backend, Op: "configure", Field: r.field.String(), Err: err}
		}
	}
	return nil
}

// gaps lists the fields s sets that no rule can apply.
func (t *translator[C]) gaps(s *scenario.Scenario) []scenario.Field {
	var out []scenario.Field
	for _, f := range s.SetFields() {
		if !slices.Contains(t.consumed, f) && !t.handles(f) {
			out = append(out, f)
		}
	}
	return out
}

func (t *translator[C]) handles(f scenario.Field) bool {
	for _, r := range t.rules {
		if r.field == f && r.apply != nil {
			return true
		}
	}
	return false
}

// set builds a rule that passes the field's value to an infallible setter.
func set[C, T any](f scenario.Field, get func(*scenario.Scenario) scenario.Opt[T], setter func(C, T)) rule[C] {
	return rule[C]{field: f, apply: func(s *scenario.Scenario, c C) error {
		v, _ := get(s).Get()
		setter(c, v)
		return nil
	}}
}

// setErr is set for setters that may reject the value.
func setErr[C, T any](f scenario.Field, get func(*scenario.Scenario) scenario.Opt[T], setter func(C, T) error) rule[C] {
	return rule[C]{field: f, apply: func(s *scenario.Scenario, c C) error {
		v, _ := get(s).Get()
		return setter(c, v)
	}}
}

// with builds a rule from an arbitrary function.
func with[C any](f scenario.Field, apply func(*scenario.Scenario, C) error) rule[C] {
	return rule[C]{field: f, apply: apply}
}

// gap declares that the backend cannot express f.
func gap[C any](f scenario.Field) rule[C] {
	return rule[C]{field: f}
}

// Field accessors shared by the rule tables.
func minIntegerDigits(s *scenario.Scenario) scenario.Opt[int]  { return s.MinIntegerDigits }
func maxIntegerDigits(s *scenario.Scenario) scenario.Opt[int]  { return s.MaxIntegerDigits }
func minFractionDigits(s *scenario.Scenario) scenario.Opt[int] { return s.MinFractionDigits }
func maxFractionDigits(s *scenario.Scenario) scenario.Opt[int] { return s.MaxFractionDigits }
func minSigDigits(s *scenario.Scenario) scenario.Opt[int]      { return s.MinSigDigits }
func maxSigDigits(s *scenario.Scenario) scenario.Opt[int]      { return s.MaxSigDigits }
func useSigDigits(s *scenario.Scenario) scenario.Opt[bool]     { return s.UseSigDigits }
func useGrouping(s *scenario.Scenario) scenario.Opt[bool]      { return s.UseGrouping }
func grouping(s *scenario.Scenario) scenario.Opt[int]          { return s.Grouping }
func grouping2(s *scenario.Scenario) scenario.Opt[int]         { return s.Grouping2 }
func minGroupingDigits(s *scenario.Scenario) scenario.Opt[int] { return s.MinGroupingDigits }
func multiplier(s *scenario.Scenario) scenario.Opt[int]        { return s.Multiplier }
func formatWidth(s *scenario.Scenario) scenario.Opt[int]       { return s.FormatWidth }
func useScientific(s *scenario.Scenario) scenario.Opt[bool]    { return s.UseScientific }
func minExponentDigits(s *scenario.Scenario) scenario.Opt[int] { return s.MinimumExponentDigits }
func exponentSign(s *scenario.Scenario) scenario.Opt[bool]     { return s.ExponentSignAlwaysShown }
func decimalSepShown(s *scenario.Scenario) scenario.Opt[bool]  { return s.DecimalSeparatorAlwaysShown }
func currencyCode(s *scenario.Scenario) scenario.Opt[string]   { return s.Currency }
func positivePrefix(s *scenario.Scenario) scenario.Opt[string] { return s.PositivePrefix }
func positiveSuffix(s *scenario.Scenario) scenario.Opt[string] { return s.PositiveSuffix }
func negativePrefix(s *scenario.Scenario) scenario.Opt[string] { return s.NegativePrefix }
func negativeSuffix(s *scenario.Scenario) scenario.Opt[string] { return s.NegativeSuffix }
func localizedPattern(s *scenario.Scenario) scenario.Opt[string] {
	return s.LocalizedPattern
}
func lenient(s *scenario.Scenario) scenario.Opt[bool]          { return s.Lenient }
func parseIntegerOnly(s *scenario.Scenario) scenario.Opt[bool] { return s.ParseIntegerOnly }
func parseCaseSensitive(s *scenario.Scenario) scenario.Opt[bool] {
	return s.ParseCaseSensitive
}
func decimalPatternMatch(s *scenario.Scenario) scenario.Opt[bool] {
	return s.DecimalPatternMatchRequired
}
func parseNoExponent(s *scenario.Scenario) scenario.Opt[bool] { return s.ParseNoExponent }
func roundingMode(s *scenario.Scenario) scenario.Opt[scenario.RoundingMode] {
	return s.RoundingMode
}
func currencyUsage(s *scenario.Scenario) scenario.Opt[scenario.CurrencyUsage] {
	return s.CurrencyUsage
}
func padPosition(s *scenario.Scenario) scenario.Opt[scenario.PadPosition] {
	return s.PadPosition
}
