package backend

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/roach88/numconform/internal/engine"
	"github.com/roach88/numconform/internal/scenario"
)

// engineAdapter implements the operations for backends whose engine hands
// back an engine.Formatter. Only formatter construction differs between
// them.
type engineAdapter struct {
	id    ID
	build func(s *scenario.Scenario) (engine.Formatter, error)
	gaps  func(s *scenario.Scenario) []scenario.Field
}

func (a *engineAdapter) ID() ID { return a.id }

func (a *engineAdapter) Gaps(s *scenario.Scenario) []scenario.Field { return a.gaps(s) }

func (a *engineAdapter) Format(s *scenario.Scenario) (Outcome, error) {
	n, expected, err := formatInput(s)
	if err != nil {
		return Outcome{}, err
	}
	f, err := a.build(s)
	if err != nil {
		return Outcome{}, err
	}
	actual, err := f.Format(n)
	if err != nil {
		return Outcome{}, &EngineError{Backend: a.id, Op: "format", Err: err}
	}
	return judgeFormat(a.gaps(s), expected, actual), nil
}

func (a *engineAdapter) ToPattern(s *scenario.Scenario) (Outcome, error) {
	if !s.ToPattern.IsSet() && !s.ToLocalizedPattern.IsSet() {
		return Outcome{}, fmt.Errorf("toPattern: %w", ErrMissingInput)
	}
	f, err := a.build(s)
	if err != nil {
		return Outcome{}, err
	}
	return judgePatterns(a.gaps(s), s, f), nil
}

func (a *engineAdapter) Parse(s *scenario.Scenario) (Outcome, error) {
	text, expected, err := parseInput(s)
	if err != nil {
		return Outcome{}, err
	}
	f, err := a.build(s)
	if err != nil {
		return Outcome{}, err
	}
	n, consumed := f.Parse(text)
	out, _, err := judgeParse(a.gaps(s), expected, n, consumed)
	return out, err
}

func (a *engineAdapter) ParseCurrency(s *scenario.Scenario) (Outcome, error) {
	text, expected, code, err := currencyInput(s)
	if err != nil {
		return Outcome{}, err
	}
	f, err := a.build(s)
	if err != nil {
		return Outcome{}, err
	}
	cp, ok := f.(engine.CurrencyParser)
	if !ok {
		return declined(a.gaps(s), "engine formatter cannot parse currency amounts"), nil
	}
	amount, consumed := cp.ParseCurrency(text)
	return judgeCurrency(a.id, a.gaps(s), expected, code, amount, consumed)
}

// resolveLocale turns the scenario locale, or the fallback, into a tag.
func resolveLocale(id ID, s *scenario.Scenario, fallback string) (language.Tag, error) {
	name := s.Locale.Or(fallback)
	tag, err := language.Parse(name)
	if err != nil {
		return language.Und, &EngineError{Backend: id, Op: "configure", Field: "locale", Err: err}
	}
	return tag, nil
}
