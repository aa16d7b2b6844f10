package backend

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"

	"github.com/roach88/numconform/internal/engine"
	"github.com/roach88/numconform/internal/oracle"
	"github.com/roach88/numconform/internal/scenario"
)

func pass(gaps []scenario.Field) Outcome {
	return Outcome{Status: StatusPass, Gaps: gaps}
}

func failf(gaps []scenario.Field, format string, args ...any) Outcome {
	return Outcome{Status: StatusFail, Diagnostic: fmt.Sprintf(format, args...), Gaps: gaps}
}

func declined(gaps []scenario.Field, reason string) Outcome {
	return Outcome{Status: StatusDeclined, Diagnostic: reason, Gaps: gaps}
}

// formatInput returns the canonical format input and its expected output.
func formatInput(s *scenario.Scenario) (oracle.Number, string, error) {
	in, ok := s.Format.Get()
	if !ok || !s.Output.IsSet() {
		return oracle.Number{}, "", fmt.Errorf("format: %w", ErrMissingInput)
	}
	n, err := oracle.Canonicalize(in)
	if err != nil {
		return oracle.Number{}, "", fmt.Errorf("format input: %w", err)
	}
	return n, s.Output.Or(""), nil
}

// parseInput returns the text to parse and the expected result token.
func parseInput(s *scenario.Scenario) (string, string, error) {
	in, ok := s.Parse.Get()
	if !ok || !s.Output.IsSet() {
		return "", "", fmt.Errorf("parse: %w", ErrMissingInput)
	}
	return in, s.Output.Or(""), nil
}

// judgeFormat compares rendered text byte for byte.
func judgeFormat(gaps []scenario.Field, expected, actual string) Outcome {
	if expected != actual {
		return failf(gaps, "Expected %q, got %q", expected, actual)
	}
	return pass(gaps)
}

// judgePatterns checks the canonical and localized patterns independently,
// each only when the scenario expects it.
func judgePatterns(gaps []scenario.Field, s *scenario.Scenario, f engine.Formatter) Outcome {
	var diags []string
	if want, ok := s.ToPattern.Get(); ok {
		if got := f.ToPattern(); got != want {
			diags = append(diags, fmt.Sprintf("Expected toPattern=%s, got %s", want, got))
		}
	}
	if want, ok := s.ToLocalizedPattern.Get(); ok {
		if got := f.ToLocalizedPattern(); got != want {
			diags = append(diags, fmt.Sprintf("Expected toLocalizedPattern=%s, got %s", want, got))
		}
	}
	if len(diags) > 0 {
		return failf(gaps, "%s", strings.Join(diags, "; "))
	}
	return pass(gaps)
}

// judgeParse applies the parse rules: a parse that consumes nothing passes
// only when failure is expected, a consuming parse fails when failure is
// expected, and anything else goes to the numeric oracle.
func judgeParse(gaps []scenario.Field, expected string, actual oracle.Number, consumed int) (Outcome, bool, error) {
	if consumed == 0 {
		if expected == oracle.TokenFail {
			return pass(gaps), false, nil
		}
		return failf(gaps, "Parse failed; expected %s", expected), false, nil
	}
	if expected == oracle.TokenFail {
		return failf(gaps, "Expected parse failure, got %s after %d characters", actual, consumed), false, nil
	}
	ok, err := oracle.Equivalent(expected, actual)
	if err != nil {
		return Outcome{}, false, fmt.Errorf("expected parse output: %w", err)
	}
	if !ok {
		return failf(gaps, "Expected: %s, got: %s", expected, actual), false, nil
	}
	return pass(gaps), true, nil
}

// judgeCurrency adds the currency-code check to a numeric parse verdict.
// A code the engine returns that is not an ISO 4217 designator is fatal,
// whatever the numeric result.
func judgeCurrency(id ID, gaps []scenario.Field, expected, wantCode string, amount engine.CurrencyAmount, consumed int) (Outcome, error) {
	if consumed > 0 && expected != oracle.TokenFail {
		if _, err := currency.ParseISO(amount.Currency); err != nil {
			return Outcome{}, &EngineError{
				Backend: id,
				Op:      "parseCurrency",
				Err:     fmt.Errorf("malformed currency code %q: %w", amount.Currency, err),
			}
		}
	}

	out, matched, err := judgeParse(gaps, expected, amount.Number, consumed)
	if err != nil || !matched {
		return out, err
	}
	if amount.Currency != wantCode {
		return failf(gaps, "Expected currency: %s, got: %s", wantCode, amount.Currency), nil
	}
	return out, nil
}

// currencyInput is parseInput plus the expected currency code.
func currencyInput(s *scenario.Scenario) (text, expected, code string, err error) {
	text, expected, err = parseInput(s)
	if err != nil {
		return "", "", "", err
	}
	code, ok := s.OutputCurrency.Get()
	if !ok {
		return "", "", "", fmt.Errorf("parseCurrency: %w", ErrMissingInput)
	}
	return text, expected, code, nil
}
