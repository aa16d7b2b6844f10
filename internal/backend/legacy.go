package backend

import (
	"unicode/utf8"

	"github.com/roach88/numconform/internal/engine"
	"github.com/roach88/numconform/internal/scenario"
)

// legacyTranslator follows the legacy engine's precedence. The localized
// pattern is applied after the discrete formatting fields because it
// resets them.
var legacyTranslator = &translator[engine.LegacyFormat]{
	backend:  Legacy,
	consumed: []scenario.Field{scenario.FieldPattern, scenario.FieldLocale},
	rules: []rule[engine.LegacyFormat]{
		set(scenario.FieldMinIntegerDigits, minIntegerDigits, engine.LegacyFormat.SetMinimumIntegerDigits),
		set(scenario.FieldMaxIntegerDigits, maxIntegerDigits, engine.LegacyFormat.SetMaximumIntegerDigits),
		set(scenario.FieldMinFractionDigits, minFractionDigits, engine.LegacyFormat.SetMinimumFractionDigits),
		set(scenario.FieldMaxFractionDigits, maxFractionDigits, engine.LegacyFormat.SetMaximumFractionDigits),
		setErr(scenario.FieldCurrency, currencyCode, engine.LegacyFormat.SetCurrency),
		gap[engine.LegacyFormat](scenario.FieldMinGroupingDigits),
		set(scenario.FieldUseSigDigits, useSigDigits, engine.LegacyFormat.SetSignificantDigitsUsed),
		set(scenario.FieldMinSigDigits, minSigDigits, engine.LegacyFormat.SetMinimumSignificantDigits),
		set(scenario.FieldMaxSigDigits, maxSigDigits, engine.LegacyFormat.SetMaximumSignificantDigits),
		set(scenario.FieldUseGrouping, useGrouping, engine.LegacyFormat.SetGroupingUsed),
		setErr(scenario.FieldMultiplier, multiplier, engine.LegacyFormat.SetMultiplier),
		with(scenario.FieldRoundingIncrement, legacyRoundingIncrement),
		set(scenario.FieldFormatWidth, formatWidth, engine.LegacyFormat.SetFormatWidth),
		with(scenario.FieldPadCharacter, legacyPadCharacter),
		set(scenario.FieldUseScientific, useScientific, engine.LegacyFormat.SetScientificNotation),
		set(scenario.FieldGrouping, grouping, engine.LegacyFormat.SetGroupingSize),
		set(scenario.FieldGrouping2, grouping2, engine.LegacyFormat.SetSecondaryGroupingSize),
		setErr(scenario.FieldRoundingMode, roundingMode, engine.LegacyFormat.SetRoundingMode),
		setErr(scenario.FieldCurrencyUsage, currencyUsage, engine.LegacyFormat.SetCurrencyUsage),
		set(scenario.FieldMinimumExponentDigits, minExponentDigits, engine.LegacyFormat.SetMinimumExponentDigits),
		set(scenario.FieldExponentSignAlwaysShown, exponentSign, engine.LegacyFormat.SetExponentSignAlwaysShown),
		set(scenario.FieldDecimalSeparatorAlwaysShown, decimalSepShown, engine.LegacyFormat.SetDecimalSeparatorAlwaysShown),
		setErr(scenario.FieldPadPosition, padPosition, engine.LegacyFormat.SetPadPosition),
		set(scenario.FieldPositivePrefix, positivePrefix, engine.LegacyFormat.SetPositivePrefix),
		set(scenario.FieldPositiveSuffix, positiveSuffix, engine.LegacyFormat.SetPositiveSuffix),
		set(scenario.FieldNegativePrefix, negativePrefix, engine.LegacyFormat.SetNegativePrefix),
		set(scenario.FieldNegativeSuffix, negativeSuffix, engine.LegacyFormat.SetNegativeSuffix),
		setErr(scenario.FieldLocalizedPattern, localizedPattern, engine.LegacyFormat.ApplyLocalizedPattern),
		with(scenario.FieldLenient, func(s *scenario.Scenario, f engine.LegacyFormat) error {
			v, _ := s.Lenient.Get()
			f.SetParseStrict(!v)
			return nil
		}),
		set(scenario.FieldParseIntegerOnly, parseIntegerOnly, engine.LegacyFormat.SetParseIntegerOnly),
		gap[engine.LegacyFormat](scenario.FieldParseCaseSensitive),
		set(scenario.FieldDecimalPatternMatchRequired, decimalPatternMatch, engine.LegacyFormat.SetDecimalPatternMatchRequired),
		gap[engine.LegacyFormat](scenario.FieldParseNoExponent),
	},
}

// The legacy engine takes the increment as a binary float.
func legacyRoundingIncrement(s *scenario.Scenario, f engine.LegacyFormat) error {
	inc, _ := s.RoundingIncrement.Get()
	v, err := inc.Float64()
	if err != nil {
		return err
	}
	return f.SetRoundingIncrement(v)
}

// Only the first character of the pad string is used; an empty string
// leaves the engine default.
func legacyPadCharacter(s *scenario.Scenario, f engine.LegacyFormat) error {
	pad, _ := s.PadCharacter.Get()
	if pad == "" {
		return nil
	}
	r, _ := utf8.DecodeRuneInString(pad)
	f.SetPadCharacter(r)
	return nil
}

// NewLegacy returns the adapter for the legacy setter-driven engine.
// factory is called once per operation.
func NewLegacy(factory engine.LegacyFactory, opts ...Option) Adapter {
	cfg := newSettings(opts)
	return &engineAdapter{
		id:   Legacy,
		gaps: legacyTranslator.gaps,
		build: func(s *scenario.Scenario) (engine.Formatter, error) {
			tag, err := resolveLocale(Legacy, s, cfg.locale)
			if err != nil {
				return nil, err
			}
			f, err := factory(s.Pattern.Or(cfg.pattern), tag)
			if err != nil {
				return nil, &EngineError{Backend: Legacy, Op: "build", Field: "pattern", Err: err}
			}
			if err := legacyTranslator.apply(s, f); err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}
