package backend

import (
	"github.com/roach88/numconform/internal/engine"
	"github.com/roach88/numconform/internal/scenario"
)

// platformTranslator carries the platform engine's narrower profile.
// Everything outside it is a declared gap, so the table lists every field
// the legacy table does, in the same order.
var platformTranslator = &translator[engine.PlatformFormat]{
	backend:  Platform,
	consumed: []scenario.Field{scenario.FieldPattern, scenario.FieldLocale},
	rules: []rule[engine.PlatformFormat]{
		set(scenario.FieldMinIntegerDigits, minIntegerDigits, engine.PlatformFormat.SetMinimumIntegerDigits),
		set(scenario.FieldMaxIntegerDigits, maxIntegerDigits, engine.PlatformFormat.SetMaximumIntegerDigits),
		set(scenario.FieldMinFractionDigits, minFractionDigits, engine.PlatformFormat.SetMinimumFractionDigits),
		set(scenario.FieldMaxFractionDigits, maxFractionDigits, engine.PlatformFormat.SetMaximumFractionDigits),
		setErr(scenario.FieldCurrency, currencyCode, engine.PlatformFormat.SetCurrency),
		gap[engine.PlatformFormat](scenario.FieldMinGroupingDigits),
		gap[engine.PlatformFormat](scenario.FieldUseSigDigits),
		gap[engine.PlatformFormat](scenario.FieldMinSigDigits),
		gap[engine.PlatformFormat](scenario.FieldMaxSigDigits),
		set(scenario.FieldUseGrouping, useGrouping, engine.PlatformFormat.SetGroupingUsed),
		setErr(scenario.FieldMultiplier, multiplier, engine.PlatformFormat.SetMultiplier),
		gap[engine.PlatformFormat](scenario.FieldRoundingIncrement),
		gap[engine.PlatformFormat](scenario.FieldFormatWidth),
		gap[engine.PlatformFormat](scenario.FieldPadCharacter),
		gap[engine.PlatformFormat](scenario.FieldUseScientific),
		set(scenario.FieldGrouping, grouping, engine.PlatformFormat.SetGroupingSize),
		gap[engine.PlatformFormat](scenario.FieldGrouping2),
		gap[engine.PlatformFormat](scenario.FieldRoundingMode),
		gap[engine.PlatformFormat](scenario.FieldCurrencyUsage),
		gap[engine.PlatformFormat](scenario.FieldMinimumExponentDigits),
		gap[engine.PlatformFormat](scenario.FieldExponentSignAlwaysShown),
		set(scenario.FieldDecimalSeparatorAlwaysShown, decimalSepShown, engine.PlatformFormat.SetDecimalSeparatorAlwaysShown),
		gap[engine.PlatformFormat](scenario.FieldPadPosition),
		set(scenario.FieldPositivePrefix, positivePrefix, engine.PlatformFormat.SetPositivePrefix),
		set(scenario.FieldPositiveSuffix, positiveSuffix, engine.PlatformFormat.SetPositiveSuffix),
		set(scenario.FieldNegativePrefix, negativePrefix, engine.PlatformFormat.SetNegativePrefix),
		set(scenario.FieldNegativeSuffix, negativeSuffix, engine.PlatformFormat.SetNegativeSuffix),
		setErr(scenario.FieldLocalizedPattern, localizedPattern, engine.PlatformFormat.ApplyLocalizedPattern),
		gap[engine.PlatformFormat](scenario.FieldLenient),
		set(scenario.FieldParseIntegerOnly, parseIntegerOnly, engine.PlatformFormat.SetParseIntegerOnly),
		gap[engine.PlatformFormat](scenario.FieldParseCaseSensitive),
		gap[engine.PlatformFormat](scenario.FieldDecimalPatternMatchRequired),
		gap[engine.PlatformFormat](scenario.FieldParseNoExponent),
	},
}

// NewPlatform returns the adapter for the platform engine. factory is
// called once per operation. Platform formatters that do not implement
// engine.CurrencyParser decline currency parsing.
func NewPlatform(factory engine.PlatformFactory, opts ...Option) Adapter {
	cfg := newSettings(opts)
	return &engineAdapter{
		id:   Platform,
		gaps: platformTranslator.gaps,
		build: func(s *scenario.Scenario) (engine.Formatter, error) {
			tag, err := resolveLocale(Platform, s, cfg.locale)
			if err != nil {
				return nil, err
			}
			f, err := factory(s.Pattern.Or(cfg.pattern), tag)
			if err != nil {
				return nil, &EngineError{Backend: Platform, Op: "build", Field: "pattern", Err: err}
			}
			if err := platformTranslator.apply(s, f); err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}
