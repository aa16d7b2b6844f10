package backend

import (
	"github.com/cockroachdb/apd/v3"
	"golang.org/x/text/language"

	"github.com/roach88/numconform/internal/engine"
	"github.com/roach88/numconform/internal/scenario"
)

// patternConfig is the property record under construction, with what the
// localized-pattern rule needs to parse onto it.
type patternConfig struct {
	props  *engine.Properties
	eng    engine.PropertiesEngine
	locale language.Tag
}

func prop[T any](f scenario.Field, get func(*scenario.Scenario) scenario.Opt[T], assign func(p *engine.Properties, v T)) rule[*patternConfig] {
	return set(f, get, func(c *patternConfig, v T) { assign(c.props, v) })
}

var patternTranslator = &translator[*patternConfig]{
	backend:  Pattern,
	consumed: []scenario.Field{scenario.FieldPattern, scenario.FieldLocale},
	rules: []rule[*patternConfig]{
		prop(scenario.FieldMinIntegerDigits, minIntegerDigits, func(p *engine.Properties, v int) { p.MinimumIntegerDigits = v }),
		prop(scenario.FieldMaxIntegerDigits, maxIntegerDigits, func(p *engine.Properties, v int) { p.MaximumIntegerDigits = v }),
		prop(scenario.FieldMinFractionDigits, minFractionDigits, func(p *engine.Properties, v int) { p.MinimumFractionDigits = v }),
		prop(scenario.FieldMaxFractionDigits, maxFractionDigits, func(p *engine.Properties, v int) { p.MaximumFractionDigits = v }),
		prop(scenario.FieldCurrency, currencyCode, func(p *engine.Properties, v string) { p.Currency = scenario.Some(v) }),
		prop(scenario.FieldMinGroupingDigits, minGroupingDigits, func(p *engine.Properties, v int) { p.MinimumGroupingDigits = v }),
		gap[*patternConfig](scenario.FieldUseSigDigits),
		prop(scenario.FieldMinSigDigits, minSigDigits, func(p *engine.Properties, v int) { p.MinimumSignificantDigits = v }),
		prop(scenario.FieldMaxSigDigits, maxSigDigits, func(p *engine.Properties, v int) { p.MaximumSignificantDigits = v }),
		prop(scenario.FieldUseGrouping, useGrouping, func(p *engine.Properties, v bool) {
			// Enabling grouping keeps whatever sizes the pattern gave.
			if !v {
				p.GroupingSize = engine.Unset
				p.SecondaryGroupingSize = engine.Unset
			}
		}),
		prop(scenario.FieldMultiplier, multiplier, func(p *engine.Properties, v int) { p.Multiplier = v }),
		with(scenario.FieldRoundingIncrement, func(s *scenario.Scenario, c *patternConfig) error {
			inc, _ := s.RoundingIncrement.Get()
			var d apd.Decimal
			d.Set(&inc)
			c.props.RoundingIncrement = scenario.Some(d)
			return nil
		}),
		prop(scenario.FieldFormatWidth, formatWidth, func(p *engine.Properties, v int) { p.FormatWidth = v }),
		with(scenario.FieldPadCharacter, func(s *scenario.Scenario, c *patternConfig) error {
			c.props.PadString = s.PadCharacter
			return nil
		}),
		prop(scenario.FieldUseScientific, useScientific, func(p *engine.Properties, v bool) {
			if v {
				p.MinimumExponentDigits = 1
			} else {
				p.MinimumExponentDigits = engine.Unset
			}
		}),
		prop(scenario.FieldGrouping, grouping, func(p *engine.Properties, v int) { p.GroupingSize = v }),
		prop(scenario.FieldGrouping2, grouping2, func(p *engine.Properties, v int) { p.SecondaryGroupingSize = v }),
		with(scenario.FieldRoundingMode, func(s *scenario.Scenario, c *patternConfig) error {
			c.props.RoundingMode = s.RoundingMode
			return nil
		}),
		with(scenario.FieldCurrencyUsage, func(s *scenario.Scenario, c *patternConfig) error {
			c.props.CurrencyUsage = s.CurrencyUsage
			return nil
		}),
		prop(scenario.FieldMinimumExponentDigits, minExponentDigits, func(p *engine.Properties, v int) { p.MinimumExponentDigits = v }),
		prop(scenario.FieldExponentSignAlwaysShown, exponentSign, func(p *engine.Properties, v bool) { p.ExponentSignAlwaysShown = v }),
		prop(scenario.FieldDecimalSeparatorAlwaysShown, decimalSepShown, func(p *engine.Properties, v bool) { p.DecimalSeparatorAlwaysShown = v }),
		with(scenario.FieldPadPosition, func(s *scenario.Scenario, c *patternConfig) error {
			c.props.PadPosition = s.PadPosition
			return nil
		}),
		prop(scenario.FieldPositivePrefix, positivePrefix, func(p *engine.Properties, v string) { p.PositivePrefix = scenario.Some(v) }),
		prop(scenario.FieldPositiveSuffix, positiveSuffix, func(p *engine.Properties, v string) { p.PositiveSuffix = scenario.Some(v) }),
		prop(scenario.FieldNegativePrefix, negativePrefix, func(p *engine.Properties, v string) { p.NegativePrefix = scenario.Some(v) }),
		prop(scenario.FieldNegativeSuffix, negativeSuffix, func(p *engine.Properties, v string) { p.NegativeSuffix = scenario.Some(v) }),
		with(scenario.FieldLocalizedPattern, func(s *scenario.Scenario, c *patternConfig) error {
			localized, _ := s.LocalizedPattern.Get()
			canonical, err := c.eng.ConvertLocalized(localized, c.locale)
			if err != nil {
				return err
			}
			return c.eng.ParseToExisting(canonical, c.props, false)
		}),
		prop(scenario.FieldLenient, lenient, func(p *engine.Properties, v bool) {
			if v {
				p.ParseMode = engine.ParseModeLenient
			} else {
				p.ParseMode = engine.ParseModeStrict
			}
		}),
		prop(scenario.FieldParseIntegerOnly, parseIntegerOnly, func(p *engine.Properties, v bool) { p.ParseIntegerOnly = v }),
		prop(scenario.FieldParseCaseSensitive, parseCaseSensitive, func(p *engine.Properties, v bool) { p.ParseCaseSensitive = v }),
		prop(scenario.FieldDecimalPatternMatchRequired, decimalPatternMatch, func(p *engine.Properties, v bool) { p.DecimalPatternMatchRequired = v }),
		prop(scenario.FieldParseNoExponent, parseNoExponent, func(p *engine.Properties, v bool) { p.ParseNoExponent = v }),
	},
}

// NewPattern returns the adapter for a property-record engine.
func NewPattern(eng engine.PropertiesEngine, opts ...Option) Adapter {
	cfg := newSettings(opts)
	return &engineAdapter{
		id:   Pattern,
		gaps: patternTranslator.gaps,
		build: func(s *scenario.Scenario) (engine.Formatter, error) {
			tag, err := resolveLocale(Pattern, s, cfg.locale)
			if err != nil {
				return nil, err
			}
			// Currency formats take their rounding from the currency, not
			// the pattern.
			props, err := eng.ParsePattern(s.Pattern.Or(cfg.pattern), s.Has(scenario.FieldCurrency))
			if err != nil {
				return nil, &EngineError{Backend: Pattern, Op: "build", Field: "pattern", Err: err}
			}
			if err := patternTranslator.apply(s, &patternConfig{props: props, eng: eng, locale: tag}); err != nil {
				return nil, err
			}
			f, err := eng.NewFormatter(props, tag)
			if err != nil {
				return nil, &EngineError{Backend: Pattern, Op: "build", Err: err}
			}
			return f, nil
		},
	}
}
