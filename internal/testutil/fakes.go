package testutil

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/roach88/numconform/internal/engine"
	"github.com/roach88/numconform/internal/oracle"
	"github.com/roach88/numconform/internal/scenario"
)

// Script configures what a fake formatter answers.
type Script struct {
	Output    string
	FormatErr error

	Pattern          string
	LocalizedPattern string

	ParseValue oracle.Number
	Consumed   int

	// ParsesCurrency makes the formatter implement engine.CurrencyParser,
	// returning ParseValue tagged with Currency.
	ParsesCurrency bool
	Currency       string

	// Reject maps a setter or engine method name to the error it returns.
	Reject map[string]error
}

// FakeFormatter answers from its Script and remembers what it formatted.
type FakeFormatter struct {
	Script    Script
	Formatted []oracle.Number
	Parsed    []string
}

func (f *FakeFormatter) Format(n oracle.Number) (string, error) {
	f.Formatted = append(f.Formatted, n)
	return f.Script.Output, f.Script.FormatErr
}

func (f *FakeFormatter) ToPattern() string          { return f.Script.Pattern }
func (f *FakeFormatter) ToLocalizedPattern() string { return f.Script.LocalizedPattern }

func (f *FakeFormatter) Parse(text string) (oracle.Number, int) {
	f.Parsed = append(f.Parsed, text)
	return f.Script.ParseValue, f.Script.Consumed
}

// currencyFormatter adds currency parsing to FakeFormatter.
type currencyFormatter struct {
	*FakeFormatter
}

func (f currencyFormatter) ParseCurrency(text string) (engine.CurrencyAmount, int) {
	n, consumed := f.Parse(text)
	return engine.CurrencyAmount{Number: n, Currency: f.Script.Currency}, consumed
}

// RecordingLegacy is a legacy formatter that logs every setter call in
// order, as "Name(value)".
type RecordingLegacy struct {
	*FakeFormatter
	Pattern string
	Locale  language.Tag
	Calls   []string
}

func (r *RecordingLegacy) record(name string, v any) {
	r.Calls = append(r.Calls, fmt.Sprintf("%s(%v)", name, v))
}

func (r *RecordingLegacy) recordErr(name string, v any) error {
	r.record(name, v)
	return r.Script.Reject[name]
}

func (r *RecordingLegacy) SetMinimumIntegerDigits(n int)  { r.record("SetMinimumIntegerDigits", n) }
func (r *RecordingLegacy) SetMaximumIntegerDigits(n int)  { r.record("SetMaximumIntegerDigits", n) }
func (r *RecordingLegacy) SetMinimumFractionDigits(n int) { r.record("SetMinimumFractionDigits", n) }
func (r *RecordingLegacy) SetMaximumFractionDigits(n int) { r.record("SetMaximumFractionDigits", n) }
func (r *RecordingLegacy) SetCurrency(code string) error  { return r.recordErr("SetCurrency", code) }
func (r *RecordingLegacy) SetSignificantDigitsUsed(b bool) {
	r.record("SetSignificantDigitsUsed", b)
}
func (r *RecordingLegacy) SetMinimumSignificantDigits(n int) {
	r.record("SetMinimumSignificantDigits", n)
}
func (r *RecordingLegacy) SetMaximumSignificantDigits(n int) {
	r.record("SetMaximumSignificantDigits", n)
}
func (r *RecordingLegacy) SetGroupingUsed(b bool)    { r.record("SetGroupingUsed", b) }
func (r *RecordingLegacy) SetMultiplier(n int) error { return r.recordErr("SetMultiplier", n) }
func (r *RecordingLegacy) SetRoundingIncrement(inc float64) error {
	return r.recordErr("SetRoundingIncrement", inc)
}
func (r *RecordingLegacy) SetFormatWidth(w int)         { r.record("SetFormatWidth", w) }
func (r *RecordingLegacy) SetPadCharacter(c rune)       { r.record("SetPadCharacter", string(c)) }
func (r *RecordingLegacy) SetScientificNotation(b bool) { r.record("SetScientificNotation", b) }
func (r *RecordingLegacy) SetGroupingSize(n int)        { r.record("SetGroupingSize", n) }
func (r *RecordingLegacy) SetSecondaryGroupingSize(n int) {
	r.record("SetSecondaryGroupingSize", n)
}
func (r *RecordingLegacy) SetRoundingMode(m scenario.RoundingMode) error {
	return r.recordErr("SetRoundingMode", m)
}
func (r *RecordingLegacy) SetCurrencyUsage(u scenario.CurrencyUsage) error {
	return r.recordErr("SetCurrencyUsage", u)
}
func (r *RecordingLegacy) SetMinimumExponentDigits(n int) {
	r.record("SetMinimumExponentDigits", n)
}
func (r *RecordingLegacy) SetExponentSignAlwaysShown(b bool) {
	r.record("SetExponentSignAlwaysShown", b)
}
func (r *RecordingLegacy) SetDecimalSeparatorAlwaysShown(b bool) {
	r.record("SetDecimalSeparatorAlwaysShown", b)
}
func (r *RecordingLegacy) SetPadPosition(p scenario.PadPosition) error {
	return r.recordErr("SetPadPosition", p)
}
func (r *RecordingLegacy) SetPositivePrefix(s string) { r.record("SetPositivePrefix", s) }
func (r *RecordingLegacy) SetPositiveSuffix(s string) { r.record("SetPositiveSuffix", s) }
func (r *RecordingLegacy) SetNegativePrefix(s string) { r.record("SetNegativePrefix", s) }
func (r *RecordingLegacy) SetNegativeSuffix(s string) { r.record("SetNegativeSuffix", s) }
func (r *RecordingLegacy) ApplyLocalizedPattern(p string) error {
	return r.recordErr("ApplyLocalizedPattern", p)
}
func (r *RecordingLegacy) SetParseStrict(b bool)      { r.record("SetParseStrict", b) }
func (r *RecordingLegacy) SetParseIntegerOnly(b bool) { r.record("SetParseIntegerOnly", b) }
func (r *RecordingLegacy) SetDecimalPatternMatchRequired(b bool) {
	r.record("SetDecimalPatternMatchRequired", b)
}

// currencyLegacy is a RecordingLegacy that also parses currency amounts.
type currencyLegacy struct {
	*RecordingLegacy
}

func (c currencyLegacy) ParseCurrency(text string) (engine.CurrencyAmount, int) {
	return currencyFormatter{c.FakeFormatter}.ParseCurrency(text)
}

// LegacyRecorder is a legacy engine factory that keeps every formatter it
// builds.
type LegacyRecorder struct {
	Script     Script
	FactoryErr error
	Built      []*RecordingLegacy
}

// Factory implements engine.LegacyFactory.
func (l *LegacyRecorder) Factory(pattern string, locale language.Tag) (engine.LegacyFormat, error) {
	if l.FactoryErr != nil {
		return nil, l.FactoryErr
	}
	r := &RecordingLegacy{
		FakeFormatter: &FakeFormatter{Script: l.Script},
		Pattern:       pattern,
		Locale:        locale,
	}
	l.Built = append(l.Built, r)
	if l.Script.ParsesCurrency {
		return currencyLegacy{r}, nil
	}
	return r, nil
}

// PlatformFactory implements engine.PlatformFactory. The platform setter
// surface is a subset of the legacy one, so the same recording formatters
// serve both.
func (l *LegacyRecorder) PlatformFactory(pattern string, locale language.Tag) (engine.PlatformFormat, error) {
	f, err := l.Factory(pattern, locale)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Last returns the most recently built formatter, or nil.
func (l *LegacyRecorder) Last() *RecordingLegacy {
	if len(l.Built) == 0 {
		return nil
	}
	return l.Built[len(l.Built)-1]
}

// PropertiesRecorder is a property engine that logs its calls and keeps
// the records it hands out. It does not parse patterns: ParsePattern
// returns engine.NewProperties() with nothing filled in.
type PropertiesRecorder struct {
	Script Script
	Calls  []string

	// Localized maps localized patterns to canonical ones. Unmapped
	// patterns convert to themselves.
	Localized map[string]string

	Parsed     *engine.Properties
	Final      *engine.Properties
	Formatters []*FakeFormatter
}

func (p *PropertiesRecorder) reject(name string) error {
	return p.Script.Reject[name]
}

func (p *PropertiesRecorder) ParsePattern(pattern string, ignoreRounding bool) (*engine.Properties, error) {
	p.Calls = append(p.Calls, fmt.Sprintf("ParsePattern(%s, ignoreRounding=%t)", pattern, ignoreRounding))
	if err := p.reject("ParsePattern"); err != nil {
		return nil, err
	}
	p.Parsed = engine.NewProperties()
	return p.Parsed, nil
}

func (p *PropertiesRecorder) ParseToExisting(pattern string, props *engine.Properties, ignoreRounding bool) error {
	p.Calls = append(p.Calls, fmt.Sprintf("ParseToExisting(%s, ignoreRounding=%t)", pattern, ignoreRounding))
	return p.reject("ParseToExisting")
}

func (p *PropertiesRecorder) ConvertLocalized(localized string, locale language.Tag) (string, error) {
	p.Calls = append(p.Calls, fmt.Sprintf("ConvertLocalized(%s, %s)", localized, locale))
	if err := p.reject("ConvertLocalized"); err != nil {
		return "", err
	}
	if canonical, ok := p.Localized[localized]; ok {
		return canonical, nil
	}
	return localized, nil
}

func (p *PropertiesRecorder) NewFormatter(props *engine.Properties, locale language.Tag) (engine.Formatter, error) {
	p.Calls = append(p.Calls, fmt.Sprintf("NewFormatter(%s)", locale))
	if err := p.reject("NewFormatter"); err != nil {
		return nil, err
	}
	p.Final = props
	f := &FakeFormatter{Script: p.Script}
	p.Formatters = append(p.Formatters, f)
	if p.Script.ParsesCurrency {
		return currencyFormatter{f}, nil
	}
	return f, nil
}
