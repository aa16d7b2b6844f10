package engine

import (
	"golang.org/x/text/language"

	"github.com/roach88/numconform/internal/oracle"
	"github.com/roach88/numconform/internal/scenario"
)

// LegacyFormat is the setter surface of a legacy formatter.
//
// Setters that return an error may reject a value; the rejection is fatal
// to the scenario being evaluated. Setters without an error return accept
// anything.
type LegacyFormat interface {
	SetMinimumIntegerDigits(n int)
	SetMaximumIntegerDigits(n int)
	SetMinimumFractionDigits(n int)
	SetMaximumFractionDigits(n int)
	SetCurrency(code string) error
	SetSignificantDigitsUsed(used bool)
	SetMinimumSignificantDigits(n int)
	SetMaximumSignificantDigits(n int)
	SetGroupingUsed(used bool)
	SetMultiplier(n int) error
	SetRoundingIncrement(inc float64) error
	SetFormatWidth(width int)
	SetPadCharacter(c rune)
	SetScientificNotation(on bool)
	SetGroupingSize(n int)
	SetSecondaryGroupingSize(n int)
	SetRoundingMode(mode scenario.RoundingMode) error
	SetCurrencyUsage(usage scenario.CurrencyUsage) error
	SetMinimumExponentDigits(n int)
	SetExponentSignAlwaysShown(on bool)
	SetDecimalSeparatorAlwaysShown(on bool)
	SetPadPosition(pos scenario.PadPosition) error
	SetPositivePrefix(s string)
	SetPositiveSuffix(s string)
	SetNegativePrefix(s string)
	SetNegativeSuffix(s string)
	ApplyLocalizedPattern(pattern string) error
	SetParseStrict(strict bool)
	SetParseIntegerOnly(on bool)
	SetDecimalPatternMatchRequired(on bool)

	Formatter
}

// LegacyFactory builds a legacy formatter for a pattern and locale.
// An error means the engine rejected the pattern or locale.
type LegacyFactory func(pattern string, locale language.Tag) (LegacyFormat, error)

// Formatter is the operation surface shared by every engine formatter.
type Formatter interface {
	// Format renders n.
	Format(n oracle.Number) (string, error)

	// ToPattern returns the canonical pattern the formatter would print.
	ToPattern() string

	// ToLocalizedPattern returns the pattern using locale symbols.
	ToLocalizedPattern() string

	// Parse reads a number from the start of text. consumed is the number
	// of bytes read; zero means the parse failed and n is meaningless.
	Parse(text string) (n oracle.Number, consumed int)
}

// CurrencyAmount is a parsed number tagged with a currency code.
type CurrencyAmount struct {
	Number   oracle.Number
	Currency string
}

// CurrencyParser is implemented by formatters that can parse currency
// amounts. Formatters without it decline currency parsing.
type CurrencyParser interface {
	ParseCurrency(text string) (amount CurrencyAmount, consumed int)
}
