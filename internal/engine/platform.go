package engine

import "golang.org/x/text/language"

// PlatformFormat is the setter surface of a platform formatter. It is the
// narrower control set of a JDK-style DecimalFormat: no significant
// digits, padding, rounding controls, scientific notation or lenient
// parsing.
type PlatformFormat interface {
	SetMinimumIntegerDigits(n int)
	SetMaximumIntegerDigits(n int)
	SetMinimumFractionDigits(n int)
	SetMaximumFractionDigits(n int)
	SetCurrency(code string) error
	SetGroupingUsed(used bool)
	SetMultiplier(n int) error
	SetGroupingSize(n int)
	SetDecimalSeparatorAlwaysShown(on bool)
	SetPositivePrefix(s string)
	SetPositiveSuffix(s string)
	SetNegativePrefix(s string)
	SetNegativeSuffix(s string)
	ApplyLocalizedPattern(pattern string) error
	SetParseIntegerOnly(on bool)

	Formatter
}

// PlatformFactory builds a platform formatter for a pattern and locale.
// An error means the engine rejected the pattern or locale.
type PlatformFactory func(pattern string, locale language.Tag) (PlatformFormat, error)
