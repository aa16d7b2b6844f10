package engine

import (
	"github.com/cockroachdb/apd/v3"
	"golang.org/x/text/language"

	"github.com/roach88/numconform/internal/scenario"
)

// Unset marks an integer property the engine should choose itself.
const Unset = -1

// ParseMode selects how strictly a property formatter parses.
type ParseMode int

const (
	ParseModeDefault ParseMode = iota
	ParseModeStrict
	ParseModeLenient
)

func (m ParseMode) String() string {
	switch m {
	case ParseModeStrict:
		return "strict"
	case ParseModeLenient:
		return "lenient"
	default:
		return "default"
	}
}

// Properties is the flat configuration record of a property engine.
// Integer fields use Unset for "not specified"; optional text and enum
// fields use scenario.Opt.
type Properties struct {
	MinimumIntegerDigits     int
	MaximumIntegerDigits     int
	MinimumFractionDigits    int
	MaximumFractionDigits    int
	MinimumSignificantDigits int
	MaximumSignificantDigits int
	MinimumGroupingDigits    int
	GroupingSize             int
	SecondaryGroupingSize    int
	Multiplier               int
	FormatWidth              int
	MinimumExponentDigits    int

	Currency          scenario.Opt[string]
	CurrencyUsage     scenario.Opt[scenario.CurrencyUsage]
	RoundingIncrement scenario.Opt[apd.Decimal]
	RoundingMode      scenario.Opt[scenario.RoundingMode]
	PadString         scenario.Opt[string]
	PadPosition       scenario.Opt[scenario.PadPosition]

	PositivePrefix scenario.Opt[string]
	PositiveSuffix scenario.Opt[string]
	NegativePrefix scenario.Opt[string]
	NegativeSuffix scenario.Opt[string]

	ExponentSignAlwaysShown     bool
	DecimalSeparatorAlwaysShown bool

	ParseMode                   ParseMode
	ParseIntegerOnly            bool
	ParseCaseSensitive          bool
	DecimalPatternMatchRequired bool
	ParseNoExponent             bool
}

// NewProperties returns a record with every integer property Unset.
func NewProperties() *Properties {
	return &Properties{
		MinimumIntegerDigits:     Unset,
		MaximumIntegerDigits:     Unset,
		MinimumFractionDigits:    Unset,
		MaximumFractionDigits:    Unset,
		MinimumSignificantDigits: Unset,
		MaximumSignificantDigits: Unset,
		MinimumGroupingDigits:    Unset,
		GroupingSize:             Unset,
		SecondaryGroupingSize:    Unset,
		Multiplier:               Unset,
		FormatWidth:              Unset,
		MinimumExponentDigits:    Unset,
	}
}

// PropertiesEngine builds formatters from property records.
type PropertiesEngine interface {
	// ParsePattern parses a canonical pattern into a fresh record. With
	// ignoreRounding the pattern's rounding information is dropped, which
	// is how currency formats defer rounding to the currency.
	ParsePattern(pattern string, ignoreRounding bool) (*Properties, error)

	// ParseToExisting parses a canonical pattern onto props, overwriting
	// only what the pattern specifies.
	ParseToExisting(pattern string, props *Properties, ignoreRounding bool) error

	// ConvertLocalized rewrites a pattern written with the locale's
	// symbols into its canonical form.
	ConvertLocalized(localized string, locale language.Tag) (string, error)

	// NewFormatter builds a formatter from a finished record.
	NewFormatter(props *Properties, locale language.Tag) (Formatter, error)
}
