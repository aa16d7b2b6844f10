package scenario

import "github.com/cockroachdb/apd/v3"

// Field identifies one configuration field of a Scenario. Inputs and
// expectations are not fields: backends never receive them as settings.
type Field int

const (
	FieldPattern Field = iota
	FieldLocalizedPattern
	FieldLocale
	FieldMinIntegerDigits
	FieldMaxIntegerDigits
	FieldMinFractionDigits
	FieldMaxFractionDigits
	FieldMinSigDigits
	FieldMaxSigDigits
	FieldUseSigDigits
	FieldUseGrouping
	FieldGrouping
	FieldGrouping2
	FieldMinGroupingDigits
	FieldMultiplier
	FieldRoundingIncrement
	FieldRoundingMode
	FieldUseScientific
	FieldMinimumExponentDigits
	FieldExponentSignAlwaysShown
	FieldFormatWidth
	FieldPadCharacter
	FieldPadPosition
	FieldPositivePrefix
	FieldPositiveSuffix
	FieldNegativePrefix
	FieldNegativeSuffix
	FieldCurrency
	FieldCurrencyUsage
	FieldLenient
	FieldParseIntegerOnly
	FieldParseCaseSensitive
	FieldDecimalPatternMatchRequired
	FieldParseNoExponent
	FieldDecimalSeparatorAlwaysShown

	fieldCount
)

type fieldDesc struct {
	name    string
	isSet   func(*Scenario) bool
	inherit func(dst, def *Scenario)
}

func describe[T any](name string, get func(*Scenario) *Opt[T]) fieldDesc {
	return fieldDesc{
		name:  name,
		isSet: func(s *Scenario) bool { return get(s).IsSet() },
		inherit: func(dst, def *Scenario) {
			p := get(dst)
			*p = p.orElse(*get(def))
		},
	}
}

var fieldTable = [fieldCount]fieldDesc{
	FieldPattern:                     describe("pattern", func(s *Scenario) *Opt[string] { return &s.Pattern }),
	FieldLocalizedPattern:            describe("localizedPattern", func(s *Scenario) *Opt[string] { return &s.LocalizedPattern }),
	FieldLocale:                      describe("locale", func(s *Scenario) *Opt[string] { return &s.Locale }),
	FieldMinIntegerDigits:            describe("minIntegerDigits", func(s *Scenario) *Opt[int] { return &s.MinIntegerDigits }),
	FieldMaxIntegerDigits:            describe("maxIntegerDigits", func(s *Scenario) *Opt[int] { return &s.MaxIntegerDigits }),
	FieldMinFractionDigits:           describe("minFractionDigits", func(s *Scenario) *Opt[int] { return &s.MinFractionDigits }),
	FieldMaxFractionDigits:           describe("maxFractionDigits", func(s *Scenario) *Opt[int] { return &s.MaxFractionDigits }),
	FieldMinSigDigits:                describe("minSigDigits", func(s *Scenario) *Opt[int] { return &s.MinSigDigits }),
	FieldMaxSigDigits:                describe("maxSigDigits", func(s *Scenario) *Opt[int] { return &s.MaxSigDigits }),
	FieldUseSigDigits:                describe("useSigDigits", func(s *Scenario) *Opt[bool] { return &s.UseSigDigits }),
	FieldUseGrouping:                 describe("useGrouping", func(s *Scenario) *Opt[bool] { return &s.UseGrouping }),
	FieldGrouping:                    describe("grouping", func(s *Scenario) *Opt[int] { return &s.Grouping }),
	FieldGrouping2:                   describe("grouping2", func(s *Scenario) *Opt[int] { return &s.Grouping2 }),
	FieldMinGroupingDigits:           describe("minGroupingDigits", func(s *Scenario) *Opt[int] { return &s.MinGroupingDigits }),
	FieldMultiplier:                  describe("multiplier", func(s *Scenario) *Opt[int] { return &s.Multiplier }),
	FieldRoundingIncrement:           describe("roundingIncrement", func(s *Scenario) *Opt[apd.Decimal] { return &s.RoundingIncrement }),
	FieldRoundingMode:                describe("roundingMode", func(s *Scenario) *Opt[RoundingMode] { return &s.RoundingMode }),
	FieldUseScientific:               describe("useScientific", func(s *Scenario) *Opt[bool] { return &s.UseScientific }),
	FieldMinimumExponentDigits:       describe("minimumExponentDigits", func(s *Scenario) *Opt[int] { return &s.MinimumExponentDigits }),
	FieldExponentSignAlwaysShown:     describe("exponentSignAlwaysShown", func(s *Scenario) *Opt[bool] { return &s.ExponentSignAlwaysShown }),
	FieldFormatWidth:                 describe("formatWidth", func(s *Scenario) *Opt[int] { return &s.FormatWidth }),
	FieldPadCharacter:                describe("padCharacter", func(s *Scenario) *Opt[string] { return &s.PadCharacter }),
	FieldPadPosition:                 describe("padPosition", func(s *Scenario) *Opt[PadPosition] { return &s.PadPosition }),
	FieldPositivePrefix:              describe("positivePrefix", func(s *Scenario) *Opt[string] { return &s.PositivePrefix }),
	FieldPositiveSuffix:              describe("positiveSuffix", func(s *Scenario) *Opt[string] { return &s.PositiveSuffix }),
	FieldNegativePrefix:              describe("negativePrefix", func(s *Scenario) *Opt[string] { return &s.NegativePrefix }),
	FieldNegativeSuffix:              describe("negativeSuffix", func(s *Scenario) *Opt[string] { return &s.NegativeSuffix }),
	FieldCurrency:                    describe("currency", func(s *Scenario) *Opt[string] { return &s.Currency }),
	FieldCurrencyUsage:               describe("currencyUsage", func(s *Scenario) *Opt[CurrencyUsage] { return &s.CurrencyUsage }),
	FieldLenient:                     describe("lenient", func(s *Scenario) *Opt[bool] { return &s.Lenient }),
	FieldParseIntegerOnly:            describe("parseIntegerOnly", func(s *Scenario) *Opt[bool] { return &s.ParseIntegerOnly }),
	FieldParseCaseSensitive:          describe("parseCaseSensitive", func(s *Scenario) *Opt[bool] { return &s.ParseCaseSensitive }),
	FieldDecimalPatternMatchRequired: describe("decimalPatternMatchRequired", func(s *Scenario) *Opt[bool] { return &s.DecimalPatternMatchRequired }),
	FieldParseNoExponent:             describe("parseNoExponent", func(s *Scenario) *Opt[bool] { return &s.ParseNoExponent }),
	FieldDecimalSeparatorAlwaysShown: describe("decimalSeparatorAlwaysShown", func(s *Scenario) *Opt[bool] { return &s.DecimalSeparatorAlwaysShown }),
}

func (f Field) valid() bool { return f >= 0 && f < fieldCount }

// String returns the field's name as written in suite files.
func (f Field) String() string {
	if !f.valid() {
		return "field(?)"
	}
	return fieldTable[f].name
}

// AllFields lists every configuration field in catalogue order.
func AllFields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// ParseField looks a field up by its suite-file name.
func ParseField(name string) (Field, bool) {
	for f := Field(0); f < fieldCount; f++ {
		if fieldTable[f].name == name {
			return f, true
		}
	}
	return 0, false
}
