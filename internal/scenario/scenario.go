package scenario

import (
	"fmt"
	"slices"

	"github.com/cockroachdb/apd/v3"
	"gopkg.in/yaml.v3"
)

// RoundingMode names a rounding rule. Backends interpret it.
type RoundingMode string

const (
	RoundUp          RoundingMode = "up"
	RoundDown        RoundingMode = "down"
	RoundCeiling     RoundingMode = "ceiling"
	RoundFloor       RoundingMode = "floor"
	RoundHalfUp      RoundingMode = "halfUp"
	RoundHalfDown    RoundingMode = "halfDown"
	RoundHalfEven    RoundingMode = "halfEven"
	RoundUnnecessary RoundingMode = "unnecessary"
)

// RoundingModes lists every accepted rounding mode.
var RoundingModes = []RoundingMode{
	RoundUp, RoundDown, RoundCeiling, RoundFloor,
	RoundHalfUp, RoundHalfDown, RoundHalfEven, RoundUnnecessary,
}

// PadPosition says where padding is inserted.
type PadPosition string

const (
	PadBeforePrefix PadPosition = "beforePrefix"
	PadAfterPrefix  PadPosition = "afterPrefix"
	PadBeforeSuffix PadPosition = "beforeSuffix"
	PadAfterSuffix  PadPosition = "afterSuffix"
)

var PadPositions = []PadPosition{PadBeforePrefix, PadAfterPrefix, PadBeforeSuffix, PadAfterSuffix}

// CurrencyUsage selects standard or cash rounding for a currency.
type CurrencyUsage string

const (
	UsageStandard CurrencyUsage = "standard"
	UsageCash     CurrencyUsage = "cash"
)

var CurrencyUsages = []CurrencyUsage{UsageStandard, UsageCash}

func (m *RoundingMode) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, (*string)(m), RoundingModes)
}

func (p *PadPosition) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, (*string)(p), PadPositions)
}

func (u *CurrencyUsage) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, (*string)(u), CurrencyUsages)
}

func decodeEnum[E ~string](node *yaml.Node, out *string, allowed []E) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if !slices.Contains(allowed, E(s)) {
		return fmt.Errorf("line %d: %q is not one of %v", node.Line, s, allowed)
	}
	*out = s
	return nil
}

// Scenario is one conformance case: configuration fields plus the expected
// result of one or more operations.
//
// A Scenario is read-only once decoded. Adapters and translators receive a
// pointer and never write through it, so the same value can be handed to
// every backend in turn.
type Scenario struct {
	Name    string   `yaml:"name"`
	Comment string   `yaml:"comment,omitempty"`
	Breaks  []string `yaml:"breaks,omitempty"`

	// Formatting surface.
	Pattern          Opt[string] `yaml:"pattern"`
	LocalizedPattern Opt[string] `yaml:"localizedPattern"`
	Locale           Opt[string] `yaml:"locale"`

	// Digit counts.
	MinIntegerDigits  Opt[int]  `yaml:"minIntegerDigits"`
	MaxIntegerDigits  Opt[int]  `yaml:"maxIntegerDigits"`
	MinFractionDigits Opt[int]  `yaml:"minFractionDigits"`
	MaxFractionDigits Opt[int]  `yaml:"maxFractionDigits"`
	MinSigDigits      Opt[int]  `yaml:"minSigDigits"`
	MaxSigDigits      Opt[int]  `yaml:"maxSigDigits"`
	UseSigDigits      Opt[bool] `yaml:"useSigDigits"`

	// Grouping.
	UseGrouping       Opt[bool] `yaml:"useGrouping"`
	Grouping          Opt[int]  `yaml:"grouping"`
	Grouping2         Opt[int]  `yaml:"grouping2"`
	MinGroupingDigits Opt[int]  `yaml:"minGroupingDigits"`

	// Rounding.
	Multiplier        Opt[int]          `yaml:"multiplier"`
	RoundingIncrement Opt[apd.Decimal]  `yaml:"roundingIncrement"`
	RoundingMode      Opt[RoundingMode] `yaml:"roundingMode"`

	// Exponent.
	UseScientific           Opt[bool] `yaml:"useScientific"`
	MinimumExponentDigits   Opt[int]  `yaml:"minimumExponentDigits"`
	ExponentSignAlwaysShown Opt[bool] `yaml:"exponentSignAlwaysShown"`

	// Padding.
	FormatWidth  Opt[int]         `yaml:"formatWidth"`
	PadCharacter Opt[string]      `yaml:"padCharacter"`
	PadPosition  Opt[PadPosition] `yaml:"padPosition"`

	// Affixes.
	PositivePrefix Opt[string] `yaml:"positivePrefix"`
	PositiveSuffix Opt[string] `yaml:"positiveSuffix"`
	NegativePrefix Opt[string] `yaml:"negativePrefix"`
	NegativeSuffix Opt[string] `yaml:"negativeSuffix"`

	// Currency.
	Currency      Opt[string]        `yaml:"currency"`
	CurrencyUsage Opt[CurrencyUsage] `yaml:"currencyUsage"`

	// Parsing.
	Lenient                     Opt[bool] `yaml:"lenient"`
	ParseIntegerOnly            Opt[bool] `yaml:"parseIntegerOnly"`
	ParseCaseSensitive          Opt[bool] `yaml:"parseCaseSensitive"`
	DecimalPatternMatchRequired Opt[bool] `yaml:"decimalPatternMatchRequired"`
	ParseNoExponent             Opt[bool] `yaml:"parseNoExponent"`

	DecimalSeparatorAlwaysShown Opt[bool] `yaml:"decimalSeparatorAlwaysShown"`

	// Inputs and expectations.
	Format             Opt[string] `yaml:"format"`
	Output             Opt[string] `yaml:"output"`
	ToPattern          Opt[string] `yaml:"toPattern"`
	ToLocalizedPattern Opt[string] `yaml:"toLocalizedPattern"`
	Parse              Opt[string] `yaml:"parse"`
	OutputCurrency     Opt[string] `yaml:"outputCurrency"`
}

// Has reports whether the configuration field f is set.
func (s *Scenario) Has(f Field) bool {
	if !f.valid() {
		return false
	}
	return fieldTable[f].isSet(s)
}

// SetFields lists the configuration fields s sets, in catalogue order.
func (s *Scenario) SetFields() []Field {
	var out []Field
	for f := Field(0); f < fieldCount; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// BreaksOn reports whether the scenario is marked as a known failure for
// the given backend.
func (s *Scenario) BreaksOn(backend string) bool {
	return slices.Contains(s.Breaks, backend)
}

// withDefaults returns a copy of s where every unset configuration field
// takes the value from defaults. Name, comment, breaks and expectations
// are never inherited.
func (s Scenario) withDefaults(d *Scenario) Scenario {
	if d == nil {
		return s
	}
	for f := Field(0); f < fieldCount; f++ {
		fieldTable[f].inherit(&s, d)
	}
	return s
}
