package platform

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/roach88/numconform/internal/engine"
	"github.com/roach88/numconform/internal/oracle"
)

// x/text groups by the locale's rule, which is three digits for the
// locales it supports.
const localeGroupingSize = 3

var decimalCtx = apd.BaseContext.WithPrecision(100)

// Format is a platform formatter rendered by x/text.
type Format struct {
	printer *message.Printer
	sym     symbols
	st      patternState

	groupingUsed     bool
	currency         currency.Unit
	parseIntegerOnly bool
}

var _ engine.PlatformFormat = (*Format)(nil)

// New builds a Format from a canonical pattern. It implements
// engine.PlatformFactory.
func New(pattern string, locale language.Tag) (engine.PlatformFormat, error) {
	st, err := readPattern(pattern)
	if err != nil {
		return nil, err
	}
	p := message.NewPrinter(locale)
	f := &Format{
		printer:      p,
		sym:          loadSymbols(p),
		st:           st,
		groupingUsed: st.groupingSize > 0,
	}
	if unit, conf := currency.FromTag(locale); conf != language.No {
		f.currency = unit
	}
	return f, nil
}

// Setting a currency on a currency pattern moves the fraction digits to
// the currency's.
func (f *Format) adjustForCurrency() {
	if !f.st.currency || f.currency == (currency.Unit{}) {
		return
	}
	scale, _ := currency.Standard.Rounding(f.currency)
	f.st.minFrac = scale
	f.st.maxFrac = scale
}

func (f *Format) SetMinimumIntegerDigits(n int) {
	f.st.minInt = max(n, 0)
	f.st.maxInt = max(f.st.maxInt, f.st.minInt)
}

func (f *Format) SetMaximumIntegerDigits(n int) {
	f.st.maxInt = max(n, 0)
	f.st.minInt = min(f.st.minInt, f.st.maxInt)
}

func (f *Format) SetMinimumFractionDigits(n int) {
	f.st.minFrac = max(n, 0)
	f.st.maxFrac = max(f.st.maxFrac, f.st.minFrac)
}

func (f *Format) SetMaximumFractionDigits(n int) {
	f.st.maxFrac = max(n, 0)
	f.st.minFrac = min(f.st.minFrac, f.st.maxFrac)
}

func (f *Format) SetCurrency(code string) error {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Errorf("currency %q: %w", code, err)
	}
	f.currency = unit
	f.adjustForCurrency()
	return nil
}

func (f *Format) SetGroupingUsed(used bool) { f.groupingUsed = used }

func (f *Format) SetMultiplier(n int) error {
	if n == 0 {
		return errors.New("multiplier must be nonzero")
	}
	f.st.multiplier = n
	return nil
}

func (f *Format) SetGroupingSize(n int) { f.st.groupingSize = max(n, 0) }

func (f *Format) SetDecimalSeparatorAlwaysShown(on bool) { f.st.decimalShown = on }

func (f *Format) SetPositivePrefix(s string) { f.st.posPrefix = affix{text: s, literal: true} }
func (f *Format) SetPositiveSuffix(s string) { f.st.posSuffix = affix{text: s, literal: true} }
func (f *Format) SetNegativePrefix(s string) { f.st.negPrefix = affix{text: s, literal: true} }
func (f *Format) SetNegativeSuffix(s string) { f.st.negSuffix = affix{text: s, literal: true} }

// ApplyLocalizedPattern replaces the pattern state, as applying a pattern
// does at construction.
func (f *Format) ApplyLocalizedPattern(pattern string) error {
	st, err := readPattern(f.sym.delocalize(pattern))
	if err != nil {
		return err
	}
	f.st = st
	f.groupingUsed = st.groupingSize > 0
	return nil
}

func (f *Format) SetParseIntegerOnly(on bool) { f.parseIntegerOnly = on }

func (f *Format) ToPattern() string {
	return writePattern(f.st, f.sym, f.groupingUsed, false)
}

func (f *Format) ToLocalizedPattern() string {
	return writePattern(f.st, f.sym, f.groupingUsed, true)
}

// Format renders n. Grouping other than the locale's own is rejected
// rather than rendered wrong.
func (f *Format) Format(n oracle.Number) (string, error) {
	if n.IsNaN() {
		return f.printer.Sprint(number.Decimal(math.NaN())), nil
	}
	grouped := f.groupingUsed && f.st.groupingSize > 0
	if grouped && f.st.groupingSize != localeGroupingSize {
		return "", fmt.Errorf("x/text cannot group by %d digits", f.st.groupingSize)
	}

	neg, v := f.magnitude(n)
	opts := []number.Option{
		number.MinIntegerDigits(f.st.minInt),
		number.MinFractionDigits(f.st.minFrac),
		number.MaxFractionDigits(f.st.maxFrac),
	}
	if f.st.maxInt < unlimited {
		opts = append(opts, number.MaxIntegerDigits(f.st.maxInt))
	}
	if !grouped {
		opts = append(opts, number.NoSeparator())
	}
	body := f.printer.Sprint(number.Decimal(v, opts...))
	if f.st.decimalShown && !strings.Contains(body, f.sym.decimal) {
		body += f.sym.decimal
	}

	prefix, suffix := f.st.posPrefix, f.st.posSuffix
	if neg {
		prefix, suffix = f.st.negPrefix, f.st.negSuffix
	}
	return f.expand(prefix) + body + f.expand(suffix), nil
}

// magnitude applies the multiplier and returns the sign and the absolute
// value in the most exact form x/text accepts: int64 for integers that
// fit, float64 otherwise.
func (f *Format) magnitude(n oracle.Number) (neg bool, v any) {
	d, ok := n.Exact()
	if !ok {
		x := n.Float64() * float64(f.st.multiplier)
		return math.Signbit(x), math.Abs(x)
	}
	var scaled apd.Decimal
	if _, err := decimalCtx.Mul(&scaled, d, apd.New(int64(f.st.multiplier), 0)); err != nil {
		x := n.Float64() * float64(f.st.multiplier)
		return math.Signbit(x), math.Abs(x)
	}
	neg = scaled.Negative
	scaled.Negative = false
	if i, err := scaled.Int64(); err == nil {
		return neg, i
	}
	x, _ := scaled.Float64()
	return neg, x
}

// expand renders an affix, replacing pattern specials with locale
// symbols.
func (f *Format) expand(a affix) string {
	if a.literal {
		return a.text
	}
	var b strings.Builder
	for _, r := range a.text {
		switch r {
		case minusChar:
			b.WriteString(f.sym.minus)
		case percentChar:
			b.WriteString(f.sym.percent)
		case currencyChar:
			if f.currency != (currency.Unit{}) {
				b.WriteString(f.printer.Sprint(currency.Symbol(f.currency)))
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
