package platform

import (
	"strings"
	"unicode"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// symbols are the locale's number symbols as x/text renders them.
type symbols struct {
	digits  [10]rune
	decimal string
	group   string
	minus   string
	percent string
}

var asciiSymbols = symbols{
	digits:  [10]rune{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'},
	decimal: ".",
	group:   ",",
	minus:   "-",
	percent: "%",
}

// loadSymbols reads the symbols back out of sample numbers formatted by
// p. x/text exposes no symbol table, and this keeps every symbol
// consistent with what Format produces. Anything a sample does not show
// falls back to ASCII.
func loadSymbols(p *message.Printer) symbols {
	sym := asciiSymbols

	// Every digit once, 1 through 9 then 0.
	if ds := []rune(p.Sprint(number.Decimal(int64(1234567890), number.NoSeparator()))); len(ds) == 10 {
		copy(sym.digits[1:], ds[:9])
		sym.digits[0] = ds[9]
	}

	if seps := nonDigitRuns(p.Sprint(number.Decimal(1234567.5))); len(seps) > 0 {
		sym.decimal = seps[len(seps)-1]
		if len(seps) > 1 {
			sym.group = seps[0]
		}
	}
	if runs := nonDigitRuns(p.Sprint(number.Decimal(int64(-1)))); len(runs) > 0 {
		sym.minus = runs[0]
	}
	if runs := nonDigitRuns(p.Sprint(number.Percent(0.01))); len(runs) > 0 {
		sym.percent = strings.TrimSpace(runs[len(runs)-1])
	}
	return sym
}

// nonDigitRuns splits s into the maximal runs of non-digit text.
func nonDigitRuns(s string) []string {
	return strings.FieldsFunc(s, unicode.IsDigit)
}

// digit returns the value of a locale or ASCII digit.
func (s symbols) digit(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}
	for i, d := range s.digits {
		if r == d {
			return i, true
		}
	}
	return 0, false
}

// localize rewrites a canonical number part with locale symbols.
func (s symbols) localize(number string) string {
	return strings.NewReplacer(
		string(zeroChar), string(s.digits[0]),
		string(groupChar), s.group,
		string(decimalChar), s.decimal,
	).Replace(number)
}

// delocalize is the inverse of localize for a whole pattern.
func (s symbols) delocalize(pattern string) string {
	return strings.NewReplacer(
		string(s.digits[0]), string(zeroChar),
		s.group, string(groupChar),
		s.decimal, string(decimalChar),
	).Replace(pattern)
}
