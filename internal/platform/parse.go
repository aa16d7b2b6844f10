package platform

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/numconform/internal/oracle"
)

const (
	nanText      = "NaN"
	infinityText = "∞"
)

// Parse reads a number from the start of text the way DecimalFormat.parse
// does: an affix pair, locale digits with optional grouping and a decimal
// separator. The matching suffix must follow. consumed is zero when
// nothing parses.
func (f *Format) Parse(text string) (oracle.Number, int) {
	if strings.HasPrefix(text, nanText) {
		return oracle.NaN(), len(nanText)
	}

	posPrefix, negPrefix := f.expand(f.st.posPrefix), f.expand(f.st.negPrefix)
	posSuffix, negSuffix := f.expand(f.st.posSuffix), f.expand(f.st.negSuffix)

	// The longer matching prefix wins, as when the negative prefix extends
	// the positive one.
	matchPos := strings.HasPrefix(text, posPrefix)
	matchNeg := negPrefix != "" && strings.HasPrefix(text, negPrefix)
	var neg bool
	var pos int
	switch {
	case matchNeg && (!matchPos || len(negPrefix) > len(posPrefix)):
		neg, pos = true, len(negPrefix)
	case matchPos:
		pos = len(posPrefix)
	default:
		return oracle.Number{}, 0
	}

	var n oracle.Number
	if strings.HasPrefix(text[pos:], infinityText) {
		n = oracle.Inf(neg)
		pos += len(infinityText)
	} else {
		digits, end, stoppedAtDecimal := f.scanDigits(text, pos)
		if digits == "" {
			return oracle.Number{}, 0
		}
		d, _, err := apd.NewFromString(digits)
		if err != nil {
			return oracle.Number{}, 0
		}
		if f.st.multiplier != 1 {
			if _, err := decimalCtx.Quo(d, d, apd.New(int64(f.st.multiplier), 0)); err != nil {
				return oracle.Number{}, 0
			}
		}
		d.Negative = neg
		n, pos = oracle.Decimal(d), end
		if stoppedAtDecimal {
			// Integer-only parsing ends at the separator, suffix unread.
			return n, pos
		}
	}

	suffix := posSuffix
	if neg {
		suffix = negSuffix
	}
	if !strings.HasPrefix(text[pos:], suffix) {
		return oracle.Number{}, 0
	}
	return n, pos + len(suffix)
}

// scanDigits collects the digits starting at pos as an ASCII decimal
// string. end is the offset just past the last byte used.
func (f *Format) scanDigits(text string, pos int) (digits string, end int, stoppedAtDecimal bool) {
	var b strings.Builder
	sawDigit, sawDecimal := false, false
	end = pos
	for pos < len(text) {
		rest := text[pos:]
		r, size := utf8.DecodeRuneInString(rest)
		if v, ok := f.sym.digit(r); ok {
			b.WriteByte(byte('0' + v))
			sawDigit = true
			pos += size
			end = pos
			continue
		}
		if !sawDecimal && strings.HasPrefix(rest, f.sym.decimal) {
			if f.parseIntegerOnly {
				return digitsOrEmpty(b.String(), sawDigit), end, sawDigit
			}
			b.WriteByte('.')
			sawDecimal = true
			pos += len(f.sym.decimal)
			end = pos
			continue
		}
		if f.groupingUsed && !sawDecimal && sawDigit && strings.HasPrefix(rest, f.sym.group) {
			pos += len(f.sym.group)
			continue
		}
		break
	}
	return digitsOrEmpty(b.String(), sawDigit), end, false
}

// digitsOrEmpty normalizes the collected digits for apd, or returns ""
// when there were none.
func digitsOrEmpty(s string, sawDigit bool) string {
	if !sawDigit {
		return ""
	}
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	return s
}
