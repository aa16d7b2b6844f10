package platform

import (
	"fmt"
	"strings"
)

// Pattern characters. Affix text is everything outside the number part.
const (
	digitChar    = '#'
	zeroChar     = '0'
	groupChar    = ','
	decimalChar  = '.'
	sepChar      = ';'
	exponentChar = 'E'
	quoteChar    = '\''
	percentChar  = '%'
	permillChar  = '‰'
	currencyChar = '¤'
	minusChar    = '-'
)

// unlimited is the maximum integer digit count a pattern implies.
const unlimited = 1<<31 - 1

// affix is prefix or suffix text. Affixes read from a pattern expand
// their special characters when formatting; affixes set directly are
// literal.
type affix struct {
	text    string
	literal bool
}

// patternState is what a pattern sets. Setters modify it afterwards.
type patternState struct {
	posPrefix, posSuffix affix
	negPrefix, negSuffix affix

	minInt, maxInt   int
	minFrac, maxFrac int
	groupingSize     int
	decimalShown     bool
	multiplier       int
	currency         bool
}

// readPattern parses a canonical pattern. An explicit negative subpattern
// contributes only its affixes.
func readPattern(pattern string) (patternState, error) {
	st := patternState{multiplier: 1, maxInt: unlimited}
	pos, neg, hasNeg, err := splitPattern(pattern)
	if err != nil {
		return st, err
	}

	prefix, number, suffix, err := splitAffixes(pos)
	if err != nil {
		return st, fmt.Errorf("pattern %q: %w", pattern, err)
	}
	if err := st.readNumber(number); err != nil {
		return st, fmt.Errorf("pattern %q: %w", pattern, err)
	}
	st.posPrefix = affix{text: prefix}
	st.posSuffix = affix{text: suffix}
	st.negPrefix = affix{text: string(minusChar) + prefix}
	st.negSuffix = affix{text: suffix}
	if hasNeg {
		nPrefix, _, nSuffix, err := splitAffixes(neg)
		if err != nil {
			return st, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		st.negPrefix = affix{text: nPrefix}
		st.negSuffix = affix{text: nSuffix}
	}

	for _, a := range []string{st.posPrefix.text, st.posSuffix.text} {
		switch {
		case strings.ContainsRune(a, percentChar):
			st.multiplier = 100
		case strings.ContainsRune(a, permillChar):
			st.multiplier = 1000
		}
		if strings.ContainsRune(a, currencyChar) {
			st.currency = true
		}
	}
	return st, nil
}

// splitPattern cuts a pattern at its unquoted subpattern separator.
func splitPattern(pattern string) (pos, neg string, hasNeg bool, err error) {
	quoted := false
	for i, r := range pattern {
		switch {
		case r == quoteChar:
			quoted = !quoted
		case r == sepChar && !quoted:
			if strings.ContainsRune(pattern[i+1:], sepChar) {
				return "", "", false, fmt.Errorf("pattern %q: more than two subpatterns", pattern)
			}
			return pattern[:i], pattern[i+1:], true, nil
		}
	}
	if quoted {
		return "", "", false, fmt.Errorf("pattern %q: unterminated quote", pattern)
	}
	return pattern, "", false, nil
}

func isNumberChar(r rune) bool {
	switch r {
	case digitChar, zeroChar, groupChar, decimalChar:
		return true
	}
	return r >= '1' && r <= '9'
}

// splitAffixes separates a subpattern into unquoted prefix text, the
// number part and unquoted suffix text.
func splitAffixes(sub string) (prefix, number, suffix string, err error) {
	var pre, num, suf strings.Builder
	phase := 0
	quoted := false
	runes := []rune(sub)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == quoteChar {
			if i+1 < len(runes) && runes[i+1] == quoteChar {
				i++ // '' is a literal quote
			} else {
				quoted = !quoted
				continue
			}
		} else if !quoted && phase < 2 {
			if isNumberChar(r) {
				phase = 1
				num.WriteRune(r)
				continue
			}
			if r == exponentChar && phase == 1 {
				return "", "", "", fmt.Errorf("exponent patterns are not supported")
			}
		}
		if phase == 1 {
			phase = 2
		}
		if phase == 0 {
			pre.WriteRune(r)
		} else {
			suf.WriteRune(r)
		}
	}
	if quoted {
		return "", "", "", fmt.Errorf("unterminated quote")
	}
	if num.Len() == 0 {
		return "", "", "", fmt.Errorf("no number part")
	}
	return pre.String(), num.String(), suf.String(), nil
}

func (st *patternState) readNumber(number string) error {
	intPart, fracPart, hasDecimal := strings.Cut(number, string(decimalChar))
	if strings.ContainsRune(fracPart, decimalChar) {
		return fmt.Errorf("more than one decimal separator")
	}
	if strings.ContainsRune(fracPart, groupChar) {
		return fmt.Errorf("grouping separator after decimal separator")
	}

	sawZero := false
	for _, r := range strings.ReplaceAll(intPart, string(groupChar), "") {
		switch {
		case r == digitChar && sawZero:
			return fmt.Errorf("'#' after '0' in integer part")
		case r == digitChar:
		default:
			sawZero = true
			st.minInt++
		}
	}
	if i := strings.LastIndexByte(intPart, groupChar); i >= 0 {
		st.groupingSize = len(intPart) - i - 1
	}

	sawDigit := false
	for _, r := range fracPart {
		switch {
		case r == digitChar:
			sawDigit = true
		case sawDigit:
			return fmt.Errorf("'0' after '#' in fraction part")
		default:
			st.minFrac++
		}
		st.maxFrac++
	}
	st.decimalShown = hasDecimal && st.maxFrac == 0
	return nil
}

// writePattern renders st the way DecimalFormat.toPattern does. With
// localize, the number part uses the locale's symbols.
func writePattern(st patternState, sym symbols, groupingUsed, localize bool) string {
	number := st.writeNumber(groupingUsed)
	if localize {
		number = sym.localize(number)
	}

	var b strings.Builder
	b.WriteString(quoteAffix(st.posPrefix))
	b.WriteString(number)
	b.WriteString(quoteAffix(st.posSuffix))
	defaultNeg := st.negSuffix == st.posSuffix &&
		st.negPrefix.literal == st.posPrefix.literal &&
		st.negPrefix.text == string(minusChar)+st.posPrefix.text
	if !defaultNeg {
		b.WriteRune(sepChar)
		b.WriteString(quoteAffix(st.negPrefix))
		b.WriteString(number)
		b.WriteString(quoteAffix(st.negSuffix))
	}
	return b.String()
}

func (st patternState) writeNumber(groupingUsed bool) string {
	var b strings.Builder
	size := st.groupingSize
	digits := max(size, st.minInt) + 1
	for i := digits; i > 0; i-- {
		if i != digits && groupingUsed && size > 0 && i%size == 0 {
			b.WriteRune(groupChar)
		}
		if i <= st.minInt {
			b.WriteRune(zeroChar)
		} else {
			b.WriteRune(digitChar)
		}
	}
	if st.maxFrac > 0 || st.decimalShown {
		b.WriteRune(decimalChar)
	}
	for i := 0; i < st.maxFrac; i++ {
		if i < st.minFrac {
			b.WriteRune(zeroChar)
		} else {
			b.WriteRune(digitChar)
		}
	}
	return b.String()
}

// quoteAffix quotes pattern syntax inside affix text. Literal affixes
// also quote the characters that would otherwise expand.
func quoteAffix(a affix) string {
	var b strings.Builder
	for _, r := range a.text {
		switch {
		case r == quoteChar:
			b.WriteString("''")
		case isNumberChar(r) || r == sepChar || r == exponentChar,
			a.literal && (r == percentChar || r == permillChar || r == currencyChar || r == minusChar):
			b.WriteRune(quoteChar)
			b.WriteRune(r)
			b.WriteRune(quoteChar)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
