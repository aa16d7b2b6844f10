// Package oracle decides whether a backend's numeric result matches the
// expected value written in a scenario.
//
// Expected values are text. Three sentinel tokens are recognised: "NaN",
// "Inf" and "-Inf". Every other token is read as an exact decimal so the
// expectation itself never loses precision.
//
// Comparison happens in float64. Two decimal strings whose exact values
// differ by less than float64 can represent compare equal; that is the
// oracle's tolerance and it does not attempt anything tighter.
//
// A NaN on either side of a comparison matches anything. The suites rely
// on this leniency, so it is kept even though IEEE equality would reject
// such pairs.
package oracle

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"
)

const (
	tokenNaN    = "NaN"
	tokenInf    = "Inf"
	tokenNegInf = "-Inf"

	// TokenFail is the expected parse output for inputs that must not parse.
	TokenFail = "fail"
)

// SyntaxError reports an expected-value token that is neither a sentinel
// nor a finite decimal.
type SyntaxError struct {
	Token string
	Err   error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oracle: malformed numeric token %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("oracle: malformed numeric token %q", e.Token)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Canonicalize maps an expected-value token onto a Number.
func Canonicalize(text string) (Number, error) {
	switch text {
	case tokenNaN:
		return NaN(), nil
	case tokenInf:
		return Inf(false), nil
	case tokenNegInf:
		return Inf(true), nil
	}

	d, _, err := apd.NewFromString(text)
	if err != nil {
		return Number{}, &SyntaxError{Token: text, Err: err}
	}
	// apd accepts its own spellings of NaN and Infinity; scenario files
	// only use the sentinels above.
	if d.Form != apd.Finite {
		return Number{}, &SyntaxError{Token: text}
	}
	return Decimal(d), nil
}

// Match compares two canonical numbers under the oracle's rule.
func Match(expected, actual Number) bool {
	e := expected.Float64()
	a := actual.Float64()
	if math.IsNaN(e) || math.IsNaN(a) {
		return true
	}
	return e == a
}

// Equivalent canonicalizes expectedText and compares it with actual.
// The error is non-nil only when expectedText is malformed.
func Equivalent(expectedText string, actual Number) (bool, error) {
	expected, err := Canonicalize(expectedText)
	if err != nil {
		return false, err
	}
	return Match(expected, actual), nil
}
