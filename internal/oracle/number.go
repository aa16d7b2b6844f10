package oracle

import (
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Kind classifies a Number.
type Kind uint8

const (
	KindFinite Kind = iota
	KindNaN
	KindPosInf
	KindNegInf
)

// Number is a numeric value exchanged with a backend: either the canonical
// form of an expected token or a result reported by an engine.
//
// Finite values are held either as an exact decimal or as a binary float,
// depending on what produced them. The zero value is the float 0.
type Number struct {
	kind Kind
	dec  *apd.Decimal
	f    float64
}

// Decimal wraps an exact decimal. Non-finite apd forms map onto the
// matching Number kinds.
func Decimal(d *apd.Decimal) Number {
	if d == nil {
		return Number{}
	}
	switch d.Form {
	case apd.NaN, apd.NaNSignaling:
		return NaN()
	case apd.Infinite:
		return Inf(d.Negative)
	}
	return Number{kind: KindFinite, dec: d}
}

// Float wraps a binary float result.
func Float(f float64) Number {
	switch {
	case math.IsNaN(f):
		return NaN()
	case math.IsInf(f, 1):
		return Inf(false)
	case math.IsInf(f, -1):
		return Inf(true)
	}
	return Number{kind: KindFinite, f: f}
}

// Int wraps an integral result.
func Int(i int64) Number {
	return Number{kind: KindFinite, dec: apd.New(i, 0)}
}

func NaN() Number { return Number{kind: KindNaN} }

// Inf returns negative infinity when neg is set, positive infinity otherwise.
func Inf(neg bool) Number {
	if neg {
		return Number{kind: KindNegInf}
	}
	return Number{kind: KindPosInf}
}

func (n Number) Kind() Kind { return n.kind }

func (n Number) IsNaN() bool { return n.kind == KindNaN }

// Exact reports the decimal backing n, if n was built from one.
func (n Number) Exact() (*apd.Decimal, bool) {
	return n.dec, n.kind == KindFinite && n.dec != nil
}

// Float64 converts n to the common comparison type. Decimals beyond the
// float64 range saturate to ±Inf; that is part of the oracle's tolerance.
func (n Number) Float64() float64 {
	switch n.kind {
	case KindNaN:
		return math.NaN()
	case KindPosInf:
		return math.Inf(1)
	case KindNegInf:
		return math.Inf(-1)
	}
	if n.dec != nil {
		// apd reports range errors alongside the saturated value.
		f, _ := n.dec.Float64()
		return f
	}
	return n.f
}

// String renders n with the sentinel tokens used by scenario files.
func (n Number) String() string {
	switch n.kind {
	case KindNaN:
		return tokenNaN
	case KindPosInf:
		return tokenInf
	case KindNegInf:
		return tokenNegInf
	}
	if n.dec != nil {
		return n.dec.Text('f')
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}
