package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/roach88/numconform/internal/engine"
	"github.com/roach88/numconform/internal/oracle"
)

func newFormat(t *testing.T, pattern string, tag language.Tag) engine.PlatformFormat {
	t.Helper()
	f, err := New(pattern, tag)
	require.NoError(t, err)
	return f
}

func num(t *testing.T, s string) oracle.Number {
	t.Helper()
	n, err := oracle.Canonicalize(s)
	require.NoError(t, err)
	return n
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		adjust  func(f engine.PlatformFormat)
		in      string
		want    string
	}{
		{name: "pattern fraction digits", pattern: "#,##0.00", in: "1234.5", want: "1,234.50"},
		{name: "pattern without grouping", pattern: "0.###", in: "1234.5", want: "1234.5"},
		{name: "rounds half even", pattern: "0", in: "2.5", want: "2"},
		{name: "negative default prefix", pattern: "0", in: "-12", want: "-12"},
		{name: "negative subpattern", pattern: "0;(0)", in: "-5", want: "(5)"},
		{name: "percent", pattern: "0%", in: "0.25", want: "25%"},
		{name: "decimal always shown", pattern: "0.", in: "5", want: "5."},
		{name: "quoted literal", pattern: "'#'0", in: "7", want: "#7"},
		{
			name:    "setter overrides pattern",
			pattern: "0",
			adjust:  func(f engine.PlatformFormat) { f.SetMinimumFractionDigits(2) },
			in:      "3",
			want:    "3.00",
		},
		{
			name:    "grouping switched off",
			pattern: "#,##0",
			adjust:  func(f engine.PlatformFormat) { f.SetGroupingUsed(false) },
			in:      "1234567",
			want:    "1234567",
		},
		{
			name:    "literal affixes",
			pattern: "0",
			adjust: func(f engine.PlatformFormat) {
				f.SetPositivePrefix("+")
				f.SetNegativePrefix("minus ")
			},
			in:   "-4",
			want: "minus 4",
		},
		{
			name:    "multiplier",
			pattern: "0",
			adjust:  func(f engine.PlatformFormat) { _ = f.SetMultiplier(3) },
			in:      "14",
			want:    "42",
		},
		{
			// Integers beyond 2^53 stay exact.
			name:    "large integer",
			pattern: "0",
			in:      "9007199254740993",
			want:    "9007199254740993",
		},
		{
			name:    "large grouped integer",
			pattern: "#,##0",
			in:      "-9007199254740993",
			want:    "-9,007,199,254,740,993",
		},
		{name: "NaN", pattern: "0", in: "NaN", want: "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFormat(t, tt.pattern, language.English)
			if tt.adjust != nil {
				tt.adjust(f)
			}
			got, err := f.Format(num(t, tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Locale(t *testing.T) {
	f := newFormat(t, "#,##0.00", language.German)
	got, err := f.Format(num(t, "1234.5"))
	require.NoError(t, err)
	assert.Equal(t, "1.234,50", got)
}

func TestFormat_RejectsForeignGroupingSize(t *testing.T) {
	f := newFormat(t, "#,##0", language.English)
	f.SetGroupingSize(4)
	_, err := f.Format(num(t, "12345"))
	assert.ErrorContains(t, err, "cannot group by 4 digits")
}

func TestNew_RejectsPatterns(t *testing.T) {
	for _, p := range []string{"0E0", "0.0.0", "#0#", "0.#0", "'0", "0;0;0", "abc"} {
		_, err := New(p, language.English)
		assert.Error(t, err, p)
	}
}

func TestSetMultiplier_RejectsZero(t *testing.T) {
	f := newFormat(t, "0", language.English)
	assert.EqualError(t, f.SetMultiplier(0), "multiplier must be nonzero")
}

func TestSetCurrency(t *testing.T) {
	f := newFormat(t, "¤#,##0.00", language.English)
	require.NoError(t, f.SetCurrency("JPY"))
	assert.Equal(t, "¤#,##0", f.ToPattern())

	assert.Error(t, f.SetCurrency("ZZ"))
}

func TestToPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"#,##0.00", "#,##0.00"},
		{"#,##0.###", "#,##0.###"},
		{"0", "#0"},
		{"00.0", "#00.0"},
		{"0.", "#0."},
		{"0;(0)", "#0;(#0)"},
		{"0%", "#0%"},
		{"'#'0", "'#'#0"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, newFormat(t, tt.pattern, language.English).ToPattern())
		})
	}
}

func TestToPattern_FollowsSetters(t *testing.T) {
	f := newFormat(t, "#,##0.00", language.English)
	f.SetMaximumFractionDigits(1)
	f.SetGroupingUsed(false)
	assert.Equal(t, "###0.0", f.ToPattern())

	f.SetPositiveSuffix("%")
	assert.Equal(t, "###0.0'%';-###0.0", f.ToPattern())
}

func TestToLocalizedPattern(t *testing.T) {
	f := newFormat(t, "#,##0.00", language.German)
	assert.Equal(t, "#.##0,00", f.ToLocalizedPattern())
	assert.Equal(t, "#,##0.00", f.ToPattern())
}

func TestApplyLocalizedPattern(t *testing.T) {
	f := newFormat(t, "0", language.German)
	f.SetMinimumFractionDigits(3)
	require.NoError(t, f.ApplyLocalizedPattern("#.##0,0"))
	assert.Equal(t, "#,##0.0", f.ToPattern())

	got, err := f.Format(num(t, "1234.56"))
	require.NoError(t, err)
	assert.Equal(t, "1.234,6", got)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		adjust   func(f engine.PlatformFormat)
		in       string
		want     string
		consumed int
	}{
		{name: "plain", pattern: "0", in: "42", want: "42", consumed: 2},
		{name: "grouped", pattern: "#,##0.###", in: "1,234.5", want: "1234.5", consumed: 7},
		{name: "stops at junk", pattern: "0", in: "12abc", want: "12", consumed: 2},
		{name: "negative", pattern: "0", in: "-12", want: "-12", consumed: 3},
		{name: "negative subpattern", pattern: "0;(0)", in: "(5)", want: "-5", consumed: 3},
		{name: "percent", pattern: "0%", in: "25%", want: "0.25", consumed: 3},
		{name: "NaN", pattern: "0", in: "NaN", want: "NaN", consumed: 3},
		{
			name:     "integer only",
			pattern:  "0.00",
			adjust:   func(f engine.PlatformFormat) { f.SetParseIntegerOnly(true) },
			in:       "12.5",
			want:     "12",
			consumed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFormat(t, tt.pattern, language.English)
			if tt.adjust != nil {
				tt.adjust(f)
			}
			got, consumed := f.Parse(tt.in)
			assert.Equal(t, tt.consumed, consumed)
			ok, err := oracle.Equivalent(tt.want, got)
			require.NoError(t, err)
			assert.True(t, ok, "got %s", got)
		})
	}
}

func TestParse_Fails(t *testing.T) {
	tests := []struct {
		pattern string
		in      string
	}{
		{"0", "abc"},
		{"0", ""},
		{"0%", "25"},
		{"'$'0", "5"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.in, func(t *testing.T) {
			_, consumed := newFormat(t, tt.pattern, language.English).Parse(tt.in)
			assert.Zero(t, consumed)
		})
	}
}

func TestParse_Locale(t *testing.T) {
	got, consumed := newFormat(t, "#,##0.##", language.German).Parse("1.234,5")
	assert.Equal(t, 7, consumed)
	ok, err := oracle.Equivalent("1234.5", got)
	require.NoError(t, err)
	assert.True(t, ok)
}
