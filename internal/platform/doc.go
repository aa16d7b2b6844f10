// Package platform binds engine.PlatformFormat to golang.org/x/text.
//
// x/text renders digits, separators and rounding for a locale but has no
// pattern surface and no parser. A Format keeps the pattern state the
// platform setters work on (digit counts, grouping, affixes, multiplier)
// and hands x/text only the number itself. Patterns are read and written
// in DecimalFormat syntax without exponents.
package platform
