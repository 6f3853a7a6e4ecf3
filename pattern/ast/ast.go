// Package ast provides the token representation of date format patterns.
//
// Two pattern dialects are supported: the native dialect uses the
// single-character tokens of PHP's date() and DateTime::createFromFormat()
// functions (Y-m-d H:i:s), and the ICU dialect uses the field letters of
// ICU's SimpleDateFormat (yyyy-MM-dd HH:mm:ss). Both compile down to the same
// [Token] list, which the exec package matches against input and renders
// instants with.
package ast

import (
	"strings"
)

// Dialect identifies the mini-language a pattern was written in.
type Dialect uint8

//revive:disable:exported
const (
	Native Dialect = iota
	ICU
)

//revive:enable:exported

// nativePrefix prefixes the string representation of native patterns.
const nativePrefix = "php:"

// String returns "native" or "icu".
func (d Dialect) String() string {
	if d == Native {
		return "native"
	}
	return "icu"
}

// Field defines the calendar field or control operation a [Token] stands for.
type Field uint8

//revive:disable:exported
const (
	// Literal text that must appear verbatim in the input.
	Literal Field = iota
	Year
	// YearShort is a year of which only the last two digits are significant.
	YearShort
	Month
	MonthName
	Day
	WeekdayName
	Hour
	// Hour12 runs from 1 to 12 and requires a Meridiem to resolve.
	Hour12
	// Hour24 runs from 1 to 24, 24 meaning midnight.
	Hour24
	// Hour11 runs from 0 to 11 and requires a Meridiem to resolve.
	Hour11
	Meridiem
	Minute
	Second
	Fraction
	Offset
	// Unix is the number of seconds since 1970-01-01 00:00:00 UTC.
	Unix
	// Reset resets all fields to the Unix epoch.
	Reset
	// ResetUnparsed resets fields not yet parsed to the Unix epoch.
	ResetUnparsed
	// AnyChar matches any single character.
	AnyChar
)

//revive:enable:exported

//nolint:gochecknoglobals
var fieldNames = map[Field]string{
	Literal:       "literal",
	Year:          "year",
	YearShort:     "year_short",
	Month:         "month",
	MonthName:     "month_name",
	Day:           "day",
	WeekdayName:   "weekday_name",
	Hour:          "hour",
	Hour12:        "hour12",
	Hour24:        "hour24",
	Hour11:        "hour11",
	Meridiem:      "meridiem",
	Minute:        "minute",
	Second:        "second",
	Fraction:      "fraction",
	Offset:        "offset",
	Unix:          "unix",
	Reset:         "reset",
	ResetUnparsed: "reset_unparsed",
	AnyChar:       "any_char",
}

// String returns the name of the field.
func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return "unknown"
}

// Style modifies the way name and offset fields are written.
type Style uint8

//revive:disable:exported
const (
	StyleNone Style = iota
	StyleAbbreviated
	StyleWide
	StyleNarrow
	// StyleOffsetBasic writes offsets as +hhmm.
	StyleOffsetBasic
	// StyleOffsetExtended writes offsets as +hh:mm.
	StyleOffsetExtended
	// StyleOffsetHours writes offsets as +hh, or +hhmm when minutes are
	// non-zero.
	StyleOffsetHours
)

//revive:enable:exported

// Token represents a single element of a compiled pattern.
type Token struct {
	// Field is the calendar field or operation of the token.
	Field Field

	// Text contains the literal text for Literal tokens and the source
	// letters otherwise.
	Text string

	// Min and Max bound the number of digits accepted for numeric fields.
	// Max zero means no bound.
	Min, Max int

	// Pad is the zero-pad width used when rendering numeric fields.
	Pad int

	// Style selects the name or offset variant.
	Style Style

	// Standalone selects stand-alone month and weekday names (ICU L and c)
	// over the format forms used inside dates.
	Standalone bool

	// Zulu allows "Z" in place of a zero offset.
	Zulu bool
}

// IsNumeric returns true if the token consumes a run of digits.
func (t Token) IsNumeric() bool {
	switch t.Field {
	case Year, YearShort, Month, Day, Hour, Hour12, Hour24, Hour11, Minute, Second, Fraction, Unix:
		return true
	case Literal, MonthName, WeekdayName, Meridiem, Offset, Reset, ResetUnparsed, AnyChar:
		return false
	default:
		return false
	}
}

// IsTime returns true if the token carries time of day information.
func (t Token) IsTime() bool {
	switch t.Field {
	case Hour, Hour12, Hour24, Hour11, Meridiem, Minute, Second, Fraction, Unix:
		return true
	default:
		return false
	}
}

// IsDate returns true if the token carries calendar date information.
func (t Token) IsDate() bool {
	switch t.Field {
	case Year, YearShort, Month, MonthName, Day, Unix:
		return true
	default:
		return false
	}
}

// Pattern represents a compiled date format pattern.
type Pattern struct {
	dialect Dialect
	source  string
	tokens  []Token
}

// New creates a new Pattern of dialect compiled from source into tokens.
func New(dialect Dialect, source string, tokens []Token) *Pattern {
	return &Pattern{dialect: dialect, source: source, tokens: tokens}
}

// Dialect returns the dialect the pattern was written in.
func (p *Pattern) Dialect() Dialect { return p.dialect }

// Source returns the source text of the pattern, without the "php:" prefix
// for native patterns.
func (p *Pattern) Source() string { return p.source }

// Tokens returns the compiled tokens.
func (p *Pattern) Tokens() []Token { return p.tokens }

// String returns the string representation of the pattern. Native patterns
// carry the "php:" prefix so that the result can be parsed back to the same
// dialect.
func (p *Pattern) String() string {
	if p.dialect == Native {
		return nativePrefix + p.source
	}
	return p.source
}

// HasTime returns true if any of the tokens carries time of day information.
func (p *Pattern) HasTime() bool {
	for _, t := range p.tokens {
		if t.IsTime() {
			return true
		}
	}
	return false
}

// HasDate returns true if any of the tokens carries calendar date
// information.
func (p *Pattern) HasDate() bool {
	for _, t := range p.tokens {
		if t.IsDate() {
			return true
		}
	}
	return false
}

// HasReset returns true if the pattern contains a Reset or ResetUnparsed
// token.
func (p *Pattern) HasReset() bool {
	for _, t := range p.tokens {
		if t.Field == Reset || t.Field == ResetUnparsed {
			return true
		}
	}
	return false
}

// IsTimestamp returns true if the only token apart from resets is a Unix
// timestamp, so that the whole input is the number of seconds since the
// epoch.
func (p *Pattern) IsTimestamp() bool {
	found := false
	for _, t := range p.tokens {
		switch t.Field {
		case Reset, ResetUnparsed:
		case Unix:
			if found {
				return false
			}
			found = true
		default:
			return false
		}
	}
	return found
}

// Describe returns a compact description of the tokens, useful for
// debugging, e.g. "year(yyyy) literal(-) month(MM)".
func (p *Pattern) Describe() string {
	parts := make([]string, len(p.tokens))
	for i, t := range p.tokens {
		parts[i] = t.Field.String() + "(" + t.Text + ")"
	}
	return strings.Join(parts, " ")
}
