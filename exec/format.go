package exec

import (
	"strconv"
	"strings"
	"time"

	"github.com/theory/datefmt/locale"
	"github.com/theory/datefmt/pattern/ast"
	"github.com/theory/datefmt/types"
)

// Format renders inst converted into tz with pattern. Names come from loc
// for ICU patterns and from English for native patterns. A nil tz means UTC.
func Format(inst types.Instant, pattern *ast.Pattern, tz *time.Location, loc *locale.Locale) string {
	return FormatTime(inst.Time(tz), pattern, loc)
}

// FormatTime renders t in its own location with pattern.
func FormatTime(t time.Time, pattern *ast.Pattern, loc *locale.Locale) string {
	names := namesFor(pattern, loc)
	native := pattern.Dialect() == ast.Native

	var b strings.Builder
	for _, tok := range pattern.Tokens() {
		switch tok.Field {
		case ast.Literal:
			b.WriteString(tok.Text)
		case ast.Year:
			pad(&b, t.Year(), tok.Pad)
		case ast.YearShort:
			const century = 100
			pad(&b, t.Year()%century, tok.Pad)
		case ast.Month:
			pad(&b, int(t.Month()), tok.Pad)
		case ast.MonthName:
			b.WriteString(names.MonthName(t.Month(), width(tok.Style), tok.Standalone))
		case ast.Day:
			pad(&b, t.Day(), tok.Pad)
		case ast.WeekdayName:
			b.WriteString(names.WeekdayName(t.Weekday(), width(tok.Style), tok.Standalone))
		case ast.Hour:
			pad(&b, t.Hour(), tok.Pad)
		case ast.Hour12:
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			pad(&b, h, tok.Pad)
		case ast.Hour24:
			h := t.Hour()
			if h == 0 {
				h = 24
			}
			pad(&b, h, tok.Pad)
		case ast.Hour11:
			pad(&b, t.Hour()%12, tok.Pad)
		case ast.Meridiem:
			period := names.DayPeriod(t.Hour() >= 12)
			if native && tok.Text == "a" {
				period = strings.ToLower(period)
			}
			b.WriteString(period)
		case ast.Minute:
			pad(&b, t.Minute(), tok.Pad)
		case ast.Second:
			pad(&b, t.Second(), tok.Pad)
		case ast.Fraction:
			frac := strconv.Itoa(t.Nanosecond())
			frac = strings.Repeat("0", nanoDigits-len(frac)) + frac
			if tok.Pad < len(frac) {
				frac = frac[:tok.Pad]
			}
			b.WriteString(frac)
		case ast.Offset:
			writeOffset(&b, t, tok, native)
		case ast.Unix:
			b.WriteString(strconv.FormatInt(t.Unix(), 10))
		case ast.AnyChar:
			b.WriteByte('?')
		case ast.Reset, ast.ResetUnparsed:
			// Nothing to render.
		}
	}
	return b.String()
}

// pad writes n zero-padded to width digits.
func pad(b *strings.Builder, n, width int) {
	if n < 0 {
		b.WriteByte('-')
		n = -n
	}
	s := strconv.Itoa(n)
	for i := len(s); i < width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}

// width maps a token name style to a locale name width.
func width(style ast.Style) locale.Width {
	switch style {
	case ast.StyleWide:
		return locale.Wide
	case ast.StyleNarrow:
		return locale.Narrow
	default:
		return locale.Abbreviated
	}
}

// writeOffset writes the offset of t in the style of tok. ICU tokens that
// allow it write "Z" for UTC; native offsets never do.
func writeOffset(b *strings.Builder, t time.Time, tok ast.Token, native bool) {
	_, off := t.Zone()
	if off == 0 && tok.Zulu && !native {
		b.WriteByte('Z')
		return
	}

	if off < 0 {
		b.WriteByte('-')
		off = -off
	} else {
		b.WriteByte('+')
	}

	hours, minutes := off/secondsPerHour, off%secondsPerHour/secondsPerMinute
	pad(b, hours, 2)
	switch tok.Style {
	case ast.StyleOffsetExtended:
		b.WriteByte(':')
		pad(b, minutes, 2)
	case ast.StyleOffsetHours:
		if minutes != 0 {
			pad(b, minutes, 2)
		}
	default:
		pad(b, minutes, 2)
	}
}
