// Package exec matches input against compiled date patterns and renders
// instants with them.
//
// [Parse] scans the input left to right, consuming one field per pattern
// token. The match is anchored: characters left over on either side, digits
// where a name is expected, or values out of range for their field make the
// whole input [Invalid]. Parse never returns an error; pattern problems are
// reported when the pattern is compiled.
package exec

import (
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/theory/datefmt/locale"
	"github.com/theory/datefmt/pattern/ast"
	"github.com/theory/datefmt/types"
	"golang.org/x/text/unicode/norm"
)

// Things to improve or document as different:
//   - Weekday names are matched but not checked against the date.
//   - Wall clock times that fall into a DST gap are normalized by time.Date
//     rather than being rejected.
//   - Native patterns use English names regardless of the locale, like PHP.

// maxFieldDigits is the maximum number of digits consumed by numeric fields
// without an upper bound of their own.
const maxFieldDigits = 9

// maxUnixDigits is the maximum number of digits in a Unix timestamp.
const maxUnixDigits = 19

// nanoDigits is the number of fractional second digits in a nanosecond.
const nanoDigits = 9

// yearWindow is the number of years before now at which the century window
// for two-digit ICU years starts.
const yearWindow = 80

// Result is the outcome of [Parse]: either a valid instant or Invalid.
type Result struct {
	instant types.Instant
	valid   bool
}

// Invalid is the Result of input that does not match its pattern.
//
//nolint:gochecknoglobals
var Invalid = Result{}

// Valid returns true if the input matched.
func (r Result) Valid() bool { return r.valid }

// Instant returns the parsed instant and true, or the zero Instant and false
// if the input did not match.
func (r Result) Instant() (types.Instant, bool) { return r.instant, r.valid }

// Unix returns the number of seconds since the Unix epoch of a valid result
// and zero for an invalid one.
func (r Result) Unix() int64 { return r.instant.Unix }

// String returns the instant in RFC 3339 format or "invalid".
func (r Result) String() string {
	if !r.valid {
		return "invalid"
	}
	return r.instant.String()
}

// Option specifies a parse option.
type Option func(*parser)

// WithNow sets the clock used for the fields native patterns take from the
// current date and for the century window of two-digit ICU years. Defaults
// to time.Now.
func WithNow(now func() time.Time) Option {
	return func(p *parser) {
		if now != nil {
			p.now = now
		}
	}
}

//nolint:gochecknoglobals
var english = sync.OnceValue(func() *locale.Locale {
	l, err := locale.Lookup("en-US")
	if err != nil {
		panic(err)
	}
	return l
})

// namesFor returns the locale providing names for pattern. Native patterns
// always use English, ICU patterns loc, or English if loc is nil.
func namesFor(pattern *ast.Pattern, loc *locale.Locale) *locale.Locale {
	if pattern.Dialect() == ast.Native || loc == nil {
		return english()
	}
	return loc
}

// parser holds the state of a single Parse call.
type parser struct {
	pattern *ast.Pattern
	zone    types.Zone
	names   *locale.Locale
	now     func() time.Time

	input string
	pos   int

	fields    types.Fields
	hour      int
	hourField ast.Field
	meridiem  bool
	pm        bool
	unix      int64
	hasUnix   bool
	epoch     bool
}

// Parse matches candidate against pattern. Wall clock times in candidate are
// interpreted in zone.Input unless the candidate carries an offset;
// patterns without time fields resolve to midnight in zone.Output. Names are
// matched in loc, which may be nil for native patterns.
//
// Candidate must be a string, or a number if pattern is a Unix timestamp
// pattern. Every other value, including the empty string, is Invalid.
func Parse(candidate any, pattern *ast.Pattern, zone types.Zone, loc *locale.Locale, opt ...Option) Result {
	p := &parser{
		pattern: pattern,
		zone:    zone,
		names:   namesFor(pattern, loc),
		now:     time.Now,
	}
	for _, o := range opt {
		o(p)
	}

	kind, str, num := classify(candidate)
	switch kind {
	case kindNumber:
		if !pattern.IsTimestamp() {
			return Invalid
		}
		return p.fromUnix(num)
	case kindString:
		if str == "" {
			return Invalid
		}
		return p.parse(norm.NFC.String(str))
	case kindOther:
		return Invalid
	default:
		return Invalid
	}
}

// parse scans input with the pattern tokens and assembles the result.
func (p *parser) parse(input string) Result {
	p.input = input
	tokens := p.pattern.Tokens()
	for i, tok := range tokens {
		var next *ast.Token
		if i+1 < len(tokens) {
			next = &tokens[i+1]
		}
		if !p.scan(tok, next) {
			return Invalid
		}
	}

	if p.pos != len(p.input) {
		return Invalid
	}

	if p.hasUnix {
		return p.fromUnix(p.unix)
	}
	return p.assemble()
}

// rest returns the input not yet consumed.
func (p *parser) rest() string {
	return p.input[p.pos:]
}

// scan consumes the input for tok. The next token, if any, decides the width
// of abutting numeric fields.
func (p *parser) scan(tok ast.Token, next *ast.Token) bool {
	switch tok.Field {
	case ast.Literal:
		if len(p.rest()) < len(tok.Text) || p.rest()[:len(tok.Text)] != tok.Text {
			return false
		}
		p.pos += len(tok.Text)
		return true
	case ast.Reset:
		p.reset()
		return true
	case ast.ResetUnparsed:
		p.epoch = true
		return true
	case ast.AnyChar:
		if p.pos >= len(p.input) {
			return false
		}
		_, size := utf8.DecodeRuneInString(p.rest())
		p.pos += size
		return true
	case ast.MonthName:
		month, size, ok := p.names.MatchMonth(p.rest())
		if ok {
			p.fields.Month = int(month)
			p.fields.Set |= types.HasMonth
			p.pos += size
		}
		return ok
	case ast.WeekdayName:
		_, size, ok := p.names.MatchWeekday(p.rest())
		p.pos += size
		return ok
	case ast.Meridiem:
		pm, size, ok := p.names.MatchDayPeriod(p.rest())
		if ok {
			p.meridiem, p.pm = true, pm
			p.pos += size
		}
		return ok
	case ast.Offset:
		return p.offset(tok)
	case ast.Unix:
		return p.unixSeconds()
	case ast.Year, ast.YearShort, ast.Month, ast.Day, ast.Hour, ast.Hour12,
		ast.Hour24, ast.Hour11, ast.Minute, ast.Second, ast.Fraction:
		return p.number(tok, next)
	default:
		return false
	}
}

// reset resets all fields parsed so far and makes unparsed fields default
// to the Unix epoch.
func (p *parser) reset() {
	p.fields = types.Fields{}
	p.hour, p.hourField = 0, ast.Hour
	p.meridiem, p.pm = false, false
	p.unix, p.hasUnix = 0, false
	p.epoch = true
}

// digits consumes up to maxDigits ASCII digits and returns their value and
// count.
func (p *parser) digits(maxDigits int) (int, int) {
	val, count := 0, 0
	for p.pos < len(p.input) && count < maxDigits {
		c := p.input[p.pos]
		if c < '0' || c > '9' {
			break
		}
		val = val*10 + int(c-'0')
		count++
		p.pos++
	}
	return val, count
}

// number consumes the digits of a numeric field. ICU fields without an
// upper bound consume all digits available, unless the next token is
// numeric as well, in which case they take exactly their pattern width.
func (p *parser) number(tok ast.Token, next *ast.Token) bool {
	minDigits, maxDigits := tok.Min, tok.Max
	if maxDigits == 0 {
		maxDigits = maxFieldDigits
		if next != nil && next.IsNumeric() && tok.Pad > 0 {
			minDigits, maxDigits = tok.Pad, tok.Pad
		}
	}

	val, count := p.digits(maxDigits)
	if count == 0 || count < minDigits {
		return false
	}

	switch tok.Field {
	case ast.Year:
		p.fields.Year = val
		p.fields.Set |= types.HasYear
	case ast.YearShort:
		p.fields.Year = p.expandYear(val, count)
		p.fields.Set |= types.HasYear
	case ast.Month:
		p.fields.Month = val
		p.fields.Set |= types.HasMonth
	case ast.Day:
		p.fields.Day = val
		p.fields.Set |= types.HasDay
	case ast.Hour, ast.Hour12, ast.Hour24, ast.Hour11:
		p.hour, p.hourField = val, tok.Field
		p.fields.Set |= types.HasHour
	case ast.Minute:
		p.fields.Minute = val
		p.fields.Set |= types.HasMinute
	case ast.Second:
		p.fields.Second = val
		p.fields.Set |= types.HasSecond
	case ast.Fraction:
		for i := count; i < nanoDigits; i++ {
			val *= 10
		}
		p.fields.Nanosecond = val
	default:
		return false
	}
	return true
}

// expandYear returns the full year for a two-digit year. Native patterns map
// 70-99 to 1970-1999 and 00-69 to 2000-2069. ICU patterns use the hundred
// years starting 80 years before now, and take more than two digits
// literally.
func (p *parser) expandYear(val, count int) int {
	const (
		century = 100
		pivot   = 70
	)

	if p.pattern.Dialect() == ast.Native {
		if val < pivot {
			return 2000 + val
		}
		return 1900 + val
	}

	if count != 2 {
		return val
	}

	start := p.now().Year() - yearWindow
	year := start/century*century + val
	if year < start {
		year += century
	}
	return year
}

// unixSeconds consumes an optionally signed integer number of seconds.
func (p *parser) unixSeconds() bool {
	start := p.pos
	if rest := p.rest(); rest != "" && (rest[0] == '-' || rest[0] == '+') {
		p.pos++
	}
	if _, count := p.digits(maxUnixDigits); count == 0 {
		return false
	}

	n, err := strconv.ParseInt(p.input[start:p.pos], 10, 64)
	if err != nil {
		return false
	}
	p.unix, p.hasUnix = n, true
	return true
}

// offset consumes a UTC offset in the style of tok: "Z" where allowed,
// otherwise a sign and two-digit hours followed by minutes. Native offsets
// accept minutes with or without a colon.
func (p *parser) offset(tok ast.Token) bool {
	rest := p.rest()
	if rest == "" {
		return false
	}

	if tok.Zulu && (rest[0] == 'Z' || rest[0] == 'z') {
		p.pos++
		p.setOffset(0)
		return true
	}

	sign := 1
	switch rest[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return false
	}
	p.pos++

	hours, count := p.digits(2)
	if count != 2 {
		return false
	}

	minutes := 0
	colon := p.pos < len(p.input) && p.input[p.pos] == ':'
	switch {
	case tok.Style == ast.StyleOffsetHours:
		if p.startsWithDigits(2) {
			minutes, _ = p.digits(2)
		}
	case p.pattern.Dialect() == ast.Native:
		if colon {
			p.pos++
		}
		if minutes, count = p.digits(2); count != 2 {
			return false
		}
	case tok.Style == ast.StyleOffsetExtended:
		if !colon {
			return false
		}
		p.pos++
		if minutes, count = p.digits(2); count != 2 {
			return false
		}
	default:
		if minutes, count = p.digits(2); count != 2 {
			return false
		}
	}

	const (
		maxHours   = 23
		maxMinutes = 59
	)
	if hours > maxHours || minutes > maxMinutes {
		return false
	}

	p.setOffset(sign * (hours*secondsPerHour + minutes*secondsPerMinute))
	return true
}

// startsWithDigits returns true if the unconsumed input starts with n ASCII
// digits.
func (p *parser) startsWithDigits(n int) bool {
	rest := p.rest()
	if len(rest) < n {
		return false
	}
	for i := range n {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return true
}

// setOffset records an offset in seconds east of UTC.
func (p *parser) setOffset(seconds int) {
	p.fields.Offset = seconds
	p.fields.Set |= types.HasOffset
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
)

// fromUnix returns the Result for a Unix timestamp, its fields read in the
// output zone.
func (p *parser) fromUnix(n int64) Result {
	t := time.Unix(n, 0).In(p.zone.Out())
	inst := types.NewInstant(t)
	inst.Fields.Set = types.HasYear | types.HasMonth | types.HasDay |
		types.HasHour | types.HasMinute | types.HasSecond
	return Result{instant: inst, valid: true}
}

// assemble fills in unparsed fields, checks field ranges, and converts the
// fields to an instant.
func (p *parser) assemble() Result {
	// Wall clock times are read in the input zone; calendar dates stand for
	// midnight in the output zone.
	loc := p.zone.Out()
	if p.pattern.HasTime() {
		loc = p.zone.In()
	}

	f := &p.fields
	if !f.Has(types.HasYear) || !f.Has(types.HasMonth) || !f.Has(types.HasDay) {
		year, month, day := 1970, time.January, 1
		if !p.epoch && p.pattern.Dialect() == ast.Native {
			year, month, day = p.now().In(loc).Date()
		}
		if !f.Has(types.HasYear) {
			f.Year = year
		}
		if !f.Has(types.HasMonth) {
			f.Month = int(month)
		}
		if !f.Has(types.HasDay) {
			f.Day = day
		}
	}

	hour, ok := p.resolveHour()
	if !ok {
		return Invalid
	}
	f.Hour = hour

	if !inRange(f) {
		return Invalid
	}

	t := f.In(loc)
	return Result{instant: types.Instant{Unix: t.Unix(), Fields: *f}, valid: true}
}

// resolveHour converts the parsed hour to the 0-23 range, returning false
// if it's out of range for its field.
func (p *parser) resolveHour() (int, bool) {
	if !p.fields.Has(types.HasHour) {
		return 0, true
	}

	h := p.hour
	const (
		halfDay = 12
		fullDay = 24
	)
	switch p.hourField {
	case ast.Hour12:
		if h < 1 || h > halfDay {
			return 0, false
		}
		// 12 is midnight unless a meridiem says otherwise.
		h %= halfDay
	case ast.Hour11:
		if h > halfDay-1 {
			return 0, false
		}
	case ast.Hour24:
		if h < 1 || h > fullDay {
			return 0, false
		}
		h %= fullDay
	default:
		if h > fullDay-1 {
			return 0, false
		}
	}

	if p.meridiem && p.pm && h < halfDay && (p.hourField == ast.Hour12 || p.hourField == ast.Hour11) {
		h += halfDay
	}
	return h, true
}

// inRange returns true if the month, day, hour, minute, and second of f are
// within their ranges, taking the length of the month into account.
func inRange(f *types.Fields) bool {
	const (
		maxMonth  = 12
		maxHour   = 23
		maxMinute = 59
		maxSecond = 59
	)
	if f.Month < 1 || f.Month > maxMonth {
		return false
	}
	if f.Day < 1 || f.Day > daysIn(f.Year, time.Month(f.Month)) {
		return false
	}
	return f.Hour >= 0 && f.Hour <= maxHour &&
		f.Minute >= 0 && f.Minute <= maxMinute &&
		f.Second >= 0 && f.Second <= maxSecond
}

// daysIn returns the number of days in month of year.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
