// Package locale provides the locale data needed to parse and render dates:
// month, weekday, and day period names, and the date and time patterns for
// each verbosity level.
//
// The data follows the Unicode CLDR. A built-in set of locales is embedded
// in the package as YAML and loaded once by [Default]; additional locales can
// be loaded from YAML into a [Registry] at start-up.
package locale

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrLocale wraps locale lookup and loading errors.
var ErrLocale = errors.New("locale")

// Verbosity selects one of the locale's predefined patterns.
type Verbosity uint8

//revive:disable:exported
const (
	Short Verbosity = iota
	Medium
	Long
	Full
)

//revive:enable:exported

//nolint:gochecknoglobals
var verbosityNames = [...]string{"short", "medium", "long", "full"}

// String returns "short", "medium", "long", or "full".
func (v Verbosity) String() string {
	if int(v) < len(verbosityNames) {
		return verbosityNames[v]
	}
	return "unknown"
}

// ParseVerbosity parses the name of a verbosity level. Returns an error
// wrapping ErrLocale for unknown names.
func ParseVerbosity(name string) (Verbosity, error) {
	for i, n := range verbosityNames {
		if strings.EqualFold(n, name) {
			return Verbosity(i), nil
		}
	}
	return Short, fmt.Errorf("%w: unknown verbosity %q", ErrLocale, name)
}

// Kind selects the date, time, or combined date and time patterns.
type Kind uint8

//revive:disable:exported
const (
	Date Kind = iota
	Time
	DateTime
)

//revive:enable:exported

// String returns "date", "time", or "datetime".
func (k Kind) String() string {
	switch k {
	case Date:
		return "date"
	case Time:
		return "time"
	case DateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// ParseKind parses "date", "time", or "datetime", ignoring case. Returns an
// error wrapping ErrLocale for anything else.
func ParseKind(name string) (Kind, error) {
	for _, k := range []Kind{Date, Time, DateTime} {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return Date, fmt.Errorf("%w: unknown pattern kind %q", ErrLocale, name)
}

// Width selects the abbreviated, wide, or narrow variant of a name.
type Width uint8

//revive:disable:exported
const (
	Abbreviated Width = iota
	Wide
	Narrow
)

//revive:enable:exported

// Names contains the variants of a list of names, such as the twelve months.
type Names struct {
	Abbreviated []string `yaml:"abbreviated"`
	Wide        []string `yaml:"wide"`
	Narrow      []string `yaml:"narrow"`
}

// width returns the names for w.
func (n *Names) width(w Width) []string {
	switch w {
	case Wide:
		return n.Wide
	case Narrow:
		return n.Narrow
	default:
		return n.Abbreviated
	}
}

// fill copies missing variants from def, and a missing narrow variant from
// the abbreviated one.
func (n *Names) fill(def *Names) {
	if def != nil {
		if len(n.Abbreviated) == 0 {
			n.Abbreviated = def.Abbreviated
		}
		if len(n.Wide) == 0 {
			n.Wide = def.Wide
		}
		if len(n.Narrow) == 0 {
			n.Narrow = def.Narrow
		}
	}
	if len(n.Narrow) == 0 {
		n.Narrow = n.Abbreviated
	}
}

// check returns an error unless every variant contains size names.
func (n *Names) check(what string, size int) error {
	for _, v := range []struct {
		name  string
		names []string
	}{
		{"abbreviated", n.Abbreviated},
		{"wide", n.Wide},
		{"narrow", n.Narrow},
	} {
		if len(v.names) != size {
			return fmt.Errorf(
				"%w: %v %v names has %d entries, expected %d",
				ErrLocale, v.name, what, len(v.names), size,
			)
		}
		for _, s := range v.names {
			if s == "" {
				return fmt.Errorf("%w: empty %v %v name", ErrLocale, v.name, what)
			}
		}
	}
	return nil
}

// Forms contains the names used inside a date and those used on their own.
// Some languages distinguish them, such as Russian "мая" in "12 мая" and
// "май" standing alone.
type Forms struct {
	Format     Names `yaml:"format"`
	Standalone Names `yaml:"standalone"`
}

// names returns the list of names for w in the format or stand-alone forms.
func (f *Forms) names(w Width, standalone bool) []string {
	if standalone {
		return f.Standalone.width(w)
	}
	return f.Format.width(w)
}

// Patterns contains one ICU pattern per verbosity level.
type Patterns struct {
	Short  string `yaml:"short"`
	Medium string `yaml:"medium"`
	Long   string `yaml:"long"`
	Full   string `yaml:"full"`
}

// get returns the pattern for v.
func (p *Patterns) get(v Verbosity) string {
	switch v {
	case Short:
		return p.Short
	case Medium:
		return p.Medium
	case Long:
		return p.Long
	default:
		return p.Full
	}
}

// check returns an error if any of the patterns is empty.
func (p *Patterns) check(what string) error {
	for v := Short; v <= Full; v++ {
		if p.get(v) == "" {
			return fmt.Errorf("%w: missing %v %v pattern", ErrLocale, v, what)
		}
	}
	return nil
}

// Locale contains the date data for a single locale. Treat it as read-only
// once it has been added to a [Registry].
type Locale struct {
	// ID is the BCP 47 identifier of the locale, e.g. "de-DE".
	ID string `yaml:"id"`

	// Months contains twelve month names per variant, January first.
	Months Forms `yaml:"months"`

	// Weekdays contains seven weekday names per variant, Sunday first.
	Weekdays Forms `yaml:"weekdays"`

	// DayPeriods contains the AM and PM markers.
	DayPeriods []string `yaml:"day_periods"`

	// Date and Time contain the ICU date and time patterns. DateTime
	// contains the patterns combining them, where {1} stands for the date and
	// {0} for the time.
	Date     Patterns `yaml:"date"`
	Time     Patterns `yaml:"time"`
	DateTime Patterns `yaml:"datetime"`

	months     nameTable
	weekdays   nameTable
	dayPeriods nameTable
}

// prepare fills in missing name variants, validates the locale, and builds
// its name lookup tables.
func (l *Locale) prepare() error {
	if l.ID == "" {
		return fmt.Errorf("%w: missing locale id", ErrLocale)
	}

	l.Months.Format.fill(nil)
	l.Months.Standalone.fill(&l.Months.Format)
	l.Weekdays.Format.fill(nil)
	l.Weekdays.Standalone.fill(&l.Weekdays.Format)

	const (
		monthsPerYear = 12
		daysPerWeek   = 7
		periodsPerDay = 2
	)

	for _, check := range []func() error{
		func() error { return l.Months.Format.check("month", monthsPerYear) },
		func() error { return l.Months.Standalone.check("stand-alone month", monthsPerYear) },
		func() error { return l.Weekdays.Format.check("weekday", daysPerWeek) },
		func() error { return l.Weekdays.Standalone.check("stand-alone weekday", daysPerWeek) },
		func() error { return l.Date.check("date") },
		func() error { return l.Time.check("time") },
	} {
		if err := check(); err != nil {
			return fmt.Errorf("%w (%v)", err, l.ID)
		}
	}

	if len(l.DayPeriods) != periodsPerDay {
		return fmt.Errorf(
			"%w: day_periods has %d entries, expected %d (%v)",
			ErrLocale, len(l.DayPeriods), periodsPerDay, l.ID,
		)
	}

	if l.DateTime == (Patterns{}) {
		l.DateTime = Patterns{"{1} {0}", "{1} {0}", "{1} {0}", "{1} {0}"}
	}

	l.months = newNameTable(
		l.Months.Format.Wide, l.Months.Format.Abbreviated,
		l.Months.Standalone.Wide, l.Months.Standalone.Abbreviated,
	)
	l.weekdays = newNameTable(
		l.Weekdays.Format.Wide, l.Weekdays.Format.Abbreviated,
		l.Weekdays.Standalone.Wide, l.Weekdays.Standalone.Abbreviated,
	)
	l.dayPeriods = newNameTable(l.DayPeriods)
	return nil
}

// Pattern returns the ICU pattern of kind for verbosity v. DateTime patterns
// combine the date and time patterns of the same verbosity.
func (l *Locale) Pattern(kind Kind, v Verbosity) string {
	switch kind {
	case Time:
		return l.Time.get(v)
	case DateTime:
		glue := l.DateTime.get(v)
		if glue == "" {
			glue = "{1} {0}"
		}
		return strings.NewReplacer(
			"{1}", l.Date.get(v),
			"{0}", l.Time.get(v),
		).Replace(glue)
	default:
		return l.Date.get(v)
	}
}

// MonthName returns the name of month (1-12) in width w, in the stand-alone
// form if standalone is true.
func (l *Locale) MonthName(month time.Month, w Width, standalone bool) string {
	return l.Months.names(w, standalone)[month-1]
}

// WeekdayName returns the name of day in width w, in the stand-alone form if
// standalone is true.
func (l *Locale) WeekdayName(day time.Weekday, w Width, standalone bool) string {
	return l.Weekdays.names(w, standalone)[day]
}

// DayPeriod returns the PM marker if pm is true and the AM marker otherwise.
func (l *Locale) DayPeriod(pm bool) string {
	if pm {
		return l.DayPeriods[1]
	}
	return l.DayPeriods[0]
}

// MatchMonth matches a month name, wide or abbreviated in either form, at
// the start of input. Returns the month and the number of bytes of input the
// name spans, or false if no name matches.
func (l *Locale) MatchMonth(input string) (time.Month, int, bool) {
	idx, size, ok := l.months.match(input)
	return time.Month(idx + 1), size, ok
}

// MatchWeekday matches a weekday name, wide or abbreviated in either form, at
// the start of input. Returns the weekday and the number of bytes of input
// the name spans, or false if no name matches.
func (l *Locale) MatchWeekday(input string) (time.Weekday, int, bool) {
	idx, size, ok := l.weekdays.match(input)
	return time.Weekday(idx), size, ok
}

// MatchDayPeriod matches the AM or PM marker at the start of input. Returns
// true for PM and the number of bytes of input the marker spans, or false and
// zero if no marker matches.
func (l *Locale) MatchDayPeriod(input string) (bool, int, bool) {
	idx, size, ok := l.dayPeriods.match(input)
	return idx == 1, size, ok
}
