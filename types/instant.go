package types

import (
	"fmt"
	"time"
)

// FieldSet records which calendar fields were present in a parsed input.
type FieldSet uint8

//revive:disable:exported
const (
	HasYear FieldSet = 1 << iota
	HasMonth
	HasDay
	HasHour
	HasMinute
	HasSecond
	HasOffset
)

//revive:enable:exported

// Fields contains the calendar fields matched in an input, before their
// conversion to an instant.
type Fields struct {
	Year       int
	Month      int
	Day        int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int

	// Offset is the offset in seconds east of UTC found in the input. Valid
	// only if Set includes HasOffset.
	Offset int

	// Set records the fields actually present in the input.
	Set FieldSet
}

// Has returns true if all of the fields in set are present.
func (f Fields) Has(set FieldSet) bool {
	return f.Set&set == set
}

// HasTime returns true if any of hour, minute, or second is present.
func (f Fields) HasTime() bool {
	return f.Set&(HasHour|HasMinute|HasSecond) != 0
}

// In returns the time for the fields in loc, or in the parsed offset if the
// fields carry one. Field values out of range are normalized by time.Date.
func (f Fields) In(loc *time.Location) time.Time {
	if f.Has(HasOffset) {
		loc = OffsetZone(f.Offset)
	}
	return time.Date(
		f.Year, time.Month(f.Month), f.Day,
		f.Hour, f.Minute, f.Second, f.Nanosecond, loc,
	)
}

// String returns the fields as an ISO 8601 string, e.g.
// "2013-09-13T14:23:15".
func (f Fields) String() string {
	s := fmt.Sprintf(
		"%04d-%02d-%02dT%02d:%02d:%02d",
		f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second,
	)
	if f.Has(HasOffset) {
		sign, off := '+', f.Offset
		if off < 0 {
			sign, off = '-', -off
		}
		s += fmt.Sprintf("%c%02d:%02d", sign, off/secondsPerHour, off%secondsPerHour/60)
	}
	return s
}

// Instant is the canonical result of parsing a date: the number of seconds
// since the Unix epoch and the calendar fields it was derived from.
type Instant struct {
	// Unix is the number of seconds since 1970-01-01 00:00:00 UTC.
	Unix int64

	// Fields are the calendar fields as parsed.
	Fields Fields
}

// NewInstant creates an Instant from t, its fields read in t's location.
func NewInstant(t time.Time) Instant {
	_, off := t.Zone()
	return Instant{
		Unix: t.Unix(),
		Fields: Fields{
			Year:       t.Year(),
			Month:      int(t.Month()),
			Day:        t.Day(),
			Hour:       t.Hour(),
			Minute:     t.Minute(),
			Second:     t.Second(),
			Nanosecond: t.Nanosecond(),
			Offset:     off,
		},
	}
}

// Time returns the instant as a time.Time in loc.
func (i Instant) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(i.Unix, int64(i.Fields.Nanosecond)).In(loc)
}

// String returns the instant in UTC using RFC 3339.
func (i Instant) String() string {
	return i.Time(time.UTC).Format(time.RFC3339)
}
