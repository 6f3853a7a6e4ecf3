// Package types provides the time zone context and the canonical instant
// produced by date parsing.
//
// The zone context is passed explicitly to every parse and format call
// instead of being read from process state, so that a date-only input always
// resolves to the same instant regardless of the TZ environment of the
// process.
package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrZone wraps time zone resolution errors.
var ErrZone = errors.New("zone")

// secondsPerHour contains the number of seconds in an hour (excluding leap
// seconds).
const secondsPerHour = 60 * 60

//nolint:gochecknoglobals
var offsetZero = time.FixedZone("", 0)

// LoadLocation returns the location for the IANA time zone id. The empty
// string and "UTC" return time.UTC. Unknown identifiers return an error
// wrapping ErrZone.
func LoadLocation(id string) (*time.Location, error) {
	if id == "" || id == "UTC" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown time zone %q", ErrZone, id)
	}
	return loc, nil
}

// OffsetZone returns an offset-only location seconds east of UTC.
func OffsetZone(seconds int) *time.Location {
	if seconds == 0 {
		return offsetZero
	}
	return time.FixedZone("", seconds)
}

// Zone carries the two time zones involved in parsing a date. Input
// interprets wall clock times found in inputs that carry no offset of their
// own. Output is the zone of the stored value: date-only inputs resolve to
// midnight in it, and derived strings are rendered in it.
type Zone struct {
	Input  *time.Location
	Output *time.Location
}

// NewZone creates a Zone. Nil locations default to time.UTC.
func NewZone(input, output *time.Location) Zone {
	return Zone{Input: input, Output: output}
}

// LoadZone creates a Zone from the IANA time zone identifiers input and
// output. Returns an error wrapping ErrZone if either is unknown.
func LoadZone(input, output string) (Zone, error) {
	in, err := LoadLocation(input)
	if err != nil {
		return Zone{}, err
	}
	out, err := LoadLocation(output)
	if err != nil {
		return Zone{}, err
	}
	return Zone{Input: in, Output: out}, nil
}

// In returns the input location or time.UTC if it's not set.
func (z Zone) In() *time.Location {
	if z.Input == nil {
		return time.UTC
	}
	return z.Input
}

// Out returns the output location or time.UTC if it's not set.
func (z Zone) Out() *time.Location {
	if z.Output == nil {
		return time.UTC
	}
	return z.Output
}

// String returns the zone names separated by an arrow, e.g.
// "Europe/Berlin -> UTC".
func (z Zone) String() string {
	return z.In().String() + " -> " + z.Out().String()
}
