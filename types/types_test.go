package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocation(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		id   string
		exp  string
		err  string
	}{
		{name: "empty", id: "", exp: "UTC"},
		{name: "utc", id: "UTC", exp: "UTC"},
		{name: "berlin", id: "Europe/Berlin", exp: "Europe/Berlin"},
		{name: "jamaica", id: "America/Jamaica", exp: "America/Jamaica"},
		{name: "unknown", id: "Mars/Olympus_Mons", err: `zone: unknown time zone "Mars/Olympus_Mons"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			loc, err := LoadLocation(tc.id)
			if tc.err != "" {
				r.EqualError(err, tc.err)
				r.ErrorIs(err, ErrZone)
				a.Nil(loc)
				return
			}
			r.NoError(err)
			a.Equal(tc.exp, loc.String())
		})
	}
}

func TestZone(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	var z Zone
	a.Equal(time.UTC, z.In())
	a.Equal(time.UTC, z.Out())
	a.Equal("UTC -> UTC", z.String())

	z, err := LoadZone("Europe/Berlin", "")
	r.NoError(err)
	a.Equal("Europe/Berlin", z.In().String())
	a.Equal(time.UTC, z.Out())
	a.Equal("Europe/Berlin -> UTC", z.String())

	_, err = LoadZone("UTC", "Nowhere/Special")
	r.ErrorIs(err, ErrZone)
	_, err = LoadZone("Nowhere/Special", "UTC")
	r.ErrorIs(err, ErrZone)

	z = NewZone(nil, z.In())
	a.Equal(time.UTC, z.In())
	a.Equal("Europe/Berlin", z.Out().String())
}

func TestOffsetZone(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Same(offsetZero, OffsetZone(0))
	name, off := time.Date(2024, 1, 1, 0, 0, 0, 0, OffsetZone(-5*secondsPerHour)).Zone()
	a.Empty(name)
	a.Equal(-5*secondsPerHour, off)
}

func TestFields(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	f := Fields{
		Year: 2013, Month: 9, Day: 13, Hour: 14, Minute: 23, Second: 15,
		Set: HasYear | HasMonth | HasDay | HasHour | HasMinute | HasSecond,
	}
	a.True(f.Has(HasYear | HasMonth))
	a.False(f.Has(HasOffset))
	a.True(f.HasTime())
	a.Equal("2013-09-13T14:23:15", f.String())
	a.Equal(int64(1379082195), f.In(time.UTC).Unix())

	f.Offset = 2 * secondsPerHour
	f.Set |= HasOffset
	a.Equal("2013-09-13T14:23:15+02:00", f.String())
	a.Equal(int64(1379082195-2*secondsPerHour), f.In(time.UTC).Unix())

	f.Offset = -(4*secondsPerHour + 30*60)
	a.Equal("2013-09-13T14:23:15-04:30", f.String())

	date := Fields{Year: 2013, Month: 9, Day: 13, Set: HasYear | HasMonth | HasDay}
	a.False(date.HasTime())
}

func TestInstant(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	moment := time.Date(2013, 9, 13, 16, 23, 15, 0, berlin)
	inst := NewInstant(moment)
	a.Equal(int64(1379082195), inst.Unix)
	a.Equal(16, inst.Fields.Hour)
	a.Equal(2*secondsPerHour, inst.Fields.Offset)
	a.Equal("2013-09-13T14:23:15Z", inst.String())
	a.True(moment.Equal(inst.Time(nil)))
	a.Equal(16, inst.Time(berlin).Hour())
}
