package exec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theory/datefmt/locale"
	"github.com/theory/datefmt/pattern/ast"
	"github.com/theory/datefmt/types"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	berlin, err := types.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	jamaica, err := types.LoadLocation("America/Jamaica")
	require.NoError(t, err)
	kolkata, err := types.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 2013-09-13 14:23:15 UTC, a Friday.
	inst := types.Instant{Unix: 1379082195}

	for _, tc := range []struct {
		name    string
		pattern *ast.Pattern
		tz      *time.Location
		locale  string
		exp     string
	}{
		{
			name:    "native_datetime",
			pattern: nativePattern(t, "Y-m-d H:i:s"),
			exp:     "2013-09-13 14:23:15",
		},
		{
			name:    "native_berlin",
			pattern: nativePattern(t, "Y-m-d H:i:s"),
			tz:      berlin,
			exp:     "2013-09-13 16:23:15",
		},
		{
			name:    "native_names",
			pattern: nativePattern(t, "D, d M Y"),
			exp:     "Fri, 13 Sep 2013",
		},
		{
			name:    "native_names_ignore_locale",
			pattern: nativePattern(t, "l, j F Y"),
			locale:  "de-DE",
			exp:     "Friday, 13 September 2013",
		},
		{
			name:    "native_short",
			pattern: nativePattern(t, "y n j G"),
			exp:     "13 9 13 14",
		},
		{
			name:    "native_meridiem_lower",
			pattern: nativePattern(t, "g:i a"),
			exp:     "2:23 pm",
		},
		{
			name:    "native_meridiem_upper",
			pattern: nativePattern(t, "h:i A"),
			exp:     "02:23 PM",
		},
		{
			name:    "native_unix",
			pattern: nativePattern(t, "U"),
			tz:      jamaica,
			exp:     "1379082195",
		},
		{
			name:    "native_reset",
			pattern: nativePattern(t, "!Y-m-d|"),
			exp:     "2013-09-13",
		},
		{
			name:    "native_offset_extended",
			pattern: nativePattern(t, "P"),
			tz:      berlin,
			exp:     "+02:00",
		},
		{
			name:    "native_offset_utc",
			pattern: nativePattern(t, "O"),
			exp:     "+0000",
		},
		{
			name:    "native_escape",
			pattern: nativePattern(t, `Y-m-d\TH:i:s`),
			exp:     "2013-09-13T14:23:15",
		},
		{
			name:    "native_any_char",
			pattern: nativePattern(t, "Y?m"),
			exp:     "2013?09",
		},
		{
			name:    "icu_iso",
			pattern: icuPattern(t, "yyyy-MM-dd'T'HH:mm:ssXXX"),
			exp:     "2013-09-13T14:23:15Z",
		},
		{
			name:    "icu_iso_jamaica",
			pattern: icuPattern(t, "yyyy-MM-dd'T'HH:mm:ssXXX"),
			tz:      jamaica,
			exp:     "2013-09-13T09:23:15-05:00",
		},
		{
			name:    "icu_offset_basic",
			pattern: icuPattern(t, "xx"),
			tz:      berlin,
			exp:     "+0200",
		},
		{
			name:    "icu_offset_no_zulu",
			pattern: icuPattern(t, "xxx"),
			exp:     "+00:00",
		},
		{
			name:    "icu_offset_hours",
			pattern: icuPattern(t, "X"),
			tz:      jamaica,
			exp:     "-05",
		},
		{
			name:    "icu_offset_hours_minutes",
			pattern: icuPattern(t, "X"),
			tz:      kolkata,
			exp:     "+0530",
		},
		{
			name:    "icu_offset_z",
			pattern: icuPattern(t, "Z"),
			exp:     "+0000",
		},
		{
			name:    "icu_short_year",
			pattern: icuPattern(t, "yy/M/d"),
			exp:     "13/9/13",
		},
		{
			name:    "icu_12_hour",
			pattern: icuPattern(t, "h:mm a"),
			exp:     "2:23 PM",
		},
		{
			name:    "icu_11_hour",
			pattern: icuPattern(t, "KK:mm"),
			exp:     "02:23",
		},
		{
			name:    "icu_quote",
			pattern: icuPattern(t, "HH 'o''clock'"),
			exp:     "14 o'clock",
		},
		{
			name:    "icu_de_names",
			pattern: icuPattern(t, "EEEE, d. MMMM y"),
			locale:  "de-DE",
			exp:     "Freitag, 13. September 2013",
		},
		{
			name:    "icu_de_abbreviated",
			pattern: icuPattern(t, "EEE d MMM"),
			locale:  "de-DE",
			exp:     "Fr. 13 Sept.",
		},
		{
			name:    "icu_de_standalone",
			pattern: icuPattern(t, "ccc LLL"),
			locale:  "de-DE",
			exp:     "Fr Sep",
		},
		{
			name:    "icu_ru_format",
			pattern: icuPattern(t, "d MMMM y"),
			locale:  "ru-RU",
			exp:     "13 сентября 2013",
		},
		{
			name:    "icu_ru_standalone",
			pattern: icuPattern(t, "LLLL y"),
			locale:  "ru-RU",
			exp:     "сентябрь 2013",
		},
		{
			name:    "icu_narrow",
			pattern: icuPattern(t, "MMMMM EEEEE"),
			exp:     "S F",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var loc *locale.Locale
			if tc.locale != "" {
				loc = lookup(t, tc.locale)
			}
			assert.Equal(t, tc.exp, Format(inst, tc.pattern, tc.tz, loc))
		})
	}
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name    string
		pattern *ast.Pattern
		time    time.Time
		exp     string
	}{
		{
			name:    "midnight_12_hour",
			pattern: icuPattern(t, "hh:mm a"),
			time:    time.Date(2013, 9, 13, 0, 5, 0, 0, time.UTC),
			exp:     "12:05 AM",
		},
		{
			name:    "midnight_24_hour",
			pattern: icuPattern(t, "kk:mm"),
			time:    time.Date(2013, 9, 13, 0, 5, 0, 0, time.UTC),
			exp:     "24:05",
		},
		{
			name:    "noon_11_hour",
			pattern: icuPattern(t, "K a"),
			time:    time.Date(2013, 9, 13, 12, 0, 0, 0, time.UTC),
			exp:     "0 PM",
		},
		{
			name:    "fraction",
			pattern: icuPattern(t, "ss.SSS"),
			time:    time.Date(2013, 9, 13, 0, 0, 7, 250000000, time.UTC),
			exp:     "07.250",
		},
		{
			name:    "fraction_native",
			pattern: nativePattern(t, "s.u"),
			time:    time.Date(2013, 9, 13, 0, 0, 7, 1000, time.UTC),
			exp:     "07.000001",
		},
		{
			name:    "small_year",
			pattern: icuPattern(t, "yyyy"),
			time:    time.Date(33, 1, 1, 0, 0, 0, 0, time.UTC),
			exp:     "0033",
		},
		{
			name:    "unpadded_year",
			pattern: icuPattern(t, "y"),
			time:    time.Date(33, 1, 1, 0, 0, 0, 0, time.UTC),
			exp:     "33",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.exp, FormatTime(tc.time, tc.pattern, nil))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	berlin, err := types.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	de := lookup(t, "de-DE")

	for _, tc := range []struct {
		name    string
		pattern *ast.Pattern
		loc     *locale.Locale
	}{
		{"native_datetime", nativePattern(t, "Y-m-d H:i:s"), nil},
		{"native_names", nativePattern(t, "D, d M Y g:i:s A"), nil},
		{"native_offset", nativePattern(t, "Y-m-d\\TH:i:sP"), nil},
		{"native_unix", nativePattern(t, "U"), nil},
		{"icu_iso", icuPattern(t, "yyyy-MM-dd'T'HH:mm:ssXXX"), nil},
		{"icu_12_hour", icuPattern(t, "MMMM d, y h:mm:ss a"), nil},
		{"icu_de", icuPattern(t, "EEEE, d. MMMM y 'um' HH:mm:ss"), de},
		{"icu_abutting", icuPattern(t, "yyyyMMddHHmmss"), nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			zone := types.NewZone(berlin, berlin)

			for _, unix := range []int64{0, 951782400, 1379082195, 1710000000} {
				str := Format(types.Instant{Unix: unix}, tc.pattern, berlin, tc.loc)
				res := Parse(str, tc.pattern, zone, tc.loc, WithNow(fixedNow))
				a.True(res.Valid(), str)
				a.Equal(unix, res.Unix(), str)
			}
		})
	}
}
