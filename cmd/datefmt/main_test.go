package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theory/datefmt"
	"github.com/theory/datefmt/locale"
)

// run executes the root command with args and returns stdout, stderr, and
// the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

const nlLocale = `id: nl-NL
months:
  format:
    abbreviated: [jan., feb., mrt., apr., mei, jun., jul., aug., sep., okt., nov., dec.]
    wide: [januari, februari, maart, april, mei, juni, juli, augustus, september, oktober, november, december]
weekdays:
  format:
    abbreviated: [zo, ma, di, wo, do, vr, za]
    wide: [zondag, maandag, dinsdag, woensdag, donderdag, vrijdag, zaterdag]
day_periods: [a.m., p.m.]
date:
  short: dd-MM-y
  medium: d MMM y
  long: d MMMM y
  full: EEEE d MMMM y
time:
  short: HH:mm
  medium: HH:mm:ss
  long: HH:mm:ss XXX
  full: HH:mm:ss XXX
`

func TestCommands(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		args []string
		exp  string
		err  string
	}{
		{
			name: "parse_native",
			args: []string{"parse", "php:Y-m-d", "2013-09-13"},
			exp:  "1379030400\n",
		},
		{
			name: "parse_icu_time_zone",
			args: []string{"parse", "--timezone", "Europe/Berlin", "yyyy-MM-dd HH:mm:ss", "2013-09-13 16:23:15"},
			exp:  "1379082195\n",
		},
		{
			name: "parse_date_output_zone",
			args: []string{"parse", "-z", "Europe/Berlin", "--output-timezone", "UTC", "yyyy-MM-dd", "2013-09-13"},
			exp:  "1379030400\n",
		},
		{
			name: "parse_date_zone",
			args: []string{"parse", "-z", "Europe/Berlin", "yyyy-MM-dd", "2013-09-13"},
			exp:  "1379023200\n",
		},
		{
			name: "parse_output",
			args: []string{"parse", "-l", "de-DE", "-o", "EEEE, d. MMMM y", "short", "13.09.13"},
			exp:  "Freitag, 13. September 2013\n",
		},
		{
			name: "parse_skeleton",
			args: []string{"parse", "--locale", "en-GB", "", "31/5/2017"},
			exp:  "1496188800\n",
		},
		{
			name: "parse_invalid",
			args: []string{"parse", "yyyy-MM-dd", "2012-12-12foo"},
			err:  `invalid: "2012-12-12foo" does not match "yyyy-MM-dd"`,
		},
		{
			name: "parse_bad_pattern",
			args: []string{"parse", "yyyy-qq", "2013"},
			err:  `config: pattern: unsupported pattern letter 'q' (supported: EHKLMSXZacdhkmsxy) in "yyyy-qq"`,
		},
		{
			name: "parse_bad_output",
			args: []string{"parse", "-o", "php:", "php:U", "0"},
			err:  "config: pattern: empty native pattern",
		},
		{
			name: "parse_args",
			args: []string{"parse", "yyyy"},
			err:  "accepts 2 arg(s), received 1",
		},
		{
			name: "format_native",
			args: []string{"format", "php:D, d M Y H:i:s O", "1379082195"},
			exp:  "Fri, 13 Sep 2013 14:23:15 +0000\n",
		},
		{
			name: "format_zone",
			args: []string{"format", "--timezone", "America/Jamaica", "yyyy-MM-dd'T'HH:mm:ssXXX", "1379082195"},
			exp:  "2013-09-13T09:23:15-05:00\n",
		},
		{
			name: "format_locale",
			args: []string{"format", "--locale", "ru_RU", "long", "1399852800"},
			exp:  "12 мая 2014 г.\n",
		},
		{
			name: "format_verbosity",
			args: []string{"format", "--verbosity", "medium", "--locale", "de", "", "1399852800"},
			exp:  "12.05.2014\n",
		},
		{
			name: "format_bad_timestamp",
			args: []string{"format", "php:U", "yesterday"},
			err:  `invalid: "yesterday" is not a Unix timestamp`,
		},
		{
			name: "bad_verbosity",
			args: []string{"format", "--verbosity", "huge", "php:U", "0"},
			err:  `config: locale: unknown verbosity "huge"`,
		},
		{
			name: "bad_time_zone",
			args: []string{"format", "-z", "Nowhere/Land", "php:U", "0"},
			err:  `config: zone: unknown time zone "Nowhere/Land"`,
		},
		{
			name: "bad_locale",
			args: []string{"format", "-l", "ja", "php:U", "0"},
			err:  `config: locale: no data for locale "ja"`,
		},
		{
			name: "validate",
			args: []string{"validate", "php:Y-m-d", "2013-09-13", "2012-02-29"},
			exp:  "valid\t2013-09-13\nvalid\t2012-02-29\n",
		},
		{
			name: "validate_invalid",
			args: []string{"validate", "dd MMM yyyy", "-l", "ru-RU", "12 мая 2014", "12 May 2014"},
			exp:  "valid\t12 мая 2014\ninvalid\t12 May 2014\n",
			err:  "invalid: 1 of 2 values",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)

			stdout, _, err := run(t, tc.args...)
			if tc.err != "" {
				a.EqualError(err, tc.err)
			} else {
				a.NoError(err)
			}
			a.Equal(tc.exp, stdout)
		})
	}
}

func TestErrorKinds(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, _, err := run(t, "parse", "php:Y-m-d", "nope")
	a.ErrorIs(err, errInvalid)

	_, _, err = run(t, "parse", "php:", "nope")
	a.ErrorIs(err, datefmt.ErrConfig)
}

func TestVerbose(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	stdout, stderr, err := run(t, "parse", "-v", "short", "9/13/13")
	r.NoError(err)
	a.Equal("1379030400\n", stdout)
	a.Contains(stderr, "level=DEBUG")
	a.Contains(stderr, `msg="compiled format" format=short pattern=M/d/yy`)

	_, stderr, err = run(t, "parse", "short", "9/13/13")
	r.NoError(err)
	a.Empty(stderr)
}

func TestLocalesFile(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "nl.yaml")
	r.NoError(os.WriteFile(file, []byte(nlLocale), 0o600))

	stdout, _, err := run(t, "parse", "--locales", file, "-l", "nl", "medium", "12 mei 2014")
	r.NoError(err)
	a.Equal("1399852800\n", stdout)

	// Built-in locales remain available.
	stdout, _, err = run(t, "parse", "--locales", file, "-l", "de", "medium", "12.05.2014")
	r.NoError(err)
	a.Equal("1399852800\n", stdout)

	_, _, err = run(t, "parse", "--locales", filepath.Join(dir, "nope.yaml"), "php:U", "0")
	r.ErrorIs(err, datefmt.ErrConfig)

	bad := filepath.Join(dir, "bad.yaml")
	r.NoError(os.WriteFile(bad, []byte("id: xx-XX\n"), 0o600))
	_, _, err = run(t, "parse", "--locales", bad, "php:U", "0")
	r.ErrorIs(err, locale.ErrLocale)
	a.Contains(err.Error(), bad)
}

func TestConfigFile(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "datefmt.yaml")
	r.NoError(os.WriteFile(file, []byte("timezone: Europe/Berlin\nlocale: de-DE\n"), 0o600))

	stdout, _, err := run(t, "format", "--config", file, "yyyy-MM-dd HH:mm MMMM", "1379082195")
	r.NoError(err)
	a.Equal("2013-09-13 16:23 September\n", stdout)

	// Flags override the file.
	stdout, _, err = run(t, "format", "-c", file, "-z", "UTC", "yyyy-MM-dd HH:mm", "1379082195")
	r.NoError(err)
	a.Equal("2013-09-13 14:23\n", stdout)

	_, _, err = run(t, "format", "-c", filepath.Join(dir, "nope.yaml"), "php:U", "0")
	r.ErrorContains(err, "read config")
}

//nolint:paralleltest // Sets environment variables.
func TestEnvironment(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	t.Setenv("DATEFMT_TIMEZONE", "America/Jamaica")
	t.Setenv("DATEFMT_OUTPUT_TIMEZONE", "UTC")

	stdout, _, err := run(t, "format", "yyyy-MM-dd HH:mm", "1379082195")
	r.NoError(err)
	a.Equal("2013-09-13 14:23\n", stdout)

	stdout, _, err = run(t, "parse", "yyyy-MM-dd HH:mm", "2013-09-13 09:23")
	r.NoError(err)
	a.Equal("1379082180\n", stdout)
}
