// Package datefmt validates and normalizes dates written in one of two
// pattern languages: PHP-style native patterns such as "php:Y-m-d" and ICU
// patterns such as "yyyy-MM-dd". A third form names one of a locale's
// predefined patterns, such as "short" or "datetime:medium".
//
// Compile a [Format] once with an [Engine] configured with time zones and a
// locale, then use the resulting [Layout] to parse candidates into Unix
// timestamps and to render timestamps back into strings. Parsing never
// fails with an error: input either matches its pattern exactly or is
// invalid. Errors arise only from configuration, when compiling.
package datefmt

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/theory/datefmt/exec"
	"github.com/theory/datefmt/locale"
	"github.com/theory/datefmt/pattern/ast"
	"github.com/theory/datefmt/pattern/parser"
	"github.com/theory/datefmt/types"
)

var (
	// ErrConfig wraps configuration errors: invalid patterns, unknown
	// locales, and unknown time zones.
	ErrConfig = errors.New("config")

	// ErrScan wraps scanning errors.
	ErrScan = errors.New("scan")
)

// nativePrefix marks native patterns in the string form of a [Format].
const nativePrefix = "php:"

// Format is a date format: a [Native] pattern, an [ICU] pattern, or a
// [Skeleton] resolved from locale data. The set of implementations is
// closed.
type Format interface {
	// String returns the string form parsed by [ParseFormat].
	String() string

	// pattern compiles the format for e.
	pattern(e *Engine) (*ast.Pattern, error)
}

// Native is a pattern of PHP date tokens, such as "Y-m-d H:i:s".
type Native string

// String returns the pattern with the "php:" prefix.
func (n Native) String() string { return nativePrefix + string(n) }

func (n Native) pattern(*Engine) (*ast.Pattern, error) {
	//nolint:wrapcheck // Wrapped by Compile
	return parser.ParseNative(string(n))
}

// ICU is a pattern of ICU date tokens, such as "yyyy-MM-dd HH:mm:ss".
type ICU string

// String returns the pattern.
func (i ICU) String() string { return string(i) }

func (i ICU) pattern(*Engine) (*ast.Pattern, error) {
	//nolint:wrapcheck // Wrapped by Compile
	return parser.ParseICU(string(i))
}

// Skeleton selects one of the predefined patterns of the engine's locale.
// The zero value is the short date pattern.
type Skeleton struct {
	Kind      locale.Kind
	Verbosity locale.Verbosity
}

// String returns the verbosity for date skeletons, and the kind and
// verbosity separated by a colon, such as "time:short", for the others.
func (s Skeleton) String() string {
	if s.Kind == locale.Date {
		return s.Verbosity.String()
	}
	return s.Kind.String() + ":" + s.Verbosity.String()
}

func (s Skeleton) pattern(e *Engine) (*ast.Pattern, error) {
	//nolint:wrapcheck // Wrapped by Compile
	return parser.ParseICU(e.locale.Pattern(s.Kind, s.Verbosity))
}

// ParseFormat parses the string form of a format using the defaults of
// [Default]. See [Engine.ParseFormat].
func ParseFormat(format string) Format {
	return Default().ParseFormat(format)
}

// parseSkeleton returns the Skeleton named by format, if any.
func parseSkeleton(format string) (Skeleton, bool) {
	if v, err := locale.ParseVerbosity(format); err == nil {
		return Skeleton{Kind: locale.Date, Verbosity: v}, true
	}

	kind, name, ok := strings.Cut(format, ":")
	if !ok {
		return Skeleton{}, false
	}
	k, err := locale.ParseKind(kind)
	if err != nil {
		return Skeleton{}, false
	}
	v, err := locale.ParseVerbosity(name)
	if err != nil {
		return Skeleton{}, false
	}
	return Skeleton{Kind: k, Verbosity: v}, true
}

// Config configures an [Engine].
type Config struct {
	// TimeZone is the IANA time zone in which to interpret wall clock times
	// that carry no offset. Defaults to UTC.
	TimeZone string

	// OutputTimeZone is the IANA time zone of stored timestamps: dates
	// without times resolve to midnight in this zone, and formatted values
	// render in it. Defaults to TimeZone.
	OutputTimeZone string

	// Locale is the identifier of the locale for names and skeletons, such
	// as "de-DE" or "de_DE". Defaults to "en-US".
	Locale string

	// Verbosity is the verbosity of the skeleton selected by an empty
	// format string. Defaults to short.
	Verbosity locale.Verbosity

	// Locales provides locale data. Defaults to [locale.Default].
	Locales locale.Provider
}

// defaultLocale is the locale of engines configured without one.
const defaultLocale = "en-US"

// Engine compiles formats for a time zone and locale context. Engines are
// immutable and safe for concurrent use.
type Engine struct {
	zone      types.Zone
	locale    *locale.Locale
	verbosity locale.Verbosity
	opts      []exec.Option
}

// New creates an Engine from cfg. The exec options apply to every parse.
// Returns an error wrapping ErrConfig if the time zones or the locale
// cannot be loaded.
func New(cfg Config, opt ...exec.Option) (*Engine, error) {
	output := cfg.OutputTimeZone
	if output == "" {
		output = cfg.TimeZone
	}
	zone, err := types.LoadZone(cfg.TimeZone, output)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	provider := cfg.Locales
	if provider == nil {
		provider = locale.Default()
	}
	id := cfg.Locale
	if id == "" {
		id = defaultLocale
	}
	loc, err := provider.Lookup(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return &Engine{zone: zone, locale: loc, verbosity: cfg.Verbosity, opts: opt}, nil
}

//nolint:gochecknoglobals
var defaultEngine = sync.OnceValue(func() *Engine {
	e, err := New(Config{})
	if err != nil {
		panic(err)
	}
	return e
})

// Default returns the Engine for UTC and en-US with short skeletons.
func Default() *Engine {
	return defaultEngine()
}

// Zone returns the engine's time zones.
func (e *Engine) Zone() types.Zone { return e.zone }

// Locale returns the engine's locale.
func (e *Engine) Locale() *locale.Locale { return e.locale }

// ParseFormat parses the string form of a format. Strings with the "php:"
// prefix are [Native] patterns. A verbosity ("short", "medium", "long",
// "full"), optionally prefixed with a kind and a colon ("time:short",
// "datetime:full"), is a [Skeleton], and the empty string is the date
// skeleton of the engine's verbosity. Anything else is an [ICU] pattern.
// ParseFormat never fails; invalid patterns are reported by
// [Engine.Compile].
func (e *Engine) ParseFormat(format string) Format {
	if src, ok := strings.CutPrefix(format, nativePrefix); ok {
		return Native(src)
	}
	if format == "" {
		return Skeleton{Kind: locale.Date, Verbosity: e.verbosity}
	}
	if s, ok := parseSkeleton(format); ok {
		return s
	}
	return ICU(format)
}

// Compile compiles format into a Layout bound to the engine's time zones and
// locale. Returns an error wrapping ErrConfig if the pattern is invalid.
func (e *Engine) Compile(format Format) (*Layout, error) {
	if format == nil {
		return e.Compile(Skeleton{Kind: locale.Date, Verbosity: e.verbosity})
	}
	p, err := format.pattern(e)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return &Layout{format: format, pattern: p, engine: e}, nil
}

// MustCompile is like Compile but panics on failure.
func (e *Engine) MustCompile(format Format) *Layout {
	l, err := e.Compile(format)
	if err != nil {
		panic(err)
	}
	return l
}

// Compile compiles format with the [Default] engine.
func Compile(format string) (*Layout, error) {
	e := Default()
	return e.Compile(e.ParseFormat(format))
}

// MustCompile is like [Compile] but panics on failure. Mostly provided for
// use in documentation examples.
func MustCompile(format string) *Layout {
	l, err := Compile(format)
	if err != nil {
		panic(err)
	}
	return l
}

// Parse parses candidate with format using the [Default] engine. Returns an
// error only if format is invalid.
func Parse(candidate any, format string) (exec.Result, error) {
	l, err := Compile(format)
	if err != nil {
		return exec.Invalid, err
	}
	return l.Parse(candidate), nil
}

// Layout is a compiled [Format] bound to the time zones and locale of an
// [Engine]. Layouts are immutable and safe for concurrent use.
type Layout struct {
	format  Format
	pattern *ast.Pattern
	engine  *Engine
}

// Source returns the format the layout was compiled from.
func (l *Layout) Source() Format { return l.format }

// Pattern returns the compiled pattern. For skeletons, it's the pattern
// resolved from the locale.
func (l *Layout) Pattern() *ast.Pattern { return l.pattern }

// String returns the compiled pattern in the string form parsed by
// [ParseFormat], so that skeletons render as the pattern they resolved to.
func (l *Layout) String() string { return l.pattern.String() }

// Parse parses candidate, a string or, for timestamp patterns, an integer.
func (l *Layout) Parse(candidate any) exec.Result {
	e := l.engine
	return exec.Parse(candidate, l.pattern, e.zone, e.locale, e.opts...)
}

// Valid returns true if candidate matches the layout.
func (l *Layout) Valid(candidate any) bool {
	return l.Parse(candidate).Valid()
}

// Format renders inst in the engine's output time zone.
func (l *Layout) Format(inst types.Instant) string {
	return l.FormatIn(inst, l.engine.zone.Out())
}

// FormatIn renders inst in tz, or UTC if tz is nil.
func (l *Layout) FormatIn(inst types.Instant, tz *time.Location) string {
	return exec.Format(inst, l.pattern, tz, l.engine.locale)
}

// FormatUnix renders the Unix timestamp sec in the engine's output time
// zone.
func (l *Layout) FormatUnix(sec int64) string {
	return l.Format(types.Instant{Unix: sec})
}

// FormatTime renders t in its own location.
func (l *Layout) FormatTime(t time.Time) string {
	return exec.FormatTime(t, l.pattern, l.engine.locale)
}

// Scan implements sql.Scanner so Layouts can be read from databases
// transparently, compiled with the [Default] engine. Database types that map
// to string and []byte are supported.
func (l *Layout) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		if src == "" {
			return nil
		}
		layout, err := Compile(src)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScan, err)
		}
		*l = *layout
	case []byte:
		if len(src) == 0 {
			return nil
		}
		return l.Scan(string(src))
	default:
		return fmt.Errorf("%w: unable to scan type %T into Layout", ErrScan, src)
	}
	return nil
}

// Value implements driver.Valuer so that Layouts can be written to
// databases transparently. Layouts map to strings.
func (l *Layout) Value() (driver.Value, error) {
	return l.String(), nil
}

// MarshalText implements encoding.TextMarshaler.
func (l *Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, compiling data with the
// [Default] engine.
func (l *Layout) UnmarshalText(data []byte) error {
	layout, err := Compile(string(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScan, err)
	}
	*l = *layout
	return nil
}
