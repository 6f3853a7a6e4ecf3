// Package validate checks model attributes against date formats and writes
// the normalized timestamp back to the model.
package validate

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/theory/datefmt"
	"github.com/theory/datefmt/exec"
	"github.com/theory/datefmt/locale"
	"github.com/theory/datefmt/types"
)

//revive:disable:exported
const (
	DefaultMessage  = "The format of {attribute} is invalid."
	DefaultTooSmall = "{attribute} must be no less than {min}."
	DefaultTooBig   = "{attribute} must be no greater than {max}."
)

//revive:enable:exported

// Model provides the attributes to validate and collects validation errors.
type Model interface {
	// Attribute returns the value of the named attribute and true, or false
	// if the model has no such attribute.
	Attribute(name string) (any, bool)

	// SetAttribute sets the value of the named attribute.
	SetAttribute(name string, value any)

	// AddError records a validation error for the named attribute.
	AddError(name, message string)
}

// Validator validates dates, times, and datetimes. The zero value validates
// the short date format of en-US in UTC.
type Validator struct {
	// Format is the format of the values to validate, in the form parsed by
	// [datefmt.ParseFormat]. Skeletons select the patterns of Type, unless
	// they name a kind of their own, as in "time:short". Defaults to the
	// short skeleton.
	Format string

	// Type selects the date, time, or datetime patterns for skeleton
	// formats.
	Type locale.Kind

	// Locale is the locale of names and skeletons. Defaults to en-US.
	Locale string

	// TimeZone is the IANA time zone of values without an offset. Defaults
	// to UTC.
	TimeZone string

	// TimestampAttribute names the attribute that receives the parsed value
	// of a valid attribute. Nothing is written if it's empty.
	TimestampAttribute string

	// TimestampAttributeFormat is the format of the value written to
	// TimestampAttribute. If empty, the Unix timestamp is written as an
	// int64; otherwise the timestamp is rendered as a string.
	TimestampAttributeFormat string

	// TimestampAttributeTimeZone is the IANA time zone of the value written
	// to TimestampAttribute. Dates without times resolve to midnight in this
	// zone. Defaults to UTC.
	TimestampAttributeTimeZone string

	// Min and Max are the optional inclusive bounds of valid values: strings
	// in Format, Unix timestamps as integers, or time.Time values.
	Min any
	Max any

	// Message is the error for invalid values. Defaults to DefaultMessage.
	// "{attribute}" and "{value}" are replaced with the attribute name and
	// value.
	Message string

	// TooSmall is the error for values less than Min. Defaults to
	// DefaultTooSmall. "{min}" is replaced with Min.
	TooSmall string

	// TooBig is the error for values greater than Max. Defaults to
	// DefaultTooBig. "{max}" is replaced with Max.
	TooBig string

	// SkipOnEmpty skips validation of missing, nil, and empty attributes.
	SkipOnEmpty bool

	// Locales provides locale data. Defaults to [locale.Default].
	Locales locale.Provider

	// Logger logs configuration errors if set.
	Logger *slog.Logger

	// Options apply to every parse.
	Options []exec.Option
}

// compiled holds the layouts and bounds derived from a Validator.
type compiled struct {
	layout    *datefmt.Layout
	timestamp *datefmt.Layout
	min       *bound
	max       *bound
}

// bound is a resolved Min or Max.
type bound struct {
	unix int64
	text string
}

// Validate returns true if value is valid and within the bounds.
// Configuration errors are logged to Logger and make every value invalid.
func (v *Validator) Validate(value any) bool {
	c, err := v.compile()
	if err != nil {
		v.logError("", err)
		return false
	}
	_, problem := c.check(value)
	return problem == ""
}

// ValidateAttribute validates the named attribute of model. It records an
// error on model for invalid values, and otherwise writes the timestamp to
// TimestampAttribute if it's set. Returns an error wrapping
// datefmt.ErrConfig only if the validator is misconfigured.
func (v *Validator) ValidateAttribute(model Model, attribute string) error {
	value, ok := model.Attribute(attribute)
	if v.SkipOnEmpty && (!ok || isEmpty(value)) {
		return nil
	}

	c, err := v.compile()
	if err != nil {
		v.logError(attribute, err)
		return err
	}

	inst, problem := c.check(value)
	if problem != "" {
		model.AddError(attribute, v.message(problem, attribute, value, c))
		return nil
	}

	if v.TimestampAttribute != "" {
		if c.timestamp == nil {
			model.SetAttribute(v.TimestampAttribute, inst.Unix)
		} else {
			model.SetAttribute(v.TimestampAttribute, c.timestamp.Format(inst))
		}
	}
	return nil
}

// Validation problems reported by check.
const (
	problemInvalid  = "invalid"
	problemTooSmall = "too small"
	problemTooBig   = "too big"
)

// check parses value and compares it to the bounds. Returns the instant and
// an empty string for valid values, and a problem otherwise.
func (c *compiled) check(value any) (types.Instant, string) {
	inst, ok := c.layout.Parse(value).Instant()
	switch {
	case !ok:
		return inst, problemInvalid
	case c.min != nil && inst.Unix < c.min.unix:
		return inst, problemTooSmall
	case c.max != nil && inst.Unix > c.max.unix:
		return inst, problemTooBig
	default:
		return inst, ""
	}
}

// compile resolves the validator configuration.
func (v *Validator) compile() (*compiled, error) {
	output := v.TimestampAttributeTimeZone
	if output == "" {
		output = "UTC"
	}

	engine, err := datefmt.New(datefmt.Config{
		TimeZone:       v.TimeZone,
		OutputTimeZone: output,
		Locale:         v.Locale,
		Locales:        v.Locales,
	}, v.Options...)
	if err != nil {
		//nolint:wrapcheck // Already wraps ErrConfig
		return nil, err
	}

	format := engine.ParseFormat(v.Format)
	if s, ok := format.(datefmt.Skeleton); ok && s.Kind == locale.Date {
		s.Kind = v.Type
		format = s
	}

	c := &compiled{}
	if c.layout, err = engine.Compile(format); err != nil {
		//nolint:wrapcheck // Already wraps ErrConfig
		return nil, err
	}

	if v.TimestampAttributeFormat != "" {
		c.timestamp, err = engine.Compile(engine.ParseFormat(v.TimestampAttributeFormat))
		if err != nil {
			//nolint:wrapcheck // Already wraps ErrConfig
			return nil, err
		}
	}

	if c.min, err = resolveBound("min", v.Min, c.layout); err != nil {
		return nil, err
	}
	if c.max, err = resolveBound("max", v.Max, c.layout); err != nil {
		return nil, err
	}
	return c, nil
}

//nolint:gochecknoglobals
var unixLayout = datefmt.MustCompile("php:U")

// resolveBound resolves a Min or Max value. Strings parse with layout,
// numbers are Unix timestamps. Nil means no bound.
func resolveBound(name string, value any, layout *datefmt.Layout) (*bound, error) {
	switch val := value.(type) {
	case nil:
		return nil, nil //nolint:nilnil
	case time.Time:
		return &bound{unix: val.Unix(), text: layout.FormatTime(val)}, nil
	case string:
		res := layout.Parse(val)
		if !res.Valid() {
			return nil, fmt.Errorf(
				"%w: %v value %q does not match format %q",
				datefmt.ErrConfig, name, val, layout,
			)
		}
		return &bound{unix: res.Unix(), text: val}, nil
	default:
		res := unixLayout.Parse(val)
		if !res.Valid() {
			return nil, fmt.Errorf(
				"%w: %v value %v of type %T is not a timestamp",
				datefmt.ErrConfig, name, val, val,
			)
		}
		return &bound{unix: res.Unix(), text: layout.FormatUnix(res.Unix())}, nil
	}
}

// message returns the error message for problem.
func (v *Validator) message(problem, attribute string, value any, c *compiled) string {
	var msg string
	switch problem {
	case problemTooSmall:
		msg = orDefault(v.TooSmall, DefaultTooSmall)
	case problemTooBig:
		msg = orDefault(v.TooBig, DefaultTooBig)
	default:
		msg = orDefault(v.Message, DefaultMessage)
	}

	pairs := []string{"{attribute}", attribute, "{value}", fmt.Sprint(value)}
	if c.min != nil {
		pairs = append(pairs, "{min}", c.min.text)
	}
	if c.max != nil {
		pairs = append(pairs, "{max}", c.max.text)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// logError logs a configuration error if the validator has a logger.
func (v *Validator) logError(attribute string, err error) {
	if v.Logger == nil {
		return
	}
	args := []any{"format", v.Format, "error", err}
	if attribute != "" {
		args = append(args, "attribute", attribute)
	}
	v.Logger.Error("invalid date validator configuration", args...)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// isEmpty returns true for nil and empty strings.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []byte:
		return len(v) == 0
	default:
		return false
	}
}
