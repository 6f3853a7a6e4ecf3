// Command datefmt parses, formats, and validates dates with native and ICU
// date patterns.
//
// Usage:
//
//	datefmt parse [flags] <format> <value>
//	datefmt format [flags] <format> <unix-seconds>
//	datefmt validate [flags] <format> <value>...
//
// Flags may also be set in the environment with the DATEFMT_ prefix, such as
// DATEFMT_TIMEZONE=Europe/Berlin, or in a YAML file passed to --config.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theory/datefmt"
	"github.com/theory/datefmt/locale"
)

// errInvalid reports input that does not match its format.
var errInvalid = errors.New("invalid")

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "datefmt:", err)
		os.Exit(1)
	}
}

// app holds the configuration shared by the subcommands.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
	stderr io.Writer
}

// newRootCommand creates the root command with its subcommands, writing
// results to stdout and logs to stderr.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New(), stderr: stderr}

	root := &cobra.Command{
		Use:           "datefmt",
		Short:         "Parse, format, and validate dates with native and ICU patterns",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "YAML configuration file")
	flags.StringP("timezone", "z", "UTC", "time zone of values without an offset")
	flags.String("output-timezone", "", "time zone of timestamps and dates (default --timezone)")
	flags.StringP("locale", "l", "en-US", "locale of names and skeletons")
	flags.String("verbosity", "short", "skeleton verbosity of the empty format")
	flags.StringSlice("locales", nil, "additional locale YAML files")
	flags.BoolP("verbose", "v", false, "log debugging information")

	root.AddCommand(a.parseCommand(), a.formatCommand(), a.validateCommand())
	return root
}

// configure binds the flags, environment, and config file into viper and
// sets up logging.
func (a *app) configure(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("DATEFMT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	if file := a.v.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	level := slog.LevelWarn
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// engine creates the engine configured by flags, environment, and config
// file.
func (a *app) engine() (*datefmt.Engine, error) {
	verbosity, err := locale.ParseVerbosity(a.v.GetString("verbosity"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", datefmt.ErrConfig, err)
	}

	provider, err := a.locales()
	if err != nil {
		return nil, err
	}

	cfg := datefmt.Config{
		TimeZone:       a.v.GetString("timezone"),
		OutputTimeZone: a.v.GetString("output-timezone"),
		Locale:         a.v.GetString("locale"),
		Verbosity:      verbosity,
		Locales:        provider,
	}
	a.logger.Debug("configuration",
		"timezone", cfg.TimeZone,
		"output-timezone", cfg.OutputTimeZone,
		"locale", cfg.Locale,
		"verbosity", cfg.Verbosity,
	)

	//nolint:wrapcheck // Already wraps ErrConfig
	return datefmt.New(cfg)
}

// locales returns the locale provider: the built-in locales, preceded by
// those loaded from the --locales files.
func (a *app) locales() (locale.Provider, error) {
	files := a.v.GetStringSlice("locales")
	if len(files) == 0 {
		return locale.Default(), nil
	}

	reg := locale.NewRegistry()
	for _, file := range files {
		if err := loadLocaleFile(reg, file); err != nil {
			return nil, err
		}
		a.logger.Debug("loaded locales", "file", file)
	}
	return locale.Chain(reg, locale.Default()), nil
}

func loadLocaleFile(reg *locale.Registry, file string) error {
	fh, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("%w: %w", datefmt.ErrConfig, err)
	}
	defer fh.Close()

	if err := reg.LoadYAML(fh); err != nil {
		return fmt.Errorf("%w: %w (%v)", datefmt.ErrConfig, err, file)
	}
	return nil
}

// compile compiles format with the configured engine.
func (a *app) compile(format string) (*datefmt.Layout, error) {
	e, err := a.engine()
	if err != nil {
		return nil, err
	}

	layout, err := e.Compile(e.ParseFormat(format))
	if err != nil {
		//nolint:wrapcheck // Already wraps ErrConfig
		return nil, err
	}
	a.logger.Debug("compiled format", "format", format, "pattern", layout.String())
	return layout, nil
}

func (a *app) parseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <format> <value>",
		Short: "Print the Unix timestamp of a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := a.compile(args[0])
			if err != nil {
				return err
			}

			res := layout.Parse(args[1])
			inst, ok := res.Instant()
			if !ok {
				return fmt.Errorf("%w: %q does not match %q", errInvalid, args[1], layout)
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), inst.Unix)
				return nil
			}

			out, err := a.compile(output)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Format(inst))
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "format of the output instead of the Unix timestamp")
	return cmd
}

func (a *app) formatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format <format> <unix-seconds>",
		Short: "Render a Unix timestamp",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %q is not a Unix timestamp", errInvalid, args[1])
			}

			layout, err := a.compile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), layout.FormatUnix(sec))
			return nil
		},
	}
}

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <format> <value>...",
		Short: "Report whether each value matches a format",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := a.compile(args[0])
			if err != nil {
				return err
			}

			invalid := 0
			for _, value := range args[1:] {
				verdict := "valid"
				if !layout.Valid(value) {
					verdict = "invalid"
					invalid++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%v\t%v\n", verdict, value)
			}

			if invalid > 0 {
				return fmt.Errorf("%w: %d of %d values", errInvalid, invalid, len(args)-1)
			}
			return nil
		},
	}
}
