package locale

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Provider looks up locales by identifier.
type Provider interface {
	// Lookup returns the locale best matching id, or an error wrapping
	// ErrLocale if no locale matches.
	Lookup(id string) (*Locale, error)
}

// Registry is a [Provider] holding a set of locales. Add locales at start-up;
// a Registry is safe for concurrent lookups once no more locales are added.
type Registry struct {
	locales map[string]*Locale
	tags    []language.Tag
	matcher language.Matcher
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{locales: map[string]*Locale{}}
}

//go:embed data/*.yaml
var data embed.FS

//nolint:gochecknoglobals
var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	if err := r.LoadFS(data, "data"); err != nil {
		panic(err)
	}
	return r
})

// Default returns the registry of built-in locales. It is built once and
// must not be modified; use [NewRegistry] and [Registry.LoadYAML] for
// additional locales.
func Default() *Registry {
	return defaultRegistry()
}

// Lookup looks up id in the [Default] registry.
func Lookup(id string) (*Locale, error) {
	return Default().Lookup(id)
}

// ParseTag parses a locale identifier into a language tag. Underscores are
// accepted in place of hyphens, so "de_DE" is the same as "de-DE". Returns
// an error wrapping ErrLocale if id is not well-formed.
func ParseTag(id string) (language.Tag, error) {
	tag, err := language.Parse(strings.ReplaceAll(id, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("%w: invalid locale id %q", ErrLocale, id)
	}
	return tag, nil
}

// Add validates l and adds it to the registry, replacing any locale with
// the same identifier.
func (r *Registry) Add(l *Locale) error {
	if l.ID == "" {
		return fmt.Errorf("%w: missing locale id", ErrLocale)
	}
	tag, err := ParseTag(l.ID)
	if err != nil {
		return err
	}
	if err := l.prepare(); err != nil {
		return err
	}

	l.ID = tag.String()
	if _, ok := r.locales[l.ID]; !ok {
		r.tags = append(r.tags, tag)
	}
	r.locales[l.ID] = l
	r.matcher = language.NewMatcher(r.tags)
	return nil
}

// LoadYAML decodes one or more YAML documents from reader, each describing
// a [Locale], and adds them to the registry.
func (r *Registry) LoadYAML(reader io.Reader) error {
	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	for {
		l := new(Locale)
		err := dec.Decode(l)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLocale, err)
		}
		if err := r.Add(l); err != nil {
			return err
		}
	}
}

// LoadFS loads every .yaml file in dir of fsys, in lexical order.
func (r *Registry) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLocale, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		if err := r.loadFile(fsys, dir+"/"+e.Name()); err != nil {
			return err
		}
	}
	return nil
}

// loadFile loads the YAML file name from fsys.
func (r *Registry) loadFile(fsys fs.FS, name string) error {
	fh, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLocale, err)
	}
	defer fh.Close()

	if err := r.LoadYAML(fh); err != nil {
		return fmt.Errorf("%w (%v)", err, name)
	}
	return nil
}

// Lookup returns the locale best matching id. An exact match wins; otherwise
// the closest locale is used if it's a high-confidence match, so that "de"
// and "de-AT" resolve to "de-DE". Returns an error wrapping ErrLocale if id
// is invalid or no locale matches.
func (r *Registry) Lookup(id string) (*Locale, error) {
	tag, err := ParseTag(id)
	if err != nil {
		return nil, err
	}

	if l, ok := r.locales[tag.String()]; ok {
		return l, nil
	}

	if r.matcher != nil {
		_, idx, conf := r.matcher.Match(tag)
		if conf >= language.High {
			return r.locales[r.tags[idx].String()], nil
		}
	}

	return nil, fmt.Errorf("%w: no data for locale %q", ErrLocale, id)
}

// IDs returns the sorted identifiers of the locales in the registry.
func (r *Registry) IDs() []string {
	ids := maps.Keys(r.locales)
	slices.Sort(ids)
	return ids
}

// Chain returns a Provider that looks up locales in each of providers in
// turn, returning the first match. If none matches, it returns the error
// from the last provider.
func Chain(providers ...Provider) Provider {
	return chain(providers)
}

type chain []Provider

func (c chain) Lookup(id string) (*Locale, error) {
	err := fmt.Errorf("%w: no data for locale %q", ErrLocale, id)
	for _, p := range c {
		l, lerr := p.Lookup(id)
		if lerr == nil {
			return l, nil
		}
		err = lerr
	}
	return nil, err
}
