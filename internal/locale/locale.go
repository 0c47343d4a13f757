// Package locale provides the translated strings of the terminal UI.
package locale

import (
	"embed"
	"fmt"
	"maps"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var catalogs embed.FS

var supported = map[string]string{
	"en": "active.en.toml",
	"vi": "active.vi.toml",
}

// Languages lists the supported language tags.
func Languages() []string {
	return slices.Sorted(maps.Keys(supported))
}

// Localizer renders message ids in one language, falling back to English.
type Localizer struct {
	lang string
	l    *i18n.Localizer
}

// New loads the catalogs and returns a localizer for lang.
func New(lang string) (*Localizer, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parsing language %q: %w", lang, err)
	}
	base, _ := tag.Base()
	if _, ok := supported[base.String()]; !ok {
		return nil, fmt.Errorf("unsupported language %q", lang)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, file := range supported {
		if _, err := bundle.LoadMessageFileFS(catalogs, file); err != nil {
			return nil, fmt.Errorf("loading %s: %w", file, err)
		}
	}

	return &Localizer{
		lang: base.String(),
		l:    i18n.NewLocalizer(bundle, base.String(), language.English.String()),
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(lang string) *Localizer {
	l, err := New(lang)
	if err != nil {
		panic(err)
	}
	return l
}

// Lang returns the base language in use.
func (l *Localizer) Lang() string { return l.lang }

// T renders id. Unknown ids render as themselves.
func (l *Localizer) T(id string) string {
	return l.TData(id, nil)
}

// TData renders id with template data.
func (l *Localizer) TData(id string, data map[string]any) string {
	s, err := l.l.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return s
}
