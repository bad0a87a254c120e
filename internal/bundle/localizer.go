package bundle

import (
	"errors"
	"fmt"
	"log/slog"
	"path"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Localizer looks up strings for one locale, falling back to the bundle's
// default locale and finally to the key itself.
type Localizer struct {
	bundle *Bundle
	locale string
}

// Localizer returns a Localizer for the best match among the bundle's locales
// for the given preferences, e.g. "es-MX" matches "es". With no usable
// preference the default locale is used.
func (b *Bundle) Localizer(preferred ...string) *Localizer {
	m := b.Manifest()

	supported := make([]language.Tag, 0, len(m.Locales))
	names := make([]string, 0, len(m.Locales))
	// The default locale goes first so the matcher falls back to it.
	supported = append(supported, language.Make(m.DefaultLocale))
	names = append(names, m.DefaultLocale)
	for _, l := range m.Locales {
		if l == m.DefaultLocale {
			continue
		}
		supported = append(supported, language.Make(l))
		names = append(names, l)
	}

	desired := make([]language.Tag, 0, len(preferred))
	for _, p := range preferred {
		if p == "" {
			continue
		}
		desired = append(desired, language.Make(p))
	}

	locale := m.DefaultLocale
	if len(desired) > 0 {
		_, idx, conf := language.NewMatcher(supported).Match(desired...)
		if conf != language.No {
			locale = names[idx]
		}
	}

	return &Localizer{bundle: b, locale: locale}
}

// Locale returns the bundle locale this Localizer resolved to.
func (l *Localizer) Locale() string {
	return l.locale
}

// Bundle returns the bundle the Localizer reads from.
func (l *Localizer) Bundle() *Bundle {
	return l.bundle
}

// String returns the localized string for key formatted with args.
func (l *Localizer) String(key string, args ...any) string {
	format, ok := l.lookup(key)
	if !ok {
		return key
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Plural picks key+".one" when n is 1 or -1 and key+".other" otherwise, then
// formats it with the absolute value of n.
func (l *Localizer) Plural(key string, n int) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if abs == 1 {
		return l.String(key+".one", abs)
	}
	return l.String(key+".other", abs)
}

// Has reports whether key resolves in this locale or the default locale.
func (l *Localizer) Has(key string) bool {
	_, ok := l.lookup(key)
	return ok
}

func (l *Localizer) lookup(key string) (string, bool) {
	if s, ok := l.bundle.table(l.locale)[key]; ok {
		return s, true
	}
	def := l.bundle.Manifest().DefaultLocale
	if def != l.locale {
		if s, ok := l.bundle.table(def)[key]; ok {
			return s, true
		}
	}
	return "", false
}

// table returns the string table for a locale. Missing or broken tables are
// logged and treated as empty so lookups fall through to the next locale.
func (b *Bundle) table(locale string) map[string]string {
	t, err := cached(b, "strings:"+locale, func() (map[string]string, error) {
		data, err := b.ReadFile(path.Join(b.Manifest().Strings, locale+".yaml"))
		if err != nil {
			return nil, err
		}
		table := map[string]string{}
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse %s strings: %w", locale, err)
		}
		return table, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Debug("No string table for locale", "locale", locale)
		} else {
			slog.Warn("Failed to load string table", "locale", locale, "error", err)
		}
		return map[string]string{}
	}
	return t
}
