package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported settings language code.
type Language string

const (
	English Language = "en"
	Russian Language = "ru"

	Default = English
)

var ErrUnsupported = errors.New("i18n: unsupported language")

var (
	supported = []Language{English, Russian}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Russian})
)

// Supported lists the languages a server can pick, default first.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Parse accepts a BCP 47 code ("ru", "ru-RU", "en-GB") whose base language is supported.
func Parse(code string) (Language, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrUnsupported
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, code)
	}
	base, _ := tag.Base()
	for _, l := range supported {
		if base.String() == string(l) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, code)
}

// Match picks the closest supported language for a list of client locales,
// falling back to Default when nothing is close enough.
func Match(locales ...string) Language {
	tags := make([]language.Tag, 0, len(locales))
	for _, l := range locales {
		if t, err := language.Parse(l); err == nil {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}

// Valid reports whether l is one of the supported codes.
func (l Language) Valid() bool {
	for _, s := range supported {
		if s == l {
			return true
		}
	}
	return false
}

// OrDefault returns l when supported and Default otherwise.
func (l Language) OrDefault() Language {
	if l.Valid() {
		return l
	}
	return Default
}

// Lookup resolves key for lang, falling back to English and then to the key itself.
func Lookup(lang Language, key string) string {
	if t, ok := catalog[lang.OrDefault()][key]; ok {
		return t
	}
	if t, ok := catalog[Default][key]; ok {
		return t
	}
	return key
}

// Sprintf formats the translation of key with args.
func Sprintf(lang Language, key string, args ...any) string {
	return fmt.Sprintf(Lookup(lang, key), args...)
}

// Has reports whether key exists in lang's own table.
func Has(lang Language, key string) bool {
	_, ok := catalog[lang][key]
	return ok
}
