package valueobject

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"polyglot/internal/domain"
)

// Locale identifies a language, an optional country and an optional variant.
// The zero value is not a usable locale; build one with Of, NewLocale or ParseLocale.
type Locale struct {
	Language string
	Country  string
	Variant  string
}

// Canonical locales. English is the default fallback.
var (
	English = Locale{Language: "en"}
	Spanish = Locale{Language: "es"}
	French  = Locale{Language: "fr"}
)

// Of normalizes casing without validating: language is lowercased, country uppercased.
func Of(language, country, variant string) Locale {
	return Locale{
		Language: strings.ToLower(language),
		Country:  strings.ToUpper(country),
		Variant:  variant,
	}
}

// NewLocale is the strict factory. It trims every segment and rejects a blank language.
func NewLocale(language, country, variant string) (Locale, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return Locale{}, domain.ErrBlankLanguage
	}
	return Of(language, strings.TrimSpace(country), strings.TrimSpace(variant)), nil
}

// ParseLocale accepts "en", "en_US", "en-US" and "en_US_POSIX" style identifiers.
func ParseLocale(s string) (Locale, error) {
	parts := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == '_' || r == '-'
	})
	switch len(parts) {
	case 0:
		return Locale{}, domain.ErrBlankLanguage
	case 1:
		return NewLocale(parts[0], "", "")
	case 2:
		return NewLocale(parts[0], parts[1], "")
	default:
		return NewLocale(parts[0], parts[1], strings.Join(parts[2:], "_"))
	}
}

// MustParseLocale is like ParseLocale but panics on error. Intended for constants and tests.
func MustParseLocale(s string) Locale {
	l, err := ParseLocale(s)
	if err != nil {
		panic(fmt.Sprintf("valueobject: parse locale %q: %v", s, err))
	}
	return l
}

// IsLanguageOnly reports whether country and variant are both empty.
func (l Locale) IsLanguageOnly() bool {
	return l.Country == "" && l.Variant == ""
}

// LanguageOnly projects the locale onto its language.
func (l Locale) LanguageOnly() Locale {
	return Locale{Language: l.Language}
}

// Tag converts the locale to a BCP 47 tag. Segments x/text cannot represent
// are dropped, so Tag is lossy for unusual variants.
func (l Locale) Tag() language.Tag {
	b := []string{l.Language}
	if l.Country != "" {
		b = append(b, l.Country)
	}
	tag, err := language.Parse(strings.Join(b, "-"))
	if err != nil {
		return language.Make(l.Language)
	}
	return tag
}

func (l Locale) String() string {
	var b strings.Builder
	b.WriteString(l.Language)
	if l.Country != "" {
		b.WriteString("_")
		b.WriteString(l.Country)
	}
	if l.Variant != "" {
		b.WriteString("_")
		b.WriteString(l.Variant)
	}
	return b.String()
}
