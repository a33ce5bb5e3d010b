package service

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"polyglot/internal/domain/entities"
	"polyglot/internal/domain/valueobject"
)

// FallbackTier names the step of the fallback chain that produced a message.
type FallbackTier string

const (
	TierExact    FallbackTier = "exact"
	TierLanguage FallbackTier = "language"
	TierDefault  FallbackTier = "default"
	TierNone     FallbackTier = "none"
)

// Resolution is the traced outcome of a lookup.
type Resolution struct {
	Message valueobject.Message
	Tier    FallbackTier
	Found   bool
}

// ValidationResult reports bundle completeness. It is data, not an error.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// MessageResolutionService holds no state; the zero value is ready to use
// and may be shared between goroutines.
type MessageResolutionService struct{}

func NewMessageResolutionService() MessageResolutionService {
	return MessageResolutionService{}
}

// ResolveMessage looks key up for target, falling back to the language-only
// locale and then to English. The returned message is tagged with the locale
// whose bundle supplied the text, which may differ from target.
func (s MessageResolutionService) ResolveMessage(
	key valueobject.MessageKey,
	target valueobject.Locale,
	bundles map[valueobject.Locale]entities.MessageBundle,
) (valueobject.Message, bool) {
	r := s.Resolve(key, target, bundles)
	return r.Message, r.Found
}

// Resolve is ResolveMessage with the tier that answered.
func (s MessageResolutionService) Resolve(
	key valueobject.MessageKey,
	target valueobject.Locale,
	bundles map[valueobject.Locale]entities.MessageBundle,
) Resolution {
	if r, ok := lookup(bundles, key, target, TierExact); ok {
		return r
	}
	if target.Country != "" {
		if r, ok := lookup(bundles, key, target.LanguageOnly(), TierLanguage); ok {
			return r
		}
	}
	if r, ok := lookup(bundles, key, valueobject.English, TierDefault); ok {
		return r
	}
	return Resolution{Tier: TierNone}
}

func lookup(
	bundles map[valueobject.Locale]entities.MessageBundle,
	key valueobject.MessageKey,
	locale valueobject.Locale,
	tier FallbackTier,
) (Resolution, bool) {
	b, ok := bundles[locale]
	if !ok {
		return Resolution{}, false
	}
	text, ok := b.Message(key)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{
		Message: valueobject.NewMessage(key, text, locale),
		Tier:    tier,
		Found:   true,
	}, true
}

// ValidateBundles checks every bundle against the well-known key set.
func (s MessageResolutionService) ValidateBundles(
	bundles map[valueobject.Locale]entities.MessageBundle,
) ValidationResult {
	var errs []string
	for _, locale := range sortedLocales(bundles) {
		b := bundles[locale]
		var missing []string
		for _, key := range valueobject.RequiredKeys() {
			if !b.HasMessage(key) {
				missing = append(missing, key.String())
			}
		}
		if len(missing) > 0 {
			errs = append(errs, fmt.Sprintf("Bundle for locale %s is missing keys: %s", locale, strings.Join(missing, ", ")))
		}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// FindMissingTranslations diffs every bundle against the union of keys present
// in any bundle. Complete bundles are left out of the result.
func (s MessageResolutionService) FindMissingTranslations(
	bundles map[valueobject.Locale]entities.MessageBundle,
) map[valueobject.Locale][]valueobject.MessageKey {
	union := make(map[valueobject.MessageKey]struct{})
	for _, b := range bundles {
		for _, key := range b.Keys() {
			union[key] = struct{}{}
		}
	}
	all := slices.SortedFunc(maps.Keys(union), func(a, b valueobject.MessageKey) int {
		return strings.Compare(a.String(), b.String())
	})

	out := make(map[valueobject.Locale][]valueobject.MessageKey)
	for locale, b := range bundles {
		var missing []valueobject.MessageKey
		for _, key := range all {
			if !b.HasMessage(key) {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			out[locale] = missing
		}
	}
	return out
}

func sortedLocales(bundles map[valueobject.Locale]entities.MessageBundle) []valueobject.Locale {
	return slices.SortedFunc(maps.Keys(bundles), func(a, b valueobject.Locale) int {
		return strings.Compare(a.String(), b.String())
	})
}
