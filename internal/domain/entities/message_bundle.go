package entities

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"polyglot/internal/domain"
	"polyglot/internal/domain/valueobject"
)

// BundleID identifies a MessageBundle. It is derived from the bundle locale.
type BundleID string

// NewBundleID rejects blank identifiers.
func NewBundleID(id string) (BundleID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", domain.ErrBlankBundleID
	}
	return BundleID(id), nil
}

// BundleIDFromLocale returns the identifier used for the bundle of locale.
func BundleIDFromLocale(locale valueobject.Locale) BundleID {
	return BundleID(locale.String())
}

func (id BundleID) String() string {
	return string(id)
}

// MessageBundle holds the message templates of one locale.
// Bundles are never modified in place: every mutator returns a new bundle.
type MessageBundle struct {
	ID          BundleID
	Locale      valueobject.Locale
	LastUpdated time.Time

	messages map[valueobject.MessageKey]string
}

// NewMessageBundle copies messages into a new bundle stamped with the current time.
func NewMessageBundle(locale valueobject.Locale, messages map[valueobject.MessageKey]string) MessageBundle {
	return RestoreMessageBundle(BundleIDFromLocale(locale), locale, messages, time.Now().UTC())
}

// RestoreMessageBundle rebuilds a bundle from storage, keeping its id and timestamp.
func RestoreMessageBundle(
	id BundleID,
	locale valueobject.Locale,
	messages map[valueobject.MessageKey]string,
	lastUpdated time.Time,
) MessageBundle {
	m := maps.Clone(messages)
	if m == nil {
		m = make(map[valueobject.MessageKey]string)
	}
	return MessageBundle{
		ID:          id,
		Locale:      locale,
		LastUpdated: lastUpdated,
		messages:    m,
	}
}

// Message returns the template stored under key.
func (b MessageBundle) Message(key valueobject.MessageKey) (string, bool) {
	text, ok := b.messages[key]
	return text, ok
}

func (b MessageBundle) HasMessage(key valueobject.MessageKey) bool {
	_, ok := b.messages[key]
	return ok
}

// Keys returns the bundle keys sorted by name.
func (b MessageBundle) Keys() []valueobject.MessageKey {
	return slices.SortedFunc(maps.Keys(b.messages), compareKeys)
}

// Messages returns a copy of the key to template mapping.
func (b MessageBundle) Messages() map[valueobject.MessageKey]string {
	return maps.Clone(b.messages)
}

func (b MessageBundle) Len() int {
	return len(b.messages)
}

// AddMessage sets or overwrites key.
func (b MessageBundle) AddMessage(key valueobject.MessageKey, text string) MessageBundle {
	next := b.clone()
	next.messages[key] = text
	return next
}

// RemoveMessage drops key. Removing an absent key is a no-op apart from the timestamp.
func (b MessageBundle) RemoveMessage(key valueobject.MessageKey) MessageBundle {
	next := b.clone()
	delete(next.messages, key)
	return next
}

// UpdateMessage overwrites an existing key and fails when the key is absent.
func (b MessageBundle) UpdateMessage(key valueobject.MessageKey, text string) (MessageBundle, error) {
	if !b.HasMessage(key) {
		return b, fmt.Errorf("%w: %w: %s in %s", domain.ErrInvariantViolation, domain.ErrMessageKeyNotInBundle, key, b.Locale)
	}
	return b.AddMessage(key, text), nil
}

func (b MessageBundle) clone() MessageBundle {
	next := b
	next.messages = make(map[valueobject.MessageKey]string, len(b.messages)+1)
	maps.Copy(next.messages, b.messages)
	next.LastUpdated = time.Now().UTC()
	return next
}

// IndexByLocale keys bundles by locale, rejecting two bundles for the same locale.
func IndexByLocale(bundles []MessageBundle) (map[valueobject.Locale]MessageBundle, error) {
	out := make(map[valueobject.Locale]MessageBundle, len(bundles))
	for _, b := range bundles {
		if _, dup := out[b.Locale]; dup {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateBundle, b.Locale)
		}
		out[b.Locale] = b
	}
	return out, nil
}

func compareKeys(a, b valueobject.MessageKey) int {
	return strings.Compare(a.String(), b.String())
}
