package valueobject

import (
	"maps"
	"slices"
	"strings"
)

// Message is a resolved template together with its parameter bindings.
// Copies are cheap; none of the With* methods mutate the receiver.
type Message struct {
	Key        MessageKey
	Text       string
	Locale     Locale
	Parameters map[string]string
}

// NewMessage builds a Message without parameters.
func NewMessage(key MessageKey, text string, locale Locale) Message {
	return Message{Key: key, Text: text, Locale: locale}
}

// WithParameters replaces the whole parameter mapping.
func (m Message) WithParameters(params map[string]string) Message {
	m.Parameters = maps.Clone(params)
	return m
}

// WithParameter merges a single binding; a later call with the same name wins.
func (m Message) WithParameter(name, value string) Message {
	params := make(map[string]string, len(m.Parameters)+1)
	maps.Copy(params, m.Parameters)
	params[name] = value
	m.Parameters = params
	return m
}

// Resolve substitutes every "{name}" occurrence with its bound value in a
// single pass over Text, so a substituted value is never scanned again.
// Unbound placeholders are left as they are.
func (m Message) Resolve() string {
	if len(m.Parameters) == 0 {
		return m.Text
	}
	pairs := make([]string, 0, 2*len(m.Parameters))
	for _, name := range slices.Sorted(maps.Keys(m.Parameters)) {
		pairs = append(pairs, "{"+name+"}", m.Parameters[name])
	}
	return strings.NewReplacer(pairs...).Replace(m.Text)
}
