package output

// T renders user-facing text. Implementations resolve key for locale with
// the usual fallback chain and bind data into {name} placeholders.
type T interface {
	// T returns the rendered message, or key itself when nothing resolves.
	// data may be nil.
	T(locale, key string, data map[string]any) string
}
