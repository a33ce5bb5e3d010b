package output

// ResolutionMetrics records what the resolution engine did.
type ResolutionMetrics interface {
	// ObserveResolution counts one lookup answered by tier ("exact", "language", "default" or "none").
	ObserveResolution(tier string)
	// ObserveMissingTranslations records how many keys locale lacks compared to its siblings.
	ObserveMissingTranslations(locale string, missing int)
}
