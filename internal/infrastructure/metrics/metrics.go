// Package metrics records resolution telemetry with Prometheus collectors
// registered on a private registry.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"polyglot/internal/ports/output"
)

var _ output.ResolutionMetrics = (*Recorder)(nil)

// Recorder implements output.ResolutionMetrics.
type Recorder struct {
	registry *prometheus.Registry

	resolutions *prometheus.CounterVec
	missing     *prometheus.GaugeVec
}

// NewRecorder creates a recorder whose metric names start with namespace
// ("polyglot" when empty).
func NewRecorder(namespace string) *Recorder {
	if namespace == "" {
		namespace = "polyglot"
	}

	r := &Recorder{registry: prometheus.NewRegistry()}

	r.resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolution_total",
			Help:      "Message lookups by the fallback tier that answered them",
		},
		[]string{"tier"},
	)

	r.missing = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bundle",
			Name:      "missing_translations",
			Help:      "Keys a bundle lacks compared to the other bundles, as of the last audit",
		},
		[]string{"locale"},
	)

	r.registry.MustRegister(r.resolutions, r.missing)
	return r
}

func (r *Recorder) ObserveResolution(tier string) {
	r.resolutions.WithLabelValues(tier).Inc()
}

func (r *Recorder) ObserveMissingTranslations(locale string, missing int) {
	r.missing.WithLabelValues(locale).Set(float64(missing))
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteText writes every gathered family in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
