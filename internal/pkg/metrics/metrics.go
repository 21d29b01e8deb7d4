package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics registers the attendance counters on a private registry and
// serves them at /metrics.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	ClockEvents       *prometheus.CounterVec
	CorrectionReviews *prometheus.CounterVec
	GeofenceFailures  prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	clockEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_clock_events_total",
		Help: "Clock events by kind (clock_in, clock_out, ot_in, ot_out)",
	}, []string{"kind"})

	correctionReviews := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_correction_reviews_total",
		Help: "Correction review decisions by action",
	}, []string{"action"})

	geofenceFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attendance_geofence_failures_total",
		Help: "Clock attempts rejected for being outside the site radius",
	})

	registry.MustRegister(clockEvents, correctionReviews, geofenceFailures)

	return &Metrics{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		ClockEvents:       clockEvents,
		CorrectionReviews: correctionReviews,
		GeofenceFailures:  geofenceFailures,
	}
}

// Handler returns the scrape endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}
