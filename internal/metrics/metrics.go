// Package metrics holds the Prometheus collectors of the intake and admin flows.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

var (
	// Registry holds the application collectors exposed on /metrics.
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	IntakeSubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Public submissions by kind (booking, worker) and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	DocumentUploads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_uploads_total",
			Help: "Worker document uploads by document and outcome.",
		},
		[]string{"document", "outcome"},
	)

	AdminLogins = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_logins_total",
			Help: "Admin login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	AdminStatusUpdates = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_status_updates_total",
			Help: "Status updates issued from the admin panel by table.",
		},
		[]string{"table"},
	)

	HTTPDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
