package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus instruments for the service.
type Metrics struct {
	RegistrationsTotal    *prometheus.CounterVec
	RegistryLookupsTotal  *prometheus.CounterVec
	RegistryLookupSeconds prometheus.Histogram
	RedirectsTotal        prometheus.Counter
	RedirectEventsDropped prometheus.Counter
	RedirectEventFailures prometheus.Counter
	RateLimitedTotal      prometheus.Counter
	HTTPRequestSeconds    *prometheus.HistogramVec
}

// New registers all instruments on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers on a caller-supplied registerer so tests can use an
// isolated registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "givelink_registrations_total",
			Help: "Registration attempts by outcome",
		}, []string{"outcome"}),
		RegistryLookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "givelink_registry_lookups_total",
			Help: "Charity registry lookups by result",
		}, []string{"result"}),
		RegistryLookupSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "givelink_registry_lookup_seconds",
			Help:    "Latency of charity registry lookups",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		RedirectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "givelink_redirects_total",
			Help: "Successfully resolved redirects",
		}),
		RedirectEventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "givelink_redirect_events_dropped_total",
			Help: "Redirect events dropped because the log inbox was full",
		}),
		RedirectEventFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "givelink_redirect_event_failures_total",
			Help: "Redirect events the log store failed to persist",
		}),
		RateLimitedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "givelink_rate_limited_total",
			Help: "Requests rejected by admission control",
		}),
		HTTPRequestSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "givelink_http_request_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method"}),
	}
}
