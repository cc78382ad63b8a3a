package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values.
const (
	StatusSuccess          = "success"
	StatusInvalidJSON      = "invalid_json"
	StatusUnexpectedFormat = "unexpected_format"
	StatusServiceFailure   = "service_failure"
)

// Metrics holds the collectors of one process, registered on a private registry
// so that tests can build as many as they need.
type Metrics struct {
	Registry *prometheus.Registry

	GenerationRequests *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
	GenerationObjects  *prometheus.HistogramVec
	TextureFetches     *prometheus.CounterVec
}

// New builds and registers all collectors, including the Go runtime ones.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		GenerationRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modeler_generation_requests_total",
				Help: "Total number of scene generation requests, by provider and outcome.",
			},
			[]string{"provider", "status"},
		),
		GenerationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "modeler_generation_duration_seconds",
				Help:    "Duration of calls to the text-generation service.",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 8), // 0.5s .. 64s
			},
			[]string{"provider"},
		),
		GenerationObjects: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "modeler_generation_objects",
				Help:    "Number of objects in successfully generated scenes.",
				Buckets: prometheus.LinearBuckets(10, 20, 10), // 10 .. 190
			},
			[]string{"kind"},
		),
		TextureFetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modeler_texture_fetches_total",
				Help: "Texture loads by source (network, disk) and outcome.",
			},
			[]string{"source", "status"},
		),
	}
}
