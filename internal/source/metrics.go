package source

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/specialistvlad/depviz/internal/nodeid"
)

const (
	metricsNamespace = "depviz"
	metricsSubsystem = "source"

	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics are the collectors recorded by an instrumented Source.
type Metrics struct {
	// FetchesTotal counts fetches by source label and outcome (ok, error).
	FetchesTotal *prometheus.CounterVec

	// FetchDuration observes fetch latency by source label.
	FetchDuration *prometheus.HistogramVec
}

// NewMetrics creates the source collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "fetches_total",
			Help:      "Number of metadata fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "fetch_duration_seconds",
			Help:      "Latency of metadata fetches by source.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
	}
}

type instrumented struct {
	next    Source
	label   string
	metrics *Metrics
}

// Instrument wraps next so every fetch is counted and timed under label.
func Instrument(next Source, label string, metrics *Metrics) Source {
	return &instrumented{next: next, label: label, metrics: metrics}
}

func (s *instrumented) Fetch(ctx context.Context, name, version string) ([]nodeid.Spec, error) {
	start := time.Now()
	specs, err := s.next.Fetch(ctx, name, version)
	s.metrics.FetchDuration.WithLabelValues(s.label).Observe(time.Since(start).Seconds())

	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}
	s.metrics.FetchesTotal.WithLabelValues(s.label, outcome).Inc()
	return specs, err
}
