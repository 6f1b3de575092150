package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/specialistvlad/depviz/internal/builder"
	"github.com/specialistvlad/depviz/internal/graph"
	"github.com/specialistvlad/depviz/internal/source"
)

// metrics are the collectors of one App, registered on a private registry.
type metrics struct {
	registry *prometheus.Registry
	source   *source.Metrics

	graphNodes prometheus.Gauge
	graphEdges prometheus.Gauge
	warnings   *prometheus.CounterVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		source:   source.NewMetrics(reg),
		graphNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "depviz",
			Subsystem: "graph",
			Name:      "nodes",
			Help:      "Number of packages in the last built graph.",
		}),
		graphEdges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "depviz",
			Subsystem: "graph",
			Name:      "edges",
			Help:      "Number of declared dependency edges in the last built graph.",
		}),
		warnings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "depviz",
			Subsystem: "builder",
			Name:      "warnings_total",
			Help:      "Traversal warnings by kind.",
		}, []string{"kind"}),
	}
}

func (m *metrics) observe(g *graph.Graph, report *builder.Report) {
	m.graphNodes.Set(float64(g.Len()))
	m.graphEdges.Set(float64(g.EdgeCount()))
	for _, w := range report.Warnings {
		m.warnings.WithLabelValues(w.Kind.String()).Inc()
	}
}
